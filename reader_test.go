package spap_test

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/sagarc03/spap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type SpyObjectStore struct {
	mock.Mock
}

func (s *SpyObjectStore) GetObject(ctx context.Context, bucket, key string) (spap.Object, error) {
	args := s.Called(ctx, bucket, key)
	return args.Get(0).(spap.Object), args.Error(1)
}

// trackingBody records whether Close was called.
type trackingBody struct {
	io.Reader
	closed bool
}

func (b *trackingBody) Close() error {
	b.closed = true
	return nil
}

type failingBody struct{}

func (failingBody) Read([]byte) (int, error) { return 0, errors.New("connection reset") }
func (failingBody) Close() error             { return nil }

func newObject(body []byte, contentType, cacheControl string) spap.Object {
	return spap.Object{
		Body:         io.NopCloser(strings.NewReader(string(body))),
		ContentType:  contentType,
		CacheControl: cacheControl,
	}
}

func NewObjectReader(t *testing.T, location string) (*spap.ObjectReader, *SpyObjectStore) {
	t.Helper()
	loc, err := spap.ParseLocation(location)
	require.NoError(t, err, "parse location")
	store := new(SpyObjectStore)
	return spap.NewObjectReader(store, loc), store
}

func TestObjectReader_Read(t *testing.T) {
	t.Run("text content", func(t *testing.T) {
		reader, store := NewObjectReader(t, "s3://my-bucket/site")
		ctx := context.Background()

		body := &trackingBody{Reader: strings.NewReader("console.log('hi')")}
		store.On("GetObject", ctx, "my-bucket", "site/a/b.js").Return(spap.Object{
			Body:         body,
			ContentType:  "application/javascript",
			CacheControl: "max-age=300",
		}, nil)

		content, err := reader.Read(ctx, "a/b.js")
		require.NoError(t, err)

		assert.Equal(t, "console.log('hi')", content.Body)
		assert.False(t, content.IsBase64Encoded)
		assert.Equal(t, "application/javascript", content.ContentType)
		assert.Equal(t, "max-age=300", content.CacheControl)
		assert.Equal(t, "arn:aws:s3:::my-bucket/site/a/b.js", content.OriginARN)
		assert.True(t, body.closed, "body should be closed after draining")

		store.AssertExpectations(t)
	})

	t.Run("binary content round trips through base64", func(t *testing.T) {
		reader, store := NewObjectReader(t, "s3://my-bucket/site")
		ctx := context.Background()

		raw := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0xff, 0xfe}
		store.On("GetObject", ctx, "my-bucket", "site/img/logo.png").Return(newObject(raw, "image/png", ""), nil)

		content, err := reader.Read(ctx, "img/logo.png")
		require.NoError(t, err)

		assert.True(t, content.IsBase64Encoded)
		decoded, err := base64.StdEncoding.DecodeString(content.Body)
		require.NoError(t, err)
		assert.Equal(t, raw, decoded)
		assert.Equal(t, "image/png", content.ContentType)
		assert.Empty(t, content.CacheControl)
	})

	t.Run("video and audio are binary", func(t *testing.T) {
		reader, store := NewObjectReader(t, "s3://my-bucket")
		ctx := context.Background()

		store.On("GetObject", ctx, "my-bucket", "intro.mp4").Return(newObject([]byte("v"), "video/mp4", ""), nil)
		store.On("GetObject", ctx, "my-bucket", "beep.mp3").Return(newObject([]byte("a"), "audio/mpeg", ""), nil)

		video, err := reader.Read(ctx, "intro.mp4")
		require.NoError(t, err)
		assert.True(t, video.IsBase64Encoded)
		assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("v")), video.Body)

		audio, err := reader.Read(ctx, "beep.mp3")
		require.NoError(t, err)
		assert.True(t, audio.IsBase64Encoded)
	})

	t.Run("missing content type is text", func(t *testing.T) {
		reader, store := NewObjectReader(t, "s3://my-bucket")
		ctx := context.Background()

		store.On("GetObject", ctx, "my-bucket", "LICENSE").Return(newObject([]byte("MIT"), "", ""), nil)

		content, err := reader.Read(ctx, "LICENSE")
		require.NoError(t, err)
		assert.False(t, content.IsBase64Encoded)
		assert.Equal(t, "MIT", content.Body)
		assert.Empty(t, content.ContentType)
	})

	t.Run("key normalization", func(t *testing.T) {
		reader, store := NewObjectReader(t, "arn:aws:s3:::my-bucket")
		ctx := context.Background()

		store.On("GetObject", ctx, "my-bucket", "css/app.css").Return(newObject([]byte("body{}"), "text/css", ""), nil)

		_, err := reader.Read(ctx, "//css//app.css")
		require.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		reader, store := NewObjectReader(t, "s3://my-bucket/site")
		ctx := context.Background()

		store.On("GetObject", ctx, "my-bucket", "site/missing.js").Return(spap.Object{}, spap.ErrNotFound)

		_, err := reader.Read(ctx, "missing.js")
		assert.ErrorIs(t, err, spap.ErrNotFound)
	})

	t.Run("wrapped not found", func(t *testing.T) {
		reader, store := NewObjectReader(t, "s3://my-bucket/site")
		ctx := context.Background()

		store.On("GetObject", ctx, "my-bucket", "site/missing.js").Return(spap.Object{}, errors.Join(errors.New("no such key"), spap.ErrNotFound))

		_, err := reader.Read(ctx, "missing.js")
		assert.ErrorIs(t, err, spap.ErrNotFound)
	})

	t.Run("storage error", func(t *testing.T) {
		reader, store := NewObjectReader(t, "s3://my-bucket/site")
		ctx := context.Background()

		storageErr := errors.New("access denied")
		store.On("GetObject", ctx, "my-bucket", "site/a.js").Return(spap.Object{}, storageErr)

		_, err := reader.Read(ctx, "a.js")
		assert.ErrorIs(t, err, storageErr)
		assert.NotErrorIs(t, err, spap.ErrNotFound)
	})

	t.Run("body read error", func(t *testing.T) {
		reader, store := NewObjectReader(t, "s3://my-bucket")
		ctx := context.Background()

		store.On("GetObject", ctx, "my-bucket", "a.js").Return(spap.Object{Body: failingBody{}, ContentType: "text/javascript"}, nil)

		_, err := reader.Read(ctx, "a.js")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, spap.ErrNotFound)
	})

	t.Run("context canceled", func(t *testing.T) {
		reader, store := NewObjectReader(t, "s3://my-bucket")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := reader.Read(ctx, "a.js")
		assert.ErrorIs(t, err, context.Canceled)
		store.AssertNotCalled(t, "GetObject")
	})
}

func TestObjectReader_Location(t *testing.T) {
	reader, _ := NewObjectReader(t, "s3://my-bucket/site")
	assert.Equal(t, "my-bucket", reader.Location().Bucket)
	assert.Equal(t, "site", reader.Location().Prefix)
}
