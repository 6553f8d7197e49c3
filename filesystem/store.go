// Package filesystem provides a local directory backend for spap.
// The root directory mirrors object storage as <root>/<bucket>/<key>, which
// makes it suitable for local development against a built SPA.
// Content types are detected from file extensions.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path"
	"path/filepath"

	"github.com/sagarc03/spap"
)

// Store provides read access to objects on the local file system.
type Store struct {
	root         *os.Root
	cacheControl string
}

// NewFileStorage creates a new Store with the given root directory.
// The root provides sandboxed file operations preventing path traversal.
// cacheControl, when set, is reported for every object.
func NewFileStorage(root *os.Root, cacheControl string) *Store {
	return &Store{root: root, cacheControl: cacheControl}
}

// GetObject opens <bucket>/<key> for reading. Returns spap.ErrNotFound if the
// file does not exist, is a directory, or the key is not a valid relative path.
func (s *Store) GetObject(ctx context.Context, bucket, key string) (spap.Object, error) {
	if err := ctx.Err(); err != nil {
		return spap.Object{}, err
	}

	if bucket == "." || !fs.ValidPath(bucket) || !fs.ValidPath(key) {
		return spap.Object{}, spap.ErrNotFound
	}
	name := path.Join(bucket, key)

	f, err := s.root.Open(filepath.FromSlash(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return spap.Object{}, spap.ErrNotFound
		}
		return spap.Object{}, fmt.Errorf("failed to open file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return spap.Object{}, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		_ = f.Close()
		return spap.Object{}, spap.ErrNotFound
	}

	return spap.Object{
		Body:         &ctxReadCloser{ctx: ctx, rc: f},
		ContentType:  detectContentType(name),
		CacheControl: s.cacheControl,
	}, nil
}

type ctxReadCloser struct {
	ctx context.Context
	rc  io.ReadCloser
}

func (r *ctxReadCloser) Read(p []byte) (n int, err error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.rc.Read(p)
}

func (r *ctxReadCloser) Close() error {
	return r.rc.Close()
}

func detectContentType(name string) string {
	ext := filepath.Ext(name)
	contentType := mime.TypeByExtension(ext)

	if contentType == "" {
		return "application/octet-stream"
	}

	return contentType
}
