package spap

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// ObjectReader reads objects from a store bound to a single Location.
// It holds no mutable state and is safe for concurrent use.
type ObjectReader struct {
	store    ObjectStore
	location Location
}

// NewObjectReader binds store to location.
func NewObjectReader(store ObjectStore, location Location) *ObjectReader {
	return &ObjectReader{
		store:    store,
		location: location,
	}
}

// Location returns the bound bucket and prefix.
func (r *ObjectReader) Location() Location {
	return r.location
}

// Read fetches objectName under the bound prefix and drains it into a Content.
//
// Returns:
//   - Content: body encoded as base64 for image/video/audio content types, raw text otherwise
//   - error: ErrNotFound when the object does not exist, or a wrapped storage error
func (r *ObjectReader) Read(ctx context.Context, objectName string) (Content, error) {
	if err := ctx.Err(); err != nil {
		return Content{}, fmt.Errorf("read object: %w", err)
	}

	key := r.location.Key(objectName)

	obj, err := r.store.GetObject(ctx, r.location.Bucket, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			slog.DebugContext(ctx, "object not found", "bucket", r.location.Bucket, "key", key)
			return Content{}, ErrNotFound
		}
		return Content{}, fmt.Errorf("read object %s: %w", key, err)
	}
	defer func() {
		if closeErr := obj.Body.Close(); closeErr != nil {
			slog.WarnContext(ctx, "failed to close object body", "key", key, "err", closeErr)
		}
	}()

	data, err := io.ReadAll(obj.Body)
	if err != nil {
		return Content{}, fmt.Errorf("read object %s: drain body: %w", key, err)
	}

	content := Content{
		ContentType:  obj.ContentType,
		CacheControl: obj.CacheControl,
		OriginARN:    r.location.OriginARN(key),
	}

	if IsBinaryContentType(obj.ContentType) {
		content.Body = base64.StdEncoding.EncodeToString(data)
		content.IsBase64Encoded = true
	} else {
		content.Body = string(data)
	}

	slog.DebugContext(ctx, "object read", "bucket", r.location.Bucket, "key", key, "size", len(data), "binary", content.IsBase64Encoded)

	return content, nil
}
