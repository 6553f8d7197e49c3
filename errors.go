package spap

import "errors"

var (
	// ErrNotFound is returned when the requested object does not exist in the store
	ErrNotFound = errors.New("not found")
	// ErrInvalidLocation is returned when a contents location is neither an S3 ARN nor an s3:// URL
	ErrInvalidLocation = errors.New("invalid contents location")
)
