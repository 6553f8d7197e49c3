package spap

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws/arn"
)

const (
	s3Service   = "s3"
	s3URLScheme = "s3://"

	defaultPartition = "aws"
)

// Location is a bucket and key prefix that object names are resolved against.
type Location struct {
	Partition string
	Bucket    string
	Prefix    string
}

// ParseLocation parses a contents location in one of two forms:
//
//	arn:aws:s3:::my-bucket/site
//	s3://my-bucket/site
//
// The first path segment is the bucket and the remainder is the prefix.
func ParseLocation(s string) (Location, error) {
	switch {
	case arn.IsARN(s):
		a, err := arn.Parse(s)
		if err != nil {
			return Location{}, fmt.Errorf("parse location %q: %w: %w", s, ErrInvalidLocation, err)
		}
		if a.Service != s3Service {
			return Location{}, fmt.Errorf("parse location %q: %w: service %q is not s3", s, ErrInvalidLocation, a.Service)
		}
		return splitBucketPrefix(s, a.Partition, a.Resource)

	case strings.HasPrefix(s, s3URLScheme):
		return splitBucketPrefix(s, defaultPartition, strings.TrimPrefix(s, s3URLScheme))

	default:
		return Location{}, fmt.Errorf("parse location %q: %w: expected arn:aws:s3:::bucket/prefix or s3://bucket/prefix", s, ErrInvalidLocation)
	}
}

func splitBucketPrefix(raw, partition, resource string) (Location, error) {
	parts := strings.Split(resource, "/")
	if parts[0] == "" {
		return Location{}, fmt.Errorf("parse location %q: %w: empty bucket", raw, ErrInvalidLocation)
	}

	return Location{
		Partition: partition,
		Bucket:    parts[0],
		Prefix:    strings.Join(parts[1:], "/"),
	}, nil
}

// Key resolves an object name to a fully qualified object key.
func (l Location) Key(objectName string) string {
	return ObjectKey(l.Prefix, objectName)
}

// OriginARN returns the ARN of the object stored under key.
func (l Location) OriginARN(key string) string {
	partition := l.Partition
	if partition == "" {
		partition = defaultPartition
	}
	return arn.ARN{
		Partition: partition,
		Service:   s3Service,
		Resource:  l.Bucket + "/" + key,
	}.String()
}

func (l Location) String() string {
	if l.Prefix == "" {
		return s3URLScheme + l.Bucket
	}
	return s3URLScheme + l.Bucket + "/" + l.Prefix
}
