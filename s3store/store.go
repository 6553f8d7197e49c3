// Package s3store provides an Amazon S3 object store backend for spap.
// It works against AWS and S3 compatible endpoints such as MinIO or LocalStack.
package s3store

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/sagarc03/spap"
)

// Config holds S3 client configuration. Zero values fall back to the AWS
// SDK's default credential chain and region resolution.
type Config struct {
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint" validate:"omitempty,url"`
	UsePathStyle    bool   `mapstructure:"use_path_style"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	MaxRetries      int    `mapstructure:"max_retries" validate:"min=0"`
}

// GetObjectAPI is the subset of *s3.Client used by Store.
type GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Store reads objects from S3.
type Store struct {
	client GetObjectAPI
}

// New builds an S3 client from cfg and wraps it in a Store.
func New(ctx context.Context, cfg Config) (*Store, error) {
	awsCfg, err := buildAWSConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("new s3 store: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return NewWithClient(client), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client GetObjectAPI) *Store {
	return &Store{client: client}
}

// GetObject fetches bucket/key. Returns spap.ErrNotFound if the key does not exist.
func (s *Store) GetObject(ctx context.Context, bucket, key string) (spap.Object, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFoundError(err) {
			return spap.Object{}, spap.ErrNotFound
		}
		return spap.Object{}, fmt.Errorf("get object s3://%s/%s: %w", bucket, key, err)
	}

	return spap.Object{
		Body:         out.Body,
		ContentType:  aws.ToString(out.ContentType),
		CacheControl: aws.ToString(out.CacheControl),
	}, nil
}

func buildAWSConfig(ctx context.Context, cfg Config) (aws.Config, error) {
	var optFns []func(*awsconfig.LoadOptions) error

	if cfg.Region != "" {
		optFns = append(optFns, awsconfig.WithRegion(cfg.Region))
	}

	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		optFns = append(optFns, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	if cfg.MaxRetries > 0 {
		optFns = append(optFns, awsconfig.WithRetryMaxAttempts(cfg.MaxRetries))
	}

	return awsconfig.LoadDefaultConfig(ctx, optFns...)
}

// isNotFoundError reports whether err is S3's not found condition. GetObject
// on a missing key yields NoSuchKey, but a bare 404 can surface as NotFound or
// as a generic response error depending on the endpoint.
func isNotFoundError(err error) bool {
	var nsk *s3types.NoSuchKey
	var nf *s3types.NotFound
	if errors.As(err, &nsk) || errors.As(err, &nf) {
		return true
	}

	var re *awshttp.ResponseError
	return errors.As(err, &re) && re.HTTPStatusCode() == http.StatusNotFound
}
