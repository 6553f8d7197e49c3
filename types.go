package spap

import (
	"context"
	"io"
)

// Request describes an incoming gateway proxy request.
type Request struct {
	Method   string
	Resource string
	Path     string
}

// Object is a raw object returned by an ObjectStore.
// The caller is responsible for closing Body.
type Object struct {
	Body         io.ReadCloser
	ContentType  string
	CacheControl string
}

// ObjectStore is a read-only object storage backend addressed by bucket and key.
type ObjectStore interface {
	// GetObject fetches an object. It returns ErrNotFound when the key does not exist.
	GetObject(ctx context.Context, bucket, key string) (Object, error)
}

// Content is a fully drained object ready to be placed in a response.
// Empty string fields are absent.
type Content struct {
	Body            string
	ContentType     string
	CacheControl    string
	IsBase64Encoded bool
	OriginARN       string
}

// Response is the outcome of handling a request. It is either Found or NotFound.
type Response interface {
	isResponse()
}

// Found is a successful lookup, rendered as 200.
type Found struct {
	Content Content
}

// NotFound is a miss, rendered as 404. Path is the originally requested path.
type NotFound struct {
	Path string
}

func (Found) isResponse()    {}
func (NotFound) isResponse() {}

// HTTPResponse is the wire shape handed back to the gateway.
type HTTPResponse struct {
	StatusCode      int               `json:"statusCode"`
	Headers         map[string]string `json:"headers"`
	Body            string            `json:"body"`
	IsBase64Encoded bool              `json:"isBase64Encoded"`
}

// Server serves requests end to end. *Handler implements it, and adapters
// and instrumentation accept it.
type Server interface {
	Serve(ctx context.Context, req Request) (HTTPResponse, error)
}
