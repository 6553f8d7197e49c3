package spap

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
)

const (
	// DefaultIndexDocument is appended to request paths that name a directory.
	DefaultIndexDocument = "index.html"

	// HeaderOriginARN carries the ARN of the object that served a response.
	HeaderOriginARN = "X-SPAP-Origin-Arn"
)

// greedyPlaceholderRegex matches gateway path parameters such as {proxy+}.
var greedyPlaceholderRegex = regexp.MustCompile(`\{[^{}/]*\+\}`)

// ContentReader reads a named object. *ObjectReader implements it.
type ContentReader interface {
	// Read returns ErrNotFound when objectName does not exist.
	Read(ctx context.Context, objectName string) (Content, error)
}

// HandlerConfig holds configuration options for Handler.
type HandlerConfig struct {
	// Rewrite404 is an object name retried once when the requested object is missing.
	Rewrite404 string
	// IndexDocument is appended to directory paths (default: index.html).
	IndexDocument string
}

// Handler resolves requests to objects and builds responses.
type Handler struct {
	reader        ContentReader
	rewrite404    string
	indexDocument string
}

func NewHandler(reader ContentReader, cfg HandlerConfig) (*Handler, error) {
	if reader == nil {
		return nil, errors.New("new handler: reader cannot be nil")
	}
	indexDocument := cfg.IndexDocument
	if indexDocument == "" {
		indexDocument = DefaultIndexDocument
	}
	return &Handler{
		reader:        reader,
		rewrite404:    cfg.Rewrite404,
		indexDocument: indexDocument,
	}, nil
}

// ObjectName derives the object name for req.
//
// The base path is the resource template with its greedy placeholder removed,
// and it is stripped from the front of the request path. Paths naming a
// directory get the index document appended:
//
//	Resource "/spa/{proxy+}", Path "/spa/css/app.css" -> "css/app.css"
//	Resource "/spa/{proxy+}", Path "/spa/"            -> "index.html"
func (h *Handler) ObjectName(req Request) string {
	specific := strings.TrimPrefix(req.Path, BasePath(req.Resource))

	if specific == "" || strings.HasSuffix(specific, "/") {
		return specific + h.indexDocument
	}
	return specific
}

// BasePath removes greedy placeholders such as {proxy+} from a resource template.
//
//	BasePath("/spa/{proxy+}") // "/spa/"
func BasePath(resource string) string {
	return greedyPlaceholderRegex.ReplaceAllString(resource, "")
}

// Handle fetches the object for req, retrying the rewrite target once on a miss.
//
// Returns:
//   - Response: Found with the served content, or NotFound carrying req.Path
//   - error: storage failures other than a miss; these are never retried
func (h *Handler) Handle(ctx context.Context, req Request) (Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("handle request: %w", err)
	}

	objectName := h.ObjectName(req)

	content, err := h.reader.Read(ctx, objectName)
	if errors.Is(err, ErrNotFound) && h.rewrite404 != "" {
		slog.DebugContext(ctx, "object missing, trying rewrite", "object", objectName, "rewrite", h.rewrite404)
		content, err = h.reader.Read(ctx, h.rewrite404)
	}

	if errors.Is(err, ErrNotFound) {
		return NotFound{Path: req.Path}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("handle request %s: %w", req.Path, err)
	}

	return Found{Content: content}, nil
}

// Serve handles req and renders the result.
func (h *Handler) Serve(ctx context.Context, req Request) (HTTPResponse, error) {
	resp, err := h.Handle(ctx, req)
	if err != nil {
		return HTTPResponse{}, err
	}
	return Render(resp), nil
}

// Render converts a Response into its wire shape.
func Render(resp Response) HTTPResponse {
	switch r := resp.(type) {
	case Found:
		return renderFound(r)
	case NotFound:
		return renderNotFound(r)
	default:
		panic(fmt.Sprintf("render: unexpected response type %T", resp))
	}
}

func renderFound(r Found) HTTPResponse {
	headers := make(map[string]string, 3)
	if r.Content.CacheControl != "" {
		headers["Cache-Control"] = r.Content.CacheControl
	}
	if r.Content.ContentType != "" {
		headers["Content-Type"] = r.Content.ContentType
	}
	if r.Content.OriginARN != "" {
		headers[HeaderOriginARN] = r.Content.OriginARN
	}

	return HTTPResponse{
		StatusCode:      http.StatusOK,
		Headers:         headers,
		Body:            r.Content.Body,
		IsBase64Encoded: r.Content.IsBase64Encoded,
	}
}

const notFoundHTML = `<html>
<head><title>404 Not Found</title></head>
<body>
<center><h1>404 Not Found</h1></center>
<p>The requested URL %s was not found on this server.</p>
<hr><center>spap</center>
</body>
</html>`

func renderNotFound(r NotFound) HTTPResponse {
	return HTTPResponse{
		StatusCode: http.StatusNotFound,
		Headers: map[string]string{
			"Content-Type": "text/html",
		},
		Body:            fmt.Sprintf(notFoundHTML, html.EscapeString(r.Path)),
		IsBase64Encoded: false,
	}
}
