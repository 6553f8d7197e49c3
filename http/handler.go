package http

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/sagarc03/spap"
)

// DefaultResource is the API Gateway resource template used when none is configured.
const DefaultResource = "/{proxy+}"

type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type HandlerConfig struct {
	// Resource is the gateway resource template requests are mapped onto.
	Resource string
	CORS     CORSConfig
	// MetricsHandler is mounted at /metrics when non-nil.
	MetricsHandler http.Handler
}

// Handler serves spap requests over plain HTTP, standing in for API Gateway
// during local development.
type Handler struct {
	config HandlerConfig
	server spap.Server
}

// NewHandler creates a new Handler with the given configuration and server.
func NewHandler(config *HandlerConfig, server spap.Server) *Handler {
	cfg := *config
	if cfg.Resource == "" {
		cfg.Resource = DefaultResource
	}
	return &Handler{
		config: cfg,
		server: server,
	}
}

// Router returns an http.Handler that accepts GET and HEAD under the base
// path of the configured resource. Requests outside it get the 404 page.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)

	if h.config.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.config.CORS.AllowedOrigins,
			AllowedMethods:   h.config.CORS.AllowedMethods,
			AllowedHeaders:   h.config.CORS.AllowedHeaders,
			ExposedHeaders:   h.config.CORS.ExposedHeaders,
			AllowCredentials: h.config.CORS.AllowCredentials,
			MaxAge:           h.config.CORS.MaxAge,
		}))
	}

	if h.config.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", h.config.MetricsHandler)
	}

	pattern := spap.BasePath(h.config.Resource)
	if strings.HasSuffix(pattern, "/") {
		pattern += "*"
	}
	r.Get(pattern, h.handleGet)
	r.Head(pattern, h.handleGet)

	r.NotFound(writeDefaultNotFound)

	return r
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	req := spap.Request{
		Method:   r.Method,
		Resource: h.config.Resource,
		Path:     r.URL.Path,
	}

	resp, err := h.server.Serve(r.Context(), req)
	if err != nil {
		HandleError(w, err)
		return
	}

	if err := writeResponse(w, r, resp); err != nil {
		HandleError(w, err)
	}
}

// writeResponse writes a rendered gateway response, decoding base64 bodies
// the way API Gateway does for binary media.
func writeResponse(w http.ResponseWriter, r *http.Request, resp spap.HTTPResponse) error {
	body := []byte(resp.Body)
	if resp.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(resp.Body)
		if err != nil {
			return fmt.Errorf("decode response body: %w", err)
		}
		body = decoded
	}

	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(resp.StatusCode)

	if r.Method == http.MethodHead {
		return nil
	}
	_, _ = w.Write(body)
	return nil
}
