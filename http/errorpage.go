package http

import (
	"log/slog"
	"net/http"

	"github.com/sagarc03/spap"
)

func writeDefaultNotFound(w http.ResponseWriter, r *http.Request) {
	if err := writeResponse(w, r, spap.Render(spap.NotFound{Path: r.URL.Path})); err != nil {
		slog.Error("failed to write not found page", "error", err)
	}
}
