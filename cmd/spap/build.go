package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/sagarc03/spap"
	"github.com/sagarc03/spap/config"
	"github.com/sagarc03/spap/filesystem"
	"github.com/sagarc03/spap/s3store"
)

// newStore opens the configured backend. The returned close function is
// never nil.
func newStore(ctx context.Context, cfg *config.Config) (spap.ObjectStore, func(), error) {
	switch cfg.Storage.Backend {
	case "filesystem":
		root, err := os.OpenRoot(cfg.Storage.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open storage root: %w", err)
		}
		slog.Info("using filesystem backend", "path", cfg.Storage.Path)
		return filesystem.NewFileStorage(root, cfg.Storage.CacheControl), func() { _ = root.Close() }, nil

	default:
		store, err := s3store.New(ctx, cfg.AWS)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("using s3 backend", "region", cfg.AWS.Region, "endpoint", cfg.AWS.Endpoint)
		return store, func() {}, nil
	}
}

// newHandler wires store, reader and handler from cfg.
func newHandler(ctx context.Context, cfg *config.Config) (*spap.Handler, func(), error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}

	store, closeStore, err := newStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	handler, err := spap.NewHandler(spap.NewObjectReader(store, loc), spap.HandlerConfig{
		Rewrite404:    cfg.Rewrite404,
		IndexDocument: cfg.IndexDocument,
	})
	if err != nil {
		closeStore()
		return nil, nil, fmt.Errorf("create handler: %w", err)
	}

	slog.Info("serving contents", "location", loc.String(), "rewrite404", cfg.Rewrite404)
	return handler, closeStore, nil
}
