package main

import (
	"context"
	"fmt"

	"github.com/fwojciec/folio"
	"github.com/fwojciec/folio/gemini"
	"github.com/fwojciec/folio/local"
	"github.com/rs/zerolog"
)

// resolveGateway constructs the gateway for gc.Backend. Each call returns a
// gateway with its own conversation state.
func resolveGateway(ctx context.Context, gc folio.GatewayConfig, logger zerolog.Logger) (folio.Gateway, error) {
	switch gc.Backend {
	case folio.BackendCloud:
		client, err := gemini.New(ctx, gc, gemini.WithLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("gemini: %w", err)
		}
		return client, nil
	case folio.BackendLocal:
		client, err := local.New(gc, local.WithLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("local: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("%w: %q", folio.ErrUnknownBackend, gc.Backend)
	}
}
