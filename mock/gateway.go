// Package mock provides test doubles for folio interfaces using function fields.
package mock

import (
	"context"

	"github.com/fwojciec/folio"
)

// Interface compliance checks.
var _ folio.Gateway = (*Gateway)(nil)

// Gateway is a test double for folio.Gateway.
// Set GenerateResponseFn before calling GenerateResponse.
type Gateway struct {
	GenerateResponseFn func(ctx context.Context, userText string) folio.Reply
}

// GenerateResponse delegates to GenerateResponseFn.
func (g *Gateway) GenerateResponse(ctx context.Context, userText string) folio.Reply {
	return g.GenerateResponseFn(ctx, userText)
}

// Echo returns a Gateway that replies with prefix followed by the user text.
func Echo(prefix string) *Gateway {
	return &Gateway{
		GenerateResponseFn: func(_ context.Context, userText string) folio.Reply {
			return folio.Reply{Text: prefix + userText, Kind: folio.ReplyOK}
		},
	}
}
