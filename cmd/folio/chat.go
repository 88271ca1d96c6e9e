package main

import (
	"context"
	"fmt"

	"github.com/fwojciec/folio"
	bt "github.com/fwojciec/folio/bubbletea"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newChatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat with the assistant in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.chat(cmd.Context())
		},
	}
}

// chat runs one terminal session until the user quits or ctx is done.
func (a *app) chat(ctx context.Context) error {
	gc, err := a.cfg.Gateway()
	if err != nil {
		return err
	}
	// The TUI owns the terminal, so gateway logs are discarded.
	gw, err := resolveGateway(ctx, gc, zerolog.Nop())
	if err != nil {
		return err
	}

	session := folio.NewSession(uuid.NewString(), gw)
	a.logger.Debug().Str("session", session.ID()).Str("backend", string(gc.Backend)).Msg("chat started")

	m := bt.New(session.Submit, session.Messages(), folio.DefaultTheme(), bt.Config{ModelName: gc.Model})
	if err := bt.Run(ctx, m); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}
	return nil
}
