package main

import (
	"context"

	"github.com/fwojciec/folio"
	"github.com/fwojciec/folio/asset"
	"github.com/fwojciec/folio/web"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the chat page and JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
	cmd.Flags().String("addr", "", "Listen address (default :8080)")
	_ = a.v.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	return cmd
}

// serve runs the web surface until ctx is done. An invalid gateway
// configuration does not stop the server: pages show a banner and the API
// answers 503.
func (a *app) serve(ctx context.Context) error {
	srv := web.NewServer(a.webConfig())
	return srv.Start(ctx)
}

func (a *app) webConfig() web.Config {
	logger := a.logger
	gc, gcErr := a.cfg.Gateway()
	if gcErr != nil {
		logger.Warn().Err(gcErr).Msg("gateway configuration is invalid; chat is unavailable")
	}

	return web.Config{
		Addr: a.cfg.Server.Addr,
		Factory: func(ctx context.Context) (folio.Gateway, error) {
			if gcErr != nil {
				return nil, gcErr
			}
			return resolveGateway(ctx, gc, logger)
		},
		Logger:             logger,
		SessionIdleTimeout: a.cfg.Server.SessionIdleTimeout,
		AvatarURI:          a.avatar(),
		ModelName:          gc.Model,
	}
}

// avatar returns the profile picture as a data URI, or "" when none is found.
func (a *app) avatar() string {
	dirs := asset.DefaultDirs()
	if a.cfg.AssetsDir != "" {
		dirs = []string{a.cfg.AssetsDir}
	}
	uri, err := asset.LoadDataURI(asset.AvatarPattern, dirs...)
	if err != nil {
		a.logger.Debug().Err(err).Msg("no avatar, using placeholder")
		return ""
	}
	return uri
}
