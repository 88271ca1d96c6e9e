// Command folio is a portfolio chat assistant backed by Gemini or a local
// OpenAI-compatible model server.
//
// Usage:
//
//	GEMINI_API_KEY=gk-... folio serve [--addr :8080]
//	folio chat --backend local
//	folio version
//
// Settings are read from folio.yaml, FOLIO_* environment variables and the
// flags below, with flags taking precedence.
//
// Flags:
//
//	--config string      Path to folio.yaml (searched in the user config dir and . if omitted)
//	--backend string     Backend: cloud, local
//	--model string       Model ID (backend default if omitted)
//	--log-level string   Log level: debug, info, warn, error
//	--log-format string  Log format: json, console
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fwojciec/folio/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set by the linker.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "folio: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Handle OS signals for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

// app is the state shared by subcommands. cfg and logger are set before any
// subcommand runs.
type app struct {
	v          *viper.Viper
	configPath string
	cfg        *config.Config
	logger     zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New(), logger: zerolog.Nop()}

	root := &cobra.Command{
		Use:               "folio",
		Short:             "Portfolio chat assistant",
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd.ErrOrStderr())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to folio.yaml")
	flags.String("backend", "", "Backend: cloud, local")
	flags.String("model", "", "Model ID (backend default if omitted)")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.String("log-format", "", "Log format: json, console")
	for key, flag := range map[string]string{
		"backend":    "backend",
		"model":      "model",
		"log.level":  "log-level",
		"log.format": "log-format",
	} {
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}

	root.AddCommand(newServeCmd(a), newChatCmd(a), newVersionCmd())
	return root
}

// load reads configuration and builds the logger.
func (a *app) load(logOut io.Writer) error {
	cfg, err := config.Load(a.v, a.configPath)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.Log.Level, cfg.Log.Format, logOut)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// Printing the version needs no configuration.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "folio version %s\n", version)
		},
	}
}
