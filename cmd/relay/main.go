package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/relaykit/relay/internal/app"
	"github.com/relaykit/relay/internal/config"
	"github.com/relaykit/relay/internal/log"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "relay",
		Short:         "Realtime chat relay server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd(), newVersionCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var configPath string
	overrides := config.Default()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the relay server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			bootLogger := log.New("info")

			cfg, path, err := config.Load(bootLogger, configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			// Flags win over file and env values.
			flags := cmd.Flags()
			if flags.Changed("addr") {
				cfg.Addr = overrides.Addr
			}
			if flags.Changed("db") {
				cfg.DatabasePath = overrides.DatabasePath
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = overrides.LogLevel
			}
			if flags.Changed("message-rate-limit") {
				cfg.MessageRateLimit = overrides.MessageRateLimit
			}

			logger := log.New(cfg.LogLevel)
			logger.Info().Str("config", path).Str("addr", cfg.Addr).Msg("starting relay server")

			application, err := app.New(cfg, logger)
			if err != nil {
				return fmt.Errorf("init app: %w", err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := application.Run(ctx); err != nil {
				return fmt.Errorf("server exited: %w", err)
			}
			logger.Info().Msg("server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to config file")
	cmd.Flags().StringVar(&overrides.Addr, "addr", overrides.Addr, "HTTP listen address")
	cmd.Flags().StringVar(&overrides.DatabasePath, "db", overrides.DatabasePath, "SQLite database path")
	cmd.Flags().StringVar(&overrides.LogLevel, "log-level", overrides.LogLevel, "log level (debug, info, warn, error)")
	cmd.Flags().IntVar(&overrides.MessageRateLimit, "message-rate-limit", overrides.MessageRateLimit, "messages per connection per minute, 0 disables")

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the relay version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}
