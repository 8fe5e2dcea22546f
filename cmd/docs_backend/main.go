package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/academic_docs_app/internal/platform/config"
	"github.com/spf13/cobra"
)

const programName = "docs_backend"

type configKey struct{}

func configFromContext(ctx context.Context) *config.Config {
	cfg, _ := ctx.Value(configKey{}).(*config.Config)
	return cfg
}

// newLogger builds the process-wide JSON logger and installs it as the default.
func newLogger(cfg *config.Config) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})).With(slog.String("component", programName))
	slog.SetDefault(logger)
	return logger
}

// @title Academic Docs API
// @version 1.0
// @description Departmental review workflow for academic documents.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	rootCmd := &cobra.Command{
		Use:           programName,
		Short:         "Academic document review workflow service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveRun(cmd.Context(), configFromContext(cmd.Context()))
		},
	}

	rootCmd.AddCommand(serveCommand())
	rootCmd.AddCommand(migrateCommand())
	rootCmd.AddCommand(tokenCommand())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		slog.Error(err.Error(), slog.String("component", programName))
		os.Exit(1)
	}
}
