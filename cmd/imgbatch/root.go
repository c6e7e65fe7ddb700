package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"imgbatch/internal/batch"
	"imgbatch/internal/codec"
	"imgbatch/internal/config"
	"imgbatch/internal/logging"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var logLevelFlag string

	rootCmd := &cobra.Command{
		Use:           "imgbatch",
		Short:         "Downsample the landing page PNG assets into WEBP",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBatch(cmd.Context(), cmd.OutOrStdout(), strings.TrimSpace(configFlag), strings.TrimSpace(logLevelFlag))
		},
	}

	rootCmd.Flags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.Flags().StringVar(&logLevelFlag, "log-level", "", "Override the configured log level (debug, info, warn, error)")

	return rootCmd
}

// runBatch performs one full conversion run. Only configuration and wiring
// failures are returned; per-entry problems end up in the summary.
func runBatch(ctx context.Context, out io.Writer, configPath, logLevel string) error {
	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	logger, closeLog, err := logging.NewFromConfig(cfg, out)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer closeLog()

	ctx = logging.WithRunID(ctx, uuid.NewString())
	logging.WithContext(ctx, logger).Debug("configuration resolved",
		slog.String("config_path", resolved),
		slog.Bool("config_file_found", exists),
	)

	enc, err := codec.New(cfg)
	if err != nil {
		return err
	}

	report, err := batch.NewConverter(enc, logger).Run(ctx, batch.JobFromConfig(cfg))
	if err != nil {
		return err
	}
	if report.Aborted != "" {
		return nil
	}

	fmt.Fprintln(out, renderSummary(report, shouldColorize(out)))
	return nil
}
