package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/BerylCAtieno/yodelstar-api/internal/analyzer"
	"github.com/BerylCAtieno/yodelstar-api/internal/batch"
	"github.com/BerylCAtieno/yodelstar-api/internal/config"
	"github.com/BerylCAtieno/yodelstar-api/internal/logging"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var dirFlag string

	rootCmd := &cobra.Command{
		Use:           "yodel-batch",
		Short:         "Analyze every .wav recording in a directory",
		Long:          "Runs single-performance analysis on each .wav file in the steps directory and writes <name>_analysis.json beside it.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFlag)
			if err != nil {
				return err
			}
			if dirFlag != "" {
				cfg.StepsDir = dirFlag
			}
			if !cfg.GeminiConfigured() {
				return fmt.Errorf("GEMINI_API_KEY environment variable is required")
			}

			log, closeLog, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile, Stdout: cmd.ErrOrStderr()})
			if err != nil {
				return err
			}
			defer closeLog()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			geminiClient, err := analyzer.NewGeminiClient(ctx, cfg.GeminiAPIKey, analyzer.GeminiOptions{
				Temperature:     float32(cfg.Temperature),
				TopP:            float32(cfg.TopP),
				MaxOutputTokens: int32(cfg.MaxOutputTokens),
			})
			if err != nil {
				return err
			}
			defer geminiClient.Close()

			svc := analyzer.NewService(geminiClient, analyzer.WithModel(cfg.Model), analyzer.WithLogger(log))
			summary, err := batch.NewRunner(svc, cfg.StepsDir, log).Run(ctx)
			if len(summary.Results) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), renderSummary(summary))
			}
			if err != nil {
				return err
			}
			if failed := summary.Failed(); failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(summary.Results))
			}
			return nil
		},
	}

	rootCmd.Flags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.Flags().StringVarP(&dirFlag, "dir", "d", "", "Directory of .wav files (default from config: steps)")

	return rootCmd
}
