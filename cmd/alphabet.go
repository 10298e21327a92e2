// File: cmd/alphabet.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/dverbeek84/limelight-cli/internal/collect"
	"github.com/dverbeek84/limelight-cli/internal/observability"
)

// newAlphabetCmd creates the `alphabet` command.
func newAlphabetCmd() *cobra.Command {
	alphabetCmd := &cobra.Command{
		Use:   "alphabet",
		Short: "Collects a stratified sample from the A-Z popularity listings",
		Long: `Walks the site's per-letter popularity listings from A to Z, collecting up
to a fixed number of profiles per letter. The resulting sample is written as
JSON Lines into the data directory.`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := viper.BindPFlag("collect.per_letter", cmd.Flags().Lookup("per-letter")); err != nil {
				return err
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := observability.GetLogger()
			cfg := appConfig

			cfg.Collect.PerLetter = viper.GetInt("collect.per_letter")
			if cfg.Collect.PerLetter <= 0 {
				return fmt.Errorf("per-letter count must be a positive integer")
			}

			src, err := newSiteSource(cfg)
			if err != nil {
				return err
			}

			collector := collect.NewAlphabet(src, cfg.Collect.PerLetter, logger)
			s, summary, runErr := collector.Run(ctx)

			if s.Len() > 0 {
				outPath, _ := cmd.Flags().GetString("out")
				if outPath == "" {
					outPath = filepath.Join(cfg.Collect.DataDir, s.Meta.Name+".jsonl")
				}
				if err := s.WriteFile(outPath); err != nil {
					return fmt.Errorf("failed to persist sample: %w", err)
				}
				logger.Info("Sample persisted",
					zap.String("path", outPath),
					zap.Int("records", s.Len()),
					zap.String("run_id", s.Meta.RunID),
				)
				fmt.Fprintf(cmd.OutOrStdout(), "Collected %d records into %s\n", s.Len(), outPath)
			}

			logRunSummary(logger, summary)

			if runErr != nil {
				if errors.Is(runErr, context.Canceled) || errors.Is(runErr, context.DeadlineExceeded) {
					logger.Warn("Alphabet run aborted, partial sample kept")
				}
				return runErr
			}
			return nil
		},
	}

	alphabetCmd.Flags().IntP("per-letter", "n", 0, "Profiles to collect per letter. (Overrides config/env)")
	alphabetCmd.Flags().StringP("out", "o", "", "Output JSONL path. Defaults to <data_dir>/alphabet_<n>.jsonl")

	return alphabetCmd
}
