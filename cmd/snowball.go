// File: cmd/snowball.go
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
	"github.com/dverbeek84/limelight-cli/internal/profile"
)

// newSnowballCmd creates the `snowball` command.
func newSnowballCmd() *cobra.Command {
	snowballCmd := &cobra.Command{
		Use:   "snowball <seed-slug>",
		Short: "Collects a sample by traversing the relationship graph from a seed profile",
		Long: `Starts at the given profile slug and follows "has dated" links breadth-first
until the target count is reached or the graph is exhausted. The resulting
sample is written as JSON Lines into the data directory.`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Flag values override config file and environment.
			if err := viper.BindPFlag("collect.target_count", cmd.Flags().Lookup("target")); err != nil {
				return err
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := observability.GetLogger()
			cfg := appConfig

			seed := profile.NormalizeSlug(args[0])
			if seed == "" {
				return fmt.Errorf("seed slug must not be empty")
			}
			cfg.Collect.TargetCount = viper.GetInt("collect.target_count")
			if cfg.Collect.TargetCount <= 0 {
				return fmt.Errorf("target count must be a positive integer")
			}

			src, err := newSiteSource(cfg)
			if err != nil {
				return err
			}

			collector := collect.NewSnowball(src, cfg.Collect.TargetCount, logger)
			s, summary, runErr := collector.Run(ctx, seed)

			// A cancelled run still persists what it gathered.
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
					logger.Warn("Snowball run aborted, partial sample kept", zap.String("seed", seed))
				}
				return runErr
			}
			return nil
		},
	}

	snowballCmd.Flags().IntP("target", "t", 0, "Number of records to collect. (Overrides config/env)")
	snowballCmd.Flags().StringP("out", "o", "", "Output JSONL path. Defaults to <data_dir>/<seed>_snowball.jsonl")

	return snowballCmd
}
