// File: cmd/compare.go
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dverbeek84/limelight-cli/internal/observability"
	"github.com/dverbeek84/limelight-cli/internal/report"
	"github.com/dverbeek84/limelight-cli/internal/sample"
)

// newCompareCmd creates the `compare` command.
func newCompareCmd() *cobra.Command {
	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "Compares the gender and age distributions of two persisted samples",
		Long: `Loads two JSON Lines sample files, typically one snowball and one alphabet
run, computes gender and age statistics for each, prints the comparison as
terminal tables and writes it as a markdown report.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := observability.GetLogger()

			snowballPath, _ := cmd.Flags().GetString("snowball")
			alphabetPath, _ := cmd.Flags().GetString("alphabet")
			outPath, _ := cmd.Flags().GetString("out")
			if snowballPath == "" || alphabetPath == "" {
				return fmt.Errorf("both --snowball and --alphabet sample files are required")
			}

			snowballSample, err := sample.ReadFile(snowballPath, logger)
			if err != nil {
				return fmt.Errorf("failed to load snowball sample: %w", err)
			}
			alphabetSample, err := sample.ReadFile(alphabetPath, logger)
			if err != nil {
				return fmt.Errorf("failed to load alphabet sample: %w", err)
			}

			logger.Info("Samples loaded",
				zap.Int("snowball_records", snowballSample.Len()),
				zap.Int("alphabet_records", alphabetSample.Len()),
			)

			r := report.Compare(
				report.Analyze("Snowball sample", snowballSample),
				report.Analyze("Alphabet sample", alphabetSample),
			)

			r.RenderConsole(cmd.OutOrStdout())

			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("failed to create report file: %w", err)
			}
			defer f.Close()
			if err := r.WriteMarkdown(f); err != nil {
				return fmt.Errorf("failed to write markdown report: %w", err)
			}
			if err := f.Close(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\nMarkdown report written to %s\n", outPath)
			return nil
		},
	}

	compareCmd.Flags().String("snowball", "", "Path to the snowball sample JSONL file")
	compareCmd.Flags().String("alphabet", "", "Path to the alphabet sample JSONL file")
	compareCmd.Flags().StringP("out", "o", "Comparison.md", "Path for the markdown report")

	return compareCmd
}
