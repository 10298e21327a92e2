// File: cmd/root.go
package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/dverbeek84/limelight-cli/internal/collect"
	"github.com/dverbeek84/limelight-cli/internal/config"
	"github.com/dverbeek84/limelight-cli/internal/fetch"
	"github.com/dverbeek84/limelight-cli/internal/observability"
	"github.com/dverbeek84/limelight-cli/internal/profile"
)

// appConfig holds the validated configuration for the current invocation.
// It is populated by the root command's PersistentPreRunE before any
// subcommand runs.
var appConfig *config.Config

// NewRootCommand builds a fresh root command tree. A new instance per
// invocation keeps flag state from leaking between runs, which matters for
// tests that execute several commands in one process.
func NewRootCommand() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "limelight",
		Short: "Limelight samples celebrity dating profiles and compares their demographics.",
		Long: `Limelight collects celebrity profile records from a public dating-history
site using two sampling strategies, a relationship-graph snowball traversal
and a stratified A-Z enumeration, persists each sample as JSON Lines, and
renders a gender and age comparison between the two.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Runs before every subcommand: config first, then logging.
			if err := initializeViper(cfgFile); err != nil {
				return err
			}

			cfg, err := config.NewConfigFromViper(viper.GetViper())
			if err != nil {
				// Fall back to a minimal logger so the failure is visible.
				observability.InitializeLogger(config.LoggerConfig{Level: "info", Format: "console", ServiceName: "limelight"})
				return err
			}

			observability.InitializeLogger(cfg.Logger)
			appConfig = cfg

			observability.GetLogger().Debug("Configuration loaded",
				zap.String("base_url", cfg.Site.BaseURL),
				zap.Float64("rate_limit", cfg.Fetcher.RateLimit),
			)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./config.yaml)")
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	rootCmd.AddCommand(newSnowballCmd())
	rootCmd.AddCommand(newAlphabetCmd())
	rootCmd.AddCommand(newCompareCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the CLI with a signal-aware context supplied by main.
func Execute(ctx context.Context) error {
	rootCmd := NewRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if logger := observability.GetLogger(); logger != nil {
			logger.Error("Command execution failed", zap.Error(err))
		}
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
		return err
	}
	return nil
}

// initializeViper reads the config file and environment variables into the
// global viper instance, on top of the built-in defaults.
func initializeViper(cfgFile string) error {
	v := viper.GetViper()
	config.SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("LIMELIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// No config file; defaults and env vars apply.
	}
	return nil
}

// newSiteSource wires the fetch and extraction layers into the profile
// source the collectors consume.
func newSiteSource(cfg *config.Config) (*collect.SiteSource, error) {
	logger := observability.GetLogger()

	cacheDir, err := cfg.Fetcher.ResolvedCacheDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cache dir: %w", err)
	}
	cache, err := fetch.NewCache(cacheDir, cfg.Fetcher.CacheTTL, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize response cache: %w", err)
	}

	clientCfg := fetch.NewDefaultClientConfig()
	clientCfg.UserAgent = cfg.Site.UserAgent
	if cfg.Fetcher.Timeout > 0 {
		clientCfg.RequestTimeout = cfg.Fetcher.Timeout
	}
	client := fetch.NewClient(clientCfg)

	fetcher := fetch.New(cfg.Fetcher, client, cache, logger)
	extractor := profile.NewExtractor(profile.PronounClassifier{}, logger)

	return collect.NewSiteSource(cfg.Site, fetcher, extractor), nil
}

// logRunSummary emits the operator-facing outcome of a collector run.
func logRunSummary(logger *zap.Logger, summary collect.Summary) {
	logger.Info("Collection run finished",
		zap.String("strategy", summary.Strategy),
		zap.Int("requested", summary.Requested),
		zap.Int("collected", summary.Collected),
		zap.Int("skipped", len(summary.Skipped)),
		zap.Duration("elapsed", summary.Elapsed),
	)
	for _, sk := range summary.Skipped {
		logger.Warn("Skipped during collection",
			zap.String("id", sk.ID),
			zap.String("reason", sk.Reason),
		)
	}
}
