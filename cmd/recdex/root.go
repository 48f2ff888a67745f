package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/recdex/internal/config"
	"github.com/kailas-cloud/recdex/internal/version"
)

var (
	flagEnv    string
	flagConfig string
)

var rootCmd = &cobra.Command{
	Use:          "recdex",
	Short:        "recdex - permission-aware record search over typed extras",
	SilenceUsage: true,
	Long: `recdex compiles record searches with structured extras predicates into
nested index queries and runs them against an Elasticsearch-compatible engine,
restricted to the records the caller may read.`,
}

func init() {
	rootCmd.Version = version.String()
	rootCmd.PersistentFlags().StringVar(&flagEnv, "env", "", "Environment name; selects config/<env>.yaml (default: $ENV or local)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a config file; overrides --env")
}

// Execute is called by main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// resolveEnv returns the environment from --env, falling back to $ENV.
func resolveEnv() string {
	if flagEnv != "" {
		return flagEnv
	}
	return config.GetEnv()
}

func loadConfig() (config.Config, string, error) {
	env := resolveEnv()
	var (
		cfg config.Config
		err error
	)
	if flagConfig != "" {
		cfg, err = config.LoadFile(flagConfig)
	} else {
		cfg, err = config.Load(env)
	}
	if err != nil {
		return config.Config{}, "", fmt.Errorf("load config: %w", err)
	}
	return cfg, env, nil
}
