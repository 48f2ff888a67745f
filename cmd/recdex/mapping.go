package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	logpkg "github.com/kailas-cloud/recdex/internal/logger"
	"github.com/kailas-cloud/recdex/internal/metrics"
	"github.com/kailas-cloud/recdex/internal/transport/elastic"
)

var (
	flagMappingIndex    string
	flagMappingApply    bool
	flagMappingMaxTerms int
)

var mappingCmd = &cobra.Command{
	Use:   "mapping",
	Short: "Print or apply the record index mapping",
	Args:  cobra.NoArgs,
	RunE:  runMapping,
}

func init() {
	mappingCmd.Flags().StringVar(&flagMappingIndex, "index", "records", "Index name to render (ignored with --apply)")
	mappingCmd.Flags().IntVar(&flagMappingMaxTerms, "max-allow-list", 0, "Allow-list size to render max_terms_count for (ignored with --apply)")
	mappingCmd.Flags().BoolVar(&flagMappingApply, "apply", false, "Create the configured index if it is missing")
	rootCmd.AddCommand(mappingCmd)
}

func runMapping(cmd *cobra.Command, _ []string) error {
	if !flagMappingApply {
		out, err := json.MarshalIndent(elastic.Mapping(elastic.RecordIndex(flagMappingIndex, flagMappingMaxTerms)), "", "  ")
		if err != nil {
			return fmt.Errorf("encode mapping: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return err
	}

	cfg, env, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	metrics.RegisterIndexMetrics()

	client, err := newIndexClient(cfg.Index, logger)
	if err != nil {
		return err
	}
	created, err := client.EnsureIndex(context.Background(), elastic.RecordIndex(client.Index(), cfg.Search.MaxAllowList))
	if err != nil {
		return fmt.Errorf("ensure index: %w", err)
	}
	if created {
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "index %s created\n", client.Index())
	} else {
		logger.Info("Index already exists", zap.String("index", client.Index()))
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "index %s already exists\n", client.Index())
	}
	return err
}
