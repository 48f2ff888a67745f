package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/recdex/internal/domain"
	dombatch "github.com/kailas-cloud/recdex/internal/domain/batch"
	"github.com/kailas-cloud/recdex/internal/domain/extra"
	domrec "github.com/kailas-cloud/recdex/internal/domain/record"
	logpkg "github.com/kailas-cloud/recdex/internal/logger"
	"github.com/kailas-cloud/recdex/internal/metrics"
	recordrepo "github.com/kailas-cloud/recdex/internal/repository/record"
	ingestuc "github.com/kailas-cloud/recdex/internal/usecase/ingest"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Load records into the permission store and the index",
	Long: `Reads a JSON array of records from file or stdin, stores their access
metadata and indexes them. Records are sent in batches of search.max_batch_size.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

var errSkipped = errors.New("skipped after dependency failure")

// recordInput is one element of the ingest file.
type recordInput struct {
	ID               int64         `json:"id"`
	Identifier       string        `json:"identifier"`
	Title            string        `json:"title"`
	PlainDescription string        `json:"plain_description"`
	RecordType       string        `json:"record_type"`
	Public           bool          `json:"public"`
	Readers          []int64       `json:"readers"`
	Tags             []string      `json:"tags"`
	Collections      []int64       `json:"collections"`
	Mimetypes        []string      `json:"mimetypes"`
	Extras           []extra.Extra `json:"extras"`
	CreatedAt        *time.Time    `json:"created_at"`
}

func (in *recordInput) params() domrec.Params {
	p := domrec.Params{
		ID:               in.ID,
		Identifier:       in.Identifier,
		Title:            in.Title,
		PlainDescription: in.PlainDescription,
		Type:             in.RecordType,
		Public:           in.Public,
		Readers:          in.Readers,
		Tags:             in.Tags,
		Collections:      in.Collections,
		Mimetypes:        in.Mimetypes,
		Extras:           in.Extras,
	}
	if in.CreatedAt != nil {
		p.CreatedAt = *in.CreatedAt
	}
	return p
}

func decodeRecords(data []byte) ([]domrec.Params, error) {
	var inputs []recordInput
	if err := json.Unmarshal(data, &inputs); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	params := make([]domrec.Params, len(inputs))
	for i := range inputs {
		params[i] = inputs[i].params()
	}
	return params, nil
}

func runIngest(cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	items, err := decodeRecords(data)
	if err != nil {
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

	ctx := context.Background()
	store, err := openStore(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	index, err := newIndexClient(cfg.Index, logger)
	if err != nil {
		return err
	}

	svc := ingestuc.New(recordrepo.New(store), index).WithMaxBatchSize(cfg.Search.MaxBatchSize)
	results := ingestBatches(ctx, svc, items, cfg.Search.MaxBatchSize)

	out := cmd.OutOrStdout()
	for _, r := range results {
		if r.Err() != nil {
			logger.Warn("Record not ingested", zap.Int64("id", r.ID()), zap.Error(r.Err()))
			_, _ = fmt.Fprintf(out, "#%d id=%d: %v\n", r.Position(), r.ID(), r.Err())
		}
	}
	failed := dombatch.Failed(results)
	_, _ = fmt.Fprintf(out, "ingested %d of %d records\n", len(results)-failed, len(results))
	if failed > 0 {
		return fmt.Errorf("%d records failed", failed)
	}
	return nil
}

// ingestBatches splits items into chunks of size and renumbers the results
// to positions in items. It stops after the first chunk with a dependency failure.
func ingestBatches(ctx context.Context, svc *ingestuc.Service, items []domrec.Params, size int) []dombatch.Result {
	if size <= 0 {
		size = ingestuc.MaxBatchSize
	}
	results := make([]dombatch.Result, 0, len(items))
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		chunk := svc.Ingest(ctx, items[start:end])
		for _, r := range chunk {
			pos := start + r.Position()
			if r.Err() != nil {
				results = append(results, dombatch.NewError(pos, r.ID(), r.Err()))
			} else {
				results = append(results, dombatch.NewOK(pos, r.ID()))
			}
		}
		if dependencyFailed(chunk) {
			for j := end; j < len(items); j++ {
				results = append(results, dombatch.NewError(j, items[j].ID, errSkipped))
			}
			break
		}
	}
	return results
}

func dependencyFailed(results []dombatch.Result) bool {
	for _, r := range results {
		if errors.Is(r.Err(), domain.ErrDependency) {
			return true
		}
	}
	return false
}
