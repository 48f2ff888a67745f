package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.uber.org/zap"

	"github.com/kailas-cloud/recdex/internal/db"
	"github.com/kailas-cloud/recdex/internal/domain/extra"
)

// TrigramAnalyzer splits partition keys into trigrams so partial keys match.
const TrigramAnalyzer = "trigram"

// keywordIgnoreAbove skips exact-match indexing of very long strings.
const keywordIgnoreAbove = 256

// Record fields outside the extras partitions.
const (
	FieldID               = "id"
	FieldIdentifier       = "identifier"
	FieldTitle            = "title"
	FieldPlainDescription = "plain_description"
	FieldRecordType       = "record_type"
	FieldCreatedAt        = "created_at"
)

// RecordIndex describes the record index: text fields plus one nested
// partition per scalar extra type. maxAllowList is the largest allow-list
// searches send as one terms filter; zero keeps the engine default.
func RecordIndex(name string, maxAllowList int) *db.IndexDefinition {
	b := db.NewIndex(name).
		MaxTermsCount(maxAllowList).
		NGram(TrigramAnalyzer, 3, 3).
		Long(FieldID).
		TextWithKeyword(FieldIdentifier, "", keywordIgnoreAbove).
		TextWithKeyword(FieldTitle, "", keywordIgnoreAbove).
		Text(FieldPlainDescription).
		Keyword(FieldRecordType).
		Date(FieldCreatedAt)

	for _, p := range extra.Partitions {
		b.Nested(string(p), func(nb *db.IndexBuilder) {
			nb.TextWithKeyword("key", TrigramAnalyzer, keywordIgnoreAbove)
			switch p {
			case extra.PartitionStr:
				nb.TextWithKeyword("value", "", keywordIgnoreAbove)
			case extra.PartitionInt:
				nb.Long("value")
			case extra.PartitionFloat:
				nb.Double("value")
			case extra.PartitionBool:
				nb.Boolean("value")
			case extra.PartitionDate:
				nb.Date("value")
			}
			if p.HasUnit() {
				nb.Text("unit")
			}
		})
	}
	return b.MustBuild()
}

// Mapping renders def as an index creation body with settings and mappings.
func Mapping(def *db.IndexDefinition) map[string]any {
	body := map[string]any{
		"mappings": map[string]any{"properties": properties(def.Fields)},
	}

	settings := map[string]any{}
	index := map[string]any{}
	if def.MaxTermsCount > db.DefaultMaxTermsCount {
		index["max_terms_count"] = def.MaxTermsCount
	}

	if len(def.Analyzers) > 0 {
		analyzers := make(map[string]any, len(def.Analyzers))
		tokenizers := make(map[string]any, len(def.Analyzers))
		maxDiff := 1
		for _, a := range def.Analyzers {
			tokenizer := a.Name + "_tokenizer"
			tokenizers[tokenizer] = map[string]any{
				"type":        "ngram",
				"min_gram":    a.MinGram,
				"max_gram":    a.MaxGram,
				"token_chars": []string{"letter", "digit", "punctuation", "symbol"},
			}
			analyzers[a.Name] = map[string]any{
				"type":      "custom",
				"tokenizer": tokenizer,
				"filter":    []string{"lowercase"},
			}
			maxDiff = max(maxDiff, a.MaxGram-a.MinGram)
		}
		settings["analysis"] = map[string]any{"analyzer": analyzers, "tokenizer": tokenizers}
		if maxDiff > 1 {
			index["max_ngram_diff"] = maxDiff
		}
	}

	if len(index) > 0 {
		settings["index"] = index
	}
	if len(settings) > 0 {
		body["settings"] = settings
	}
	return body
}

func properties(fields []db.IndexField) map[string]any {
	props := make(map[string]any, len(fields))
	for i := range fields {
		f := &fields[i]
		m := map[string]any{"type": f.Type.String()}
		if f.Analyzer != "" {
			m["analyzer"] = f.Analyzer
		}
		if f.Keyword {
			kw := map[string]any{"type": "keyword"}
			if f.IgnoreAbove > 0 {
				kw["ignore_above"] = f.IgnoreAbove
			}
			m["fields"] = map[string]any{"keyword": kw}
		}
		if f.Type == db.IndexFieldNested {
			m["properties"] = properties(f.Fields)
		}
		props[f.Name] = m
	}
	return props
}

// EnsureIndex creates the index described by def unless it exists.
// It reports whether the index was created by this call.
func (c *Client) EnsureIndex(ctx context.Context, def *db.IndexDefinition) (bool, error) {
	status, err := c.do(ctx, opEnsureIndex, func(ctx context.Context) (*esapi.Response, error) {
		return c.es.Indices.Exists([]string{def.Name}, c.es.Indices.Exists.WithContext(ctx))
	}, nil)
	switch {
	case err == nil:
		return false, nil
	case status != http.StatusNotFound:
		return false, err
	}

	if err := c.createIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return false, nil
		}
		return false, err
	}
	c.logger.Info("Index created", zap.String("index", def.Name))
	return true, nil
}

func (c *Client) createIndex(ctx context.Context, def *db.IndexDefinition) error {
	data, err := json.Marshal(Mapping(def))
	if err != nil {
		return fmt.Errorf("marshal mapping: %w", err)
	}

	_, err = c.do(ctx, opEnsureIndex, func(ctx context.Context) (*esapi.Response, error) {
		return c.es.Indices.Create(def.Name,
			c.es.Indices.Create.WithContext(ctx),
			c.es.Indices.Create.WithBody(bytes.NewReader(data)),
		)
	}, nil)

	var se *StatusError
	if errors.As(err, &se) && se.Type == "resource_already_exists_exception" {
		return fmt.Errorf("%w: %s", db.ErrIndexExists, def.Name)
	}
	return err
}
