package db

import (
	"errors"
	"strconv"
)

// IndexFieldType enumerates supported index field types.
type IndexFieldType int

const (
	// IndexFieldKeyword is an exact-match string field.
	IndexFieldKeyword IndexFieldType = iota
	// IndexFieldText is an analyzed full-text field.
	IndexFieldText
	// IndexFieldLong is a 64-bit integer field.
	IndexFieldLong
	// IndexFieldDouble is a 64-bit float field.
	IndexFieldDouble
	// IndexFieldBoolean is a boolean field.
	IndexFieldBoolean
	// IndexFieldDate is a timestamp field.
	IndexFieldDate
	// IndexFieldNested is an array of objects indexed as separate documents.
	IndexFieldNested
)

// String returns the index engine type name.
func (t IndexFieldType) String() string {
	switch t {
	case IndexFieldKeyword:
		return "keyword"
	case IndexFieldText:
		return "text"
	case IndexFieldLong:
		return "long"
	case IndexFieldDouble:
		return "double"
	case IndexFieldBoolean:
		return "boolean"
	case IndexFieldDate:
		return "date"
	case IndexFieldNested:
		return "nested"
	}
	return "unknown"
}

// IndexField describes a single field in an index mapping.
type IndexField struct {
	Name string
	Type IndexFieldType

	// TEXT options
	Analyzer string
	Keyword  bool // adds a "keyword" subfield
	// IgnoreAbove skips keyword values longer than this. Zero means no limit.
	IgnoreAbove int

	// NESTED options
	Fields []IndexField
}

// NGramAnalyzer is a custom analyzer splitting text into lowercase n-grams.
type NGramAnalyzer struct {
	Name    string
	MinGram int
	MaxGram int
}

// DefaultMaxTermsCount is the engine's default limit on values in one terms query.
const DefaultMaxTermsCount = 65536

// IndexDefinition is a complete index definition.
type IndexDefinition struct {
	Name      string
	Analyzers []NGramAnalyzer
	Fields    []IndexField
	// MaxTermsCount raises the terms query limit. Zero keeps DefaultMaxTermsCount.
	MaxTermsCount int
}

// Validate checks that the index definition is well-formed.
func (idx *IndexDefinition) Validate() error {
	if idx.Name == "" {
		return errors.New("index name is required")
	}
	if !IsValidIdentifier(idx.Name) {
		return errors.New("index name contains invalid characters")
	}
	if len(idx.Fields) == 0 {
		return errors.New("at least one field is required")
	}
	if idx.MaxTermsCount < 0 {
		return errors.New("max terms count must not be negative")
	}

	analyzers := make(map[string]bool, len(idx.Analyzers))
	for _, a := range idx.Analyzers {
		if a.Name == "" {
			return errors.New("analyzer name is required")
		}
		if a.MinGram <= 0 || a.MaxGram < a.MinGram {
			return errors.New("analyzer " + a.Name + " has invalid gram bounds")
		}
		analyzers[a.Name] = true
	}
	return validateFields(idx.Fields, analyzers, "")
}

func validateFields(fields []IndexField, analyzers map[string]bool, parent string) error {
	seen := make(map[string]bool)
	for i := range fields {
		f := &fields[i]
		if f.Name == "" {
			return errors.New("field name is required at index " + strconv.Itoa(i) + parentSuffix(parent))
		}
		if seen[f.Name] {
			return errors.New("duplicate field name: " + parent + f.Name)
		}
		seen[f.Name] = true

		if f.Analyzer != "" && !analyzers[f.Analyzer] {
			return errors.New("unknown analyzer " + f.Analyzer + " on field " + parent + f.Name)
		}
		if f.Type == IndexFieldNested {
			if len(f.Fields) == 0 {
				return errors.New("nested field requires subfields: " + parent + f.Name)
			}
			if err := validateFields(f.Fields, analyzers, parent+f.Name+"."); err != nil {
				return err
			}
		}
	}
	return nil
}

func parentSuffix(parent string) string {
	if parent == "" {
		return ""
	}
	return " in " + parent[:len(parent)-1]
}

// IsValidIdentifier returns true if s matches [a-z0-9_-]+, the lowercase index naming rule.
func IsValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		isLower := r >= 'a' && r <= 'z'
		isDigit := r >= '0' && r <= '9'
		isSpecial := r == '_' || r == '-'
		if !isLower && !isDigit && !isSpecial {
			return false
		}
	}
	return true
}
