package db

import "strings"

// IndexBuilder is a fluent builder for index definitions.
type IndexBuilder struct {
	def IndexDefinition
}

// NewIndex starts building an index definition.
func NewIndex(name string) *IndexBuilder {
	return &IndexBuilder{def: IndexDefinition{Name: name}}
}

// NGram registers an n-gram analyzer usable by text fields.
func (b *IndexBuilder) NGram(name string, minGram, maxGram int) *IndexBuilder {
	b.def.Analyzers = append(b.def.Analyzers, NGramAnalyzer{Name: name, MinGram: minGram, MaxGram: maxGram})
	return b
}

// MaxTermsCount sets the terms query limit of the index.
func (b *IndexBuilder) MaxTermsCount(n int) *IndexBuilder {
	b.def.MaxTermsCount = n
	return b
}

// Keyword adds a KEYWORD field.
func (b *IndexBuilder) Keyword(name string) *IndexBuilder {
	return b.field(IndexField{Name: name, Type: IndexFieldKeyword})
}

// Text adds a TEXT field with the default analyzer.
func (b *IndexBuilder) Text(name string) *IndexBuilder {
	return b.field(IndexField{Name: name, Type: IndexFieldText})
}

// TextWithKeyword adds a TEXT field with a keyword subfield for exact matches.
// An empty analyzer keeps the default one.
func (b *IndexBuilder) TextWithKeyword(name, analyzer string, ignoreAbove int) *IndexBuilder {
	return b.field(IndexField{
		Name:        name,
		Type:        IndexFieldText,
		Analyzer:    analyzer,
		Keyword:     true,
		IgnoreAbove: ignoreAbove,
	})
}

// Long adds a LONG field.
func (b *IndexBuilder) Long(name string) *IndexBuilder {
	return b.field(IndexField{Name: name, Type: IndexFieldLong})
}

// Double adds a DOUBLE field.
func (b *IndexBuilder) Double(name string) *IndexBuilder {
	return b.field(IndexField{Name: name, Type: IndexFieldDouble})
}

// Boolean adds a BOOLEAN field.
func (b *IndexBuilder) Boolean(name string) *IndexBuilder {
	return b.field(IndexField{Name: name, Type: IndexFieldBoolean})
}

// Date adds a DATE field.
func (b *IndexBuilder) Date(name string) *IndexBuilder {
	return b.field(IndexField{Name: name, Type: IndexFieldDate})
}

// Nested adds a NESTED field whose subfields are declared by build.
// Analyzers registered inside build are hoisted to the index.
func (b *IndexBuilder) Nested(name string, build func(*IndexBuilder)) *IndexBuilder {
	sub := &IndexBuilder{}
	build(sub)
	b.def.Analyzers = append(b.def.Analyzers, sub.def.Analyzers...)
	return b.field(IndexField{Name: name, Type: IndexFieldNested, Fields: sub.def.Fields})
}

func (b *IndexBuilder) field(f IndexField) *IndexBuilder {
	b.def.Fields = append(b.def.Fields, f)
	return b
}

// Build validates and returns the index definition.
func (b *IndexBuilder) Build() (*IndexDefinition, error) {
	if err := b.def.Validate(); err != nil {
		return nil, err
	}
	return &b.def, nil
}

// MustBuild calls Build and panics on error.
func (b *IndexBuilder) MustBuild() *IndexDefinition {
	def, err := b.Build()
	if err != nil {
		panic(err)
	}
	return def
}

// String returns a compact debug representation, e.g. "records{id:long title:text+kw}".
func (idx *IndexDefinition) String() string {
	return idx.Name + fieldsString(idx.Fields)
}

func fieldsString(fields []IndexField) string {
	parts := make([]string, 0, len(fields))
	for i := range fields {
		f := &fields[i]
		s := f.Name + ":" + f.Type.String()
		if f.Analyzer != "" {
			s += "(" + f.Analyzer + ")"
		}
		if f.Keyword {
			s += "+kw"
		}
		if f.Type == IndexFieldNested {
			s += fieldsString(f.Fields)
		}
		parts = append(parts, s)
	}
	return "{" + strings.Join(parts, " ") + "}"
}
