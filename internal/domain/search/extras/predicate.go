// Package extras parses the flat extras-query DSL into typed predicates.
//
// Each predicate carries a link relative to the predicate before it. The link
// of the first predicate is ignored, so a leading "or" behaves like "and".
package extras

// MaxPredicates is the maximum number of predicates in one query.
const MaxPredicates = 64

// Link joins a predicate to the one before it.
type Link string

// Link values.
const (
	And Link = "and"
	Or  Link = "or"
)

// Kind selects the partition family a predicate searches.
type Kind string

// Predicate kinds. Any matches the key in every scalar partition.
const (
	Any     Kind = ""
	Str     Kind = "str"
	Numeric Kind = "numeric"
	Bool    Kind = "bool"
	Date    Kind = "date"
)

// IsValid reports whether k is a known kind.
func (k Kind) IsValid() bool {
	switch k {
	case Any, Str, Numeric, Bool, Date:
		return true
	}
	return false
}

// NumericRange holds open numeric bounds as validated number strings.
type NumericRange struct {
	Min  string
	Max  string
	Unit string
}

// DateRange holds open date bounds in canonical UTC form.
type DateRange struct {
	Min string
	Max string
}

// Predicate is one element of the DSL array.
// Key and Str keep their raw form; enclosing quotes request an exact match.
// Only the payload matching Kind is populated.
type Predicate struct {
	Link    Link
	Key     string
	Kind    Kind
	Str     string
	Numeric NumericRange
	Bool    string
	Date    DateRange
}
