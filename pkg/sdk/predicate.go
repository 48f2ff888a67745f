package recdex

// Predicate is one element of the extras DSL. Build predicates with the
// typed constructors; they encode to the JSON accepted by the HTTP API.
// A Type outside str, numeric, bool and date fails validation; leave it
// empty to match the key in any partition.
type Predicate struct {
	Link    string        `json:"link,omitempty"`
	Type    string        `json:"type,omitempty"`
	Key     string        `json:"key,omitempty"`
	Str     *string       `json:"str,omitempty"`
	Numeric *NumericRange `json:"numeric,omitempty"`
	Bool    *string       `json:"bool,omitempty"`
	Date    *DateRange    `json:"date,omitempty"`
}

// NumericRange holds exclusive numeric bounds. Empty bounds are open.
type NumericRange struct {
	Min  string `json:"min,omitempty"`
	Max  string `json:"max,omitempty"`
	Unit string `json:"unit,omitempty"`
}

// DateRange holds exclusive date bounds. Empty bounds are open.
type DateRange struct {
	Min string `json:"min,omitempty"`
	Max string `json:"max,omitempty"`
}

// KeyPredicate matches records having key in any scalar partition.
func KeyPredicate(key string) Predicate {
	return Predicate{Key: key}
}

// StrPredicate matches string extras. Wrap key or value in double quotes
// for an exact match.
func StrPredicate(key, value string) Predicate {
	return Predicate{Type: "str", Key: key, Str: &value}
}

// NumericPredicate matches int and float extras strictly between min and max.
func NumericPredicate(key, minValue, maxValue, unit string) Predicate {
	return Predicate{Type: "numeric", Key: key, Numeric: &NumericRange{Min: minValue, Max: maxValue, Unit: unit}}
}

// BoolPredicate matches bool extras. Values other than true/false match the key only.
func BoolPredicate(key, value string) Predicate {
	return Predicate{Type: "bool", Key: key, Bool: &value}
}

// DatePredicate matches date extras strictly between min and max.
func DatePredicate(key, minValue, maxValue string) Predicate {
	return Predicate{Type: "date", Key: key, Date: &DateRange{Min: minValue, Max: maxValue}}
}

// Or returns p joined to the previous predicate with OR.
func (p Predicate) Or() Predicate {
	p.Link = "or"
	return p
}

// And returns p joined to the previous predicate with AND (the default).
func (p Predicate) And() Predicate {
	p.Link = "and"
	return p
}
