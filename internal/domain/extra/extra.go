// Package extra models the typed key/value metadata ("extras") attached to records.
package extra

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Type is the tagged variant of an extra.
type Type string

// Extra type constants.
const (
	Str   Type = "str"
	Int   Type = "int"
	Float Type = "float"
	Bool  Type = "bool"
	Date  Type = "date"
	// Dict holds keyed nested extras.
	Dict Type = "dict"
	// List holds unkeyed nested extras.
	List Type = "list"
)

// Value limits.
const (
	// MaxSafeInt is the largest integer that round-trips through a float64 JSON decoder.
	MaxSafeInt = 1<<53 - 1
	MinSafeInt = -MaxSafeInt
	MaxStrLen  = 10000
	MaxKeyLen  = 256
)

// IsValid reports whether t is a known extra type.
func (t Type) IsValid() bool {
	switch t {
	case Str, Int, Float, Bool, Date, Dict, List:
		return true
	}
	return false
}

// IsNested reports whether t is a container type.
func (t Type) IsNested() bool { return t == Dict || t == List }

// IsNumeric reports whether t belongs to the numeric family.
func (t Type) IsNumeric() bool { return t == Int || t == Float }

// Validation is an optional constraint block on scalar extras.
type Validation struct {
	Required bool  `json:"required,omitempty"`
	Options  []any `json:"options,omitempty"`
}

// Extra is a single typed metadata entry.
// Value holds string, int64, float64, bool, time.Time or nil once normalized;
// nested types keep their members in Children instead.
type Extra struct {
	Type       Type
	Key        string
	Value      any
	Unit       *string
	Validation *Validation
	Children   []Extra
}

type extraJSON struct {
	Type       Type            `json:"type"`
	Key        string          `json:"key,omitempty"`
	Value      json.RawMessage `json:"value,omitempty"`
	Unit       *string         `json:"unit,omitempty"`
	Validation *Validation     `json:"validation,omitempty"`
}

// UnmarshalJSON decodes an extra, keeping scalar values loosely typed
// (json.Number for numbers) until Normalize coerces them.
func (e *Extra) UnmarshalJSON(data []byte) error {
	var aux extraJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("decode extra: %w", err)
	}
	*e = Extra{Type: aux.Type, Key: aux.Key, Unit: aux.Unit, Validation: aux.Validation}

	raw := bytes.TrimSpace(aux.Value)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	if aux.Type.IsNested() {
		var children []Extra
		if err := json.Unmarshal(raw, &children); err != nil {
			return fmt.Errorf("decode %s %q members: %w", aux.Type, aux.Key, err)
		}
		e.Children = children
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("decode value of %q: %w", aux.Key, err)
	}
	e.Value = v
	return nil
}

// MarshalJSON encodes the extra with dates in canonical UTC form.
func (e Extra) MarshalJSON() ([]byte, error) {
	aux := extraJSON{Type: e.Type, Key: e.Key, Unit: e.Unit, Validation: e.Validation}

	var value any
	switch {
	case e.Type.IsNested():
		children := e.Children
		if children == nil {
			children = []Extra{}
		}
		value = children
	default:
		if t, ok := e.Value.(time.Time); ok {
			value = FormatDate(t)
		} else {
			value = e.Value
		}
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encode value of %q: %w", e.Key, err)
	}
	aux.Value = raw
	return json.Marshal(aux)
}
