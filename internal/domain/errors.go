package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrInvalidPayload signals a malformed extras DSL payload.
	ErrInvalidPayload = errors.New("invalid payload")
	// ErrInvalidValue signals a value that violates its type's constraints.
	ErrInvalidValue = errors.New("invalid value")
	// ErrInvalidCombination signals fields that cannot be used together.
	ErrInvalidCombination = errors.New("invalid combination")
	// ErrDependency signals a failed or timed out store/index call.
	ErrDependency = errors.New("dependency error")
	// ErrUnauthorized signals a caller without any read permission.
	ErrUnauthorized = errors.New("unauthorized")
)

// FieldError is a single validation failure.
// Index is the position of the offending predicate (-1 for request-level fields).
type FieldError struct {
	Index   int
	Field   string
	Kind    error
	Message string
}

func (e FieldError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("[%d].%s: %s", e.Index, e.Field, e.Message)
}

// ValidationError collects every validation failure of a request.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Unwrap exposes the distinct error kinds so errors.Is matches any of them.
func (e *ValidationError) Unwrap() []error {
	seen := make(map[error]struct{}, 3)
	var kinds []error
	for _, f := range e.Fields {
		if f.Kind == nil {
			continue
		}
		if _, ok := seen[f.Kind]; ok {
			continue
		}
		seen[f.Kind] = struct{}{}
		kinds = append(kinds, f.Kind)
	}
	return kinds
}

// Add records a failure at the given predicate index.
func (e *ValidationError) Add(index int, field string, kind error, format string, args ...any) {
	e.Fields = append(e.Fields, FieldError{
		Index:   index,
		Field:   field,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	})
}

// Merge appends all failures of other.
func (e *ValidationError) Merge(other *ValidationError) {
	if other == nil {
		return
	}
	e.Fields = append(e.Fields, other.Fields...)
}

// Sort orders failures by index, then field.
func (e *ValidationError) Sort() {
	sort.SliceStable(e.Fields, func(i, j int) bool {
		if e.Fields[i].Index != e.Fields[j].Index {
			return e.Fields[i].Index < e.Fields[j].Index
		}
		return e.Fields[i].Field < e.Fields[j].Field
	})
}

// Err returns nil when nothing was collected.
func (e *ValidationError) Err() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// DependencyError wraps a store or index failure.
type DependencyError struct {
	Dependency string
	Err        error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrDependency.Error(), e.Dependency, e.Err)
}

func (e *DependencyError) Unwrap() []error { return []error{ErrDependency, e.Err} }

// NewDependencyError wraps err as a failure of the named dependency.
func NewDependencyError(dependency string, err error) error {
	return &DependencyError{Dependency: dependency, Err: err}
}
