package extra

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/kailas-cloud/recdex/internal/domain"
)

// Normalize validates a top-level extras array and returns a copy with trimmed
// keys and coerced values. Every violation is reported; FieldError.Index is
// the top-level position and FieldError.Field the dotted path below it.
func Normalize(extras []Extra) ([]Extra, error) {
	verr := &domain.ValidationError{}
	out := make([]Extra, len(extras))
	seen := make(map[string]struct{}, len(extras))

	for i := range extras {
		n := &normalizer{index: i, verr: verr}
		out[i] = n.extra(extras[i], "", false)
		if out[i].Key == "" {
			n.fail("key", domain.ErrInvalidPayload, "key is required")
			continue
		}
		if _, dup := seen[out[i].Key]; dup {
			n.fail("key", domain.ErrInvalidCombination, "duplicate key %q", out[i].Key)
		}
		seen[out[i].Key] = struct{}{}
	}

	verr.Sort()
	if err := verr.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type normalizer struct {
	index int
	verr  *domain.ValidationError
}

func (n *normalizer) fail(field string, kind error, format string, args ...any) {
	n.verr.Add(n.index, field, kind, format, args...)
}

func join(prefix, field string) string {
	if prefix == "" {
		return field
	}
	return prefix + "." + field
}

// extra normalizes e located at path. inList marks children of a List.
func (n *normalizer) extra(e Extra, path string, inList bool) Extra {
	out := Extra{Type: e.Type, Key: strings.TrimSpace(e.Key)}

	switch {
	case inList && out.Key != "":
		n.fail(join(path, "key"), domain.ErrInvalidPayload, "list members must not have a key")
	case len(out.Key) > MaxKeyLen:
		n.fail(join(path, "key"), domain.ErrInvalidValue, "key exceeds %d characters", MaxKeyLen)
	}

	if !e.Type.IsValid() {
		n.fail(join(path, "type"), domain.ErrInvalidPayload, "unknown type %q", e.Type)
		return out
	}

	if e.Unit != nil {
		if !e.Type.IsNumeric() {
			n.fail(join(path, "unit"), domain.ErrInvalidCombination, "unit is only allowed on int and float extras")
		} else if u := strings.TrimSpace(*e.Unit); u != "" {
			out.Unit = &u
		}
	}

	if e.Type.IsNested() {
		if e.Validation != nil {
			n.fail(join(path, "validation"), domain.ErrInvalidCombination, "validation is not allowed on %s extras", e.Type)
		}
		if e.Value != nil {
			n.fail(join(path, "value"), domain.ErrInvalidPayload, "%s value must be an array of extras", e.Type)
		}
		out.Children = n.children(e, path)
		return out
	}

	if len(e.Children) > 0 {
		n.fail(join(path, "value"), domain.ErrInvalidPayload, "%s value must be a scalar", e.Type)
	}

	v, msg := coerce(e.Type, e.Value)
	if msg != "" {
		n.fail(join(path, "value"), domain.ErrInvalidValue, "%s", msg)
	}
	out.Value = v

	if e.Validation != nil {
		out.Validation = n.validation(e.Type, out.Value, e.Validation, path)
	}
	return out
}

func (n *normalizer) children(e Extra, path string) []Extra {
	out := make([]Extra, len(e.Children))
	seen := make(map[string]struct{}, len(e.Children))
	for i, child := range e.Children {
		childPath := join(path, "value."+strconv.Itoa(i))
		out[i] = n.extra(child, childPath, e.Type == List)
		if e.Type != Dict {
			continue
		}
		if out[i].Key == "" {
			n.fail(join(childPath, "key"), domain.ErrInvalidPayload, "key is required")
			continue
		}
		if _, dup := seen[out[i].Key]; dup {
			n.fail(join(childPath, "key"), domain.ErrInvalidCombination, "duplicate key %q", out[i].Key)
		}
		seen[out[i].Key] = struct{}{}
	}
	return out
}

func (n *normalizer) validation(t Type, value any, v *Validation, extraPath string) *Validation {
	path := join(extraPath, "validation")
	out := &Validation{Required: v.Required}
	if v.Required && value == nil {
		n.fail(path+".required", domain.ErrInvalidValue, "value is required")
	}
	if len(v.Options) == 0 {
		return out
	}
	if t == Bool {
		n.fail(path+".options", domain.ErrInvalidCombination, "options are not allowed on bool extras")
		return out
	}

	matched := value == nil
	for i, opt := range v.Options {
		ov, msg := coerce(t, opt)
		if msg != "" || ov == nil {
			n.fail(path+".options."+strconv.Itoa(i), domain.ErrInvalidValue, "option does not match type %s", t)
			continue
		}
		out.Options = append(out.Options, ov)
		if equalValues(ov, value) {
			matched = true
		}
	}
	if !matched {
		n.fail(join(extraPath, "value"), domain.ErrInvalidValue, "value is not one of the allowed options")
	}
	return out
}

func equalValues(a, b any) bool {
	ta, ok := a.(time.Time)
	if ok {
		tb, ok := b.(time.Time)
		return ok && ta.Equal(tb)
	}
	return a == b
}

// coerce converts a loosely typed scalar to the Go type of t.
// It returns a non-empty message when the value violates the type's constraints.
func coerce(t Type, v any) (any, string) {
	if v == nil {
		return nil, ""
	}
	switch t {
	case Str:
		s, ok := v.(string)
		if !ok {
			return nil, "value must be a string"
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, ""
		}
		if len([]rune(s)) > MaxStrLen {
			return nil, "string exceeds " + strconv.Itoa(MaxStrLen) + " characters"
		}
		return s, ""
	case Int:
		return coerceInt(v)
	case Float:
		return coerceFloat(v)
	case Bool:
		b, ok := v.(bool)
		if !ok {
			return nil, "value must be a boolean"
		}
		return b, ""
	case Date:
		switch d := v.(type) {
		case time.Time:
			return d.UTC(), ""
		case string:
			if strings.TrimSpace(d) == "" {
				return nil, ""
			}
			parsed, err := ParseDate(d)
			if err != nil {
				return nil, err.Error()
			}
			return parsed, ""
		}
		return nil, "value must be an ISO-8601 date"
	}
	return nil, "value is not allowed for type " + string(t)
}

func coerceInt(v any) (any, string) {
	var i int64
	switch n := v.(type) {
	case json.Number:
		parsed, err := strconv.ParseInt(n.String(), 10, 64)
		if err != nil {
			return nil, "value must be an integer"
		}
		i = parsed
	case int:
		i = int64(n)
	case int32:
		i = int64(n)
	case int64:
		i = n
	case float64:
		if n != math.Trunc(n) || math.Abs(n) > MaxSafeInt {
			return nil, "value must be an integer within the safe range"
		}
		i = int64(n)
	default:
		return nil, "value must be an integer"
	}
	if i < MinSafeInt || i > MaxSafeInt {
		return nil, "integer out of range"
	}
	return i, ""
}

func coerceFloat(v any) (any, string) {
	var f float64
	switch n := v.(type) {
	case json.Number:
		parsed, err := strconv.ParseFloat(n.String(), 64)
		if err != nil {
			return nil, "value must be a number"
		}
		f = parsed
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	default:
		return nil, "value must be a number"
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, "value must be a finite number"
	}
	return f, ""
}
