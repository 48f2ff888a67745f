package extras

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/kailas-cloud/recdex/internal/domain"
	"github.com/kailas-cloud/recdex/internal/domain/search/token"
)

type rawPredicate struct {
	Link    json.RawMessage `json:"link"`
	Type    json.RawMessage `json:"type"`
	Key     json.RawMessage `json:"key"`
	Str     json.RawMessage `json:"str"`
	Numeric json.RawMessage `json:"numeric"`
	Bool    json.RawMessage `json:"bool"`
	Date    json.RawMessage `json:"date"`
}

type rawNumeric struct {
	Min  json.RawMessage `json:"min"`
	Max  json.RawMessage `json:"max"`
	Unit json.RawMessage `json:"unit"`
}

type rawDate struct {
	Min json.RawMessage `json:"min"`
	Max json.RawMessage `json:"max"`
}

// Parse decodes and validates a DSL payload. An empty or null payload yields
// no predicates. All failures are collected into a *domain.ValidationError.
// A type other than str, numeric, bool or date is rejected as ErrInvalidPayload;
// omit the type to match the key in any partition.
func Parse(data []byte) ([]Predicate, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || isNull(data) {
		return nil, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		verr := &domain.ValidationError{}
		verr.Add(-1, "extras", domain.ErrInvalidPayload, "extras must be an array")
		return nil, verr
	}
	if len(items) > MaxPredicates {
		verr := &domain.ValidationError{}
		verr.Add(-1, "extras", domain.ErrInvalidPayload, "too many predicates (max %d)", MaxPredicates)
		return nil, verr
	}

	verr := &domain.ValidationError{}
	preds := make([]Predicate, 0, len(items))
	for i, item := range items {
		p := &parser{index: i, verr: verr}
		preds = append(preds, p.predicate(item))
	}

	verr.Sort()
	if err := verr.Err(); err != nil {
		return nil, err
	}
	return preds, nil
}

type parser struct {
	index int
	verr  *domain.ValidationError
}

func (p *parser) fail(field string, kind error, format string, args ...any) {
	p.verr.Add(p.index, field, kind, format, args...)
}

func (p *parser) predicate(data json.RawMessage) Predicate {
	var raw rawPredicate
	if !isObject(data) || json.Unmarshal(data, &raw) != nil {
		p.fail("", domain.ErrInvalidPayload, "predicate must be an object")
		return Predicate{}
	}

	var pred Predicate

	link := strings.ToLower(p.str(raw.Link, "link"))
	switch Link(link) {
	case "", And:
		pred.Link = And
	case Or:
		pred.Link = Or
	default:
		p.fail("link", domain.ErrInvalidPayload, "link must be \"and\" or \"or\", got %q", link)
	}

	pred.Kind = Kind(strings.ToLower(p.str(raw.Type, "type")))
	if !pred.Kind.IsValid() {
		p.fail("type", domain.ErrInvalidPayload, "unknown type %q", pred.Kind)
	}
	pred.Key = p.str(raw.Key, "key")

	switch pred.Kind {
	case Str:
		pred.Str = p.str(raw.Str, "str")
	case Numeric:
		pred.Numeric = p.numeric(raw.Numeric)
	case Bool:
		pred.Bool = p.str(raw.Bool, "bool")
	case Date:
		pred.Date = p.date(raw.Date)
	}

	if pred.Kind != Numeric {
		p.rejectUnit(raw.Numeric)
	}
	return pred
}

// str decodes an optional string field. JSON numbers and booleans are
// accepted by their literal text.
func (p *parser) str(data json.RawMessage, field string) string {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || isNull(data) {
		return ""
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		return n.String()
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		if b {
			return "true"
		}
		return "false"
	}
	p.fail(field, domain.ErrInvalidPayload, "%s must be a string", field)
	return ""
}

func (p *parser) numeric(data json.RawMessage) NumericRange {
	if len(bytes.TrimSpace(data)) == 0 || isNull(data) {
		return NumericRange{}
	}
	var raw rawNumeric
	if !isObject(data) || json.Unmarshal(data, &raw) != nil {
		p.fail("numeric", domain.ErrInvalidPayload, "numeric must be an object")
		return NumericRange{}
	}
	return NumericRange{
		Min:  p.bound(raw.Min, "numeric.min", token.Number),
		Max:  p.bound(raw.Max, "numeric.max", token.Number),
		Unit: p.str(raw.Unit, "numeric.unit"),
	}
}

func (p *parser) date(data json.RawMessage) DateRange {
	if len(bytes.TrimSpace(data)) == 0 || isNull(data) {
		return DateRange{}
	}
	var raw rawDate
	if !isObject(data) || json.Unmarshal(data, &raw) != nil {
		p.fail("date", domain.ErrInvalidPayload, "date must be an object")
		return DateRange{}
	}
	return DateRange{
		Min: p.bound(raw.Min, "date.min", token.Date),
		Max: p.bound(raw.Max, "date.max", token.Date),
	}
}

// bound decodes an optional bound and normalizes it. Blank bounds are absent.
func (p *parser) bound(data json.RawMessage, field string, normalize func(string) (string, error)) string {
	s := p.str(data, field)
	if strings.TrimSpace(s) == "" {
		return ""
	}
	out, err := normalize(s)
	if err != nil {
		kind := domain.ErrInvalidPayload
		if errors.Is(err, domain.ErrInvalidValue) {
			kind = domain.ErrInvalidValue
		}
		p.fail(field, kind, "%s", err.Error())
		return ""
	}
	return out
}

func (p *parser) rejectUnit(data json.RawMessage) {
	if !isObject(data) {
		return
	}
	var raw rawNumeric
	if json.Unmarshal(data, &raw) != nil {
		return
	}
	var unit string
	if json.Unmarshal(raw.Unit, &unit) == nil && strings.TrimSpace(unit) != "" {
		p.fail("numeric.unit", domain.ErrInvalidCombination, "unit is only allowed on numeric predicates")
	}
}

func isNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}

func isObject(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) > 0 && data[0] == '{'
}
