package extras

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/recdex/internal/domain"
)

func mustParse(t *testing.T, payload string) []Predicate {
	t.Helper()
	preds, err := Parse([]byte(payload))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return preds
}

func validationFields(t *testing.T, err error) []domain.FieldError {
	t.Helper()
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	return verr.Fields
}

func TestParse_Empty(t *testing.T) {
	for _, payload := range []string{"", "null", "  ", "[]"} {
		preds, err := Parse([]byte(payload))
		if err != nil {
			t.Errorf("Parse(%q) error: %v", payload, err)
		}
		if len(preds) != 0 {
			t.Errorf("Parse(%q) = %v, want none", payload, preds)
		}
	}
}

func TestParse_AllKinds(t *testing.T) {
	preds := mustParse(t, `[
		{"type":"str","key":"material","str":"\"steel\""},
		{"link":"OR","type":"numeric","key":"length","numeric":{"min":"0","max":1,"unit":"cm"}},
		{"link":"and","type":"bool","bool":"TRUE"},
		{"type":"date","date":{"min":"2020-01-01T01:00:00+01:00","max":""}},
		{"key":"sample"}
	]`)

	if len(preds) != 5 {
		t.Fatalf("expected 5 predicates, got %d", len(preds))
	}
	if preds[0].Kind != Str || preds[0].Str != `"steel"` || preds[0].Link != And {
		t.Errorf("str predicate = %+v", preds[0])
	}
	want := NumericRange{Min: "0", Max: "1", Unit: "cm"}
	if preds[1].Link != Or || preds[1].Numeric != want {
		t.Errorf("numeric predicate = %+v", preds[1])
	}
	if preds[2].Bool != "TRUE" {
		t.Errorf("bool predicate = %+v", preds[2])
	}
	if preds[3].Date.Min != "2020-01-01T00:00:00+00:00" || preds[3].Date.Max != "" {
		t.Errorf("date predicate = %+v", preds[3])
	}
	if preds[4].Kind != Any || preds[4].Key != "sample" {
		t.Errorf("key-only predicate = %+v", preds[4])
	}
}

func TestParse_IgnoresForeignPayloads(t *testing.T) {
	preds := mustParse(t, `[{"type":"str","str":"a","date":{"min":"garbage"},"bool":"true"}]`)
	if preds[0].Date != (DateRange{}) || preds[0].Bool != "" {
		t.Errorf("foreign payloads should be dropped: %+v", preds[0])
	}
}

func TestParse_NaNBound(t *testing.T) {
	_, err := Parse([]byte(`[{"type":"numeric","numeric":{"min":"NaN"}}]`))
	fields := validationFields(t, err)
	if len(fields) != 1 {
		t.Fatalf("expected 1 error, got %+v", fields)
	}
	f := fields[0]
	if f.Index != 0 || f.Field != "numeric.min" || !errors.Is(f.Kind, domain.ErrInvalidValue) {
		t.Errorf("unexpected error: %+v", f)
	}
	if !errors.Is(err, domain.ErrInvalidValue) {
		t.Error("errors.Is(err, ErrInvalidValue) = false")
	}
}

func TestParse_CollectsAllErrors(t *testing.T) {
	_, err := Parse([]byte(`[
		{"type":"blob","key":"a"},
		{"type":"date","date":{"min":"tomorrow","max":"2020-13-45"}},
		"not an object",
		{"type":"numeric","numeric":"10"},
		{"type":"str","numeric":{"unit":"cm"}},
		{"link":"xor","type":"bool"}
	]`))
	fields := validationFields(t, err)

	want := []struct {
		index int
		field string
		kind  error
	}{
		{0, "type", domain.ErrInvalidPayload},
		{1, "date.max", domain.ErrInvalidValue},
		{1, "date.min", domain.ErrInvalidValue},
		{2, "", domain.ErrInvalidPayload},
		{3, "numeric", domain.ErrInvalidPayload},
		{4, "numeric.unit", domain.ErrInvalidCombination},
		{5, "link", domain.ErrInvalidPayload},
	}
	if len(fields) != len(want) {
		t.Fatalf("got %d errors, want %d: %+v", len(fields), len(want), fields)
	}
	for i, w := range want {
		if fields[i].Index != w.index || fields[i].Field != w.field || fields[i].Kind != w.kind {
			t.Errorf("error %d = %+v, want %+v", i, fields[i], w)
		}
	}
}

func TestParse_NotAnArray(t *testing.T) {
	_, err := Parse([]byte(`{"type":"str"}`))
	fields := validationFields(t, err)
	if len(fields) != 1 || fields[0].Index != -1 || fields[0].Field != "extras" {
		t.Errorf("unexpected errors: %+v", fields)
	}
	if !errors.Is(err, domain.ErrInvalidPayload) {
		t.Error("expected ErrInvalidPayload")
	}
}

func TestParse_TooMany(t *testing.T) {
	payload := "["
	for i := 0; i <= MaxPredicates; i++ {
		if i > 0 {
			payload += ","
		}
		payload += `{"key":"k"}`
	}
	payload += "]"
	if _, err := Parse([]byte(payload)); !errors.Is(err, domain.ErrInvalidPayload) {
		t.Errorf("expected ErrInvalidPayload, got %v", err)
	}
}
