// Package token normalizes raw extras-query tokens before they are compiled.
package token

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/kailas-cloud/recdex/internal/domain"
	"github.com/kailas-cloud/recdex/internal/domain/extra"
)

const quote = '"'

// String strips one pair of enclosing ASCII double quotes.
// A quoted token asks for an exact match. The text is not trimmed;
// an empty result means the token imposes no condition.
func String(raw string) (text string, exact bool) {
	if len(raw) >= 2 && raw[0] == quote && raw[len(raw)-1] == quote {
		return raw[1 : len(raw)-1], true
	}
	return raw, false
}

// Number checks that raw parses as a finite number and returns it as a string,
// so the same bound can be sent to both numeric partitions.
func Number(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return "", fmt.Errorf("%w: %q is not a number", domain.ErrInvalidValue, raw)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("%w: %q is not a finite number", domain.ErrInvalidValue, raw)
	}
	return s, nil
}

// Date parses an ISO-8601 timestamp and returns it in canonical UTC form.
func Date(raw string) (string, error) {
	t, err := extra.ParseDate(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidValue, err)
	}
	return extra.FormatDate(t), nil
}

// Bool maps "true"/"false" in any letter case to a boolean.
// ok is false for anything else, which drops the value condition.
func Bool(raw string) (value, ok bool) {
	switch {
	case strings.EqualFold(raw, "true"):
		return true, true
	case strings.EqualFold(raw, "false"):
		return false, true
	}
	return false, false
}
