package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockDBPinger struct {
	err error
}

func (m *mockDBPinger) Ping(_ context.Context) error { return m.err }

type mockIndexChecker struct {
	err error
}

func (m *mockIndexChecker) HealthCheck(_ context.Context) error { return m.err }

// --- Tests ---

func TestCheck(t *testing.T) {
	down := errors.New("down")

	tests := []struct {
		name     string
		dbErr    error
		index    IndexChecker
		status   Status
		database CheckResult
		idx      CheckResult
	}{
		{"all healthy", nil, &mockIndexChecker{}, Healthy, CheckOK, CheckOK},
		{"db error", down, &mockIndexChecker{}, Degraded, CheckError, CheckOK},
		{"index error", nil, &mockIndexChecker{err: down}, Degraded, CheckOK, CheckError},
		{"both fail", down, &mockIndexChecker{err: down}, Unhealthy, CheckError, CheckError},
		{"no index", nil, nil, Healthy, CheckOK, ""},
		{"no index db error", down, nil, Unhealthy, CheckError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := New(&mockDBPinger{err: tt.dbErr}, tt.index)
			r := svc.Check(context.Background())

			if r.Status != tt.status {
				t.Errorf("expected %q, got %q", tt.status, r.Status)
			}
			if r.Checks[ComponentDatabase] != tt.database {
				t.Errorf("expected database %q, got %q", tt.database, r.Checks[ComponentDatabase])
			}
			got, ok := r.Checks[ComponentIndex]
			if tt.idx == "" {
				if ok {
					t.Error("index check should be absent when index is nil")
				}
				return
			}
			if got != tt.idx {
				t.Errorf("expected index %q, got %q", tt.idx, got)
			}
		})
	}
}
