package recdex

import (
	"context"
	"fmt"
	"time"

	healthuc "github.com/kailas-cloud/recdex/internal/usecase/health"
)

// HealthStatus reports the permission store and index engine health.
// Status is "ok", "degraded" or "error"; Checks maps "database" and
// "index" to "ok" or "error".
type HealthStatus struct {
	Status string
	Checks map[string]string
}

// Healthy reports whether every component passed.
func (h HealthStatus) Healthy() bool { return h.Status == string(healthuc.Healthy) }

// Health checks the permission store and the index engine.
func (c *Client) Health(ctx context.Context) HealthStatus {
	start := time.Now()
	report := c.healthSvc.Check(ctx)

	h := HealthStatus{
		Status: string(report.Status),
		Checks: make(map[string]string, len(report.Checks)),
	}
	for component, res := range report.Checks {
		h.Checks[component] = string(res)
	}

	var err error
	if !h.Healthy() {
		err = fmt.Errorf("health %s", h.Status)
	}
	c.obs.observe("health", start, -1, err)
	return h
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}
