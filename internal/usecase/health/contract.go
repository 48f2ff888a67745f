package health

import "context"

// DBPinger checks permission store availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// IndexChecker checks index engine availability.
type IndexChecker interface {
	HealthCheck(ctx context.Context) error
}
