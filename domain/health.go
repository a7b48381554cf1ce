package domain

import "context"

// DependencyCheck probes one backing service
type DependencyCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// ReadinessReporter tells the readiness probe whether the server is accepting traffic
type ReadinessReporter interface {
	IsReady() bool
}
