package api

import (
	"sync/atomic"

	"backend-service/domain"
)

var _ domain.ReadinessReporter = &ReadyState{}

// ReadyState tracks whether the server is bound and accepting traffic
type ReadyState struct {
	listening atomic.Bool
}

// NewReadyState creates a ReadyState that starts out not ready
func NewReadyState() *ReadyState {
	return &ReadyState{}
}

// MarkReady is called once the listener is bound
func (r *ReadyState) MarkReady() {
	r.listening.Store(true)
}

// MarkNotReady is called when shutdown begins so load balancers drain us
func (r *ReadyState) MarkNotReady() {
	r.listening.Store(false)
}

// IsReady returns true while the server is accepting traffic
func (r *ReadyState) IsReady() bool {
	return r.listening.Load()
}
