package services

import (
	"errors"
	"fmt"
	"sync"

	"backend-service/utils"
)

// Lifecycle collects cleanup tasks that must run when the process shuts down
type Lifecycle struct {
	mu       sync.Mutex
	hooks    []hook
	shutdown bool
}

type hook struct {
	name string
	fn   func() error
}

// NewLifecycle creates an empty Lifecycle
func NewLifecycle() *Lifecycle {
	return &Lifecycle{}
}

// OnShutdown registers a cleanup task. Tasks run in reverse registration order.
// Registering after Shutdown runs the task immediately.
func (l *Lifecycle) OnShutdown(name string, fn func() error) {
	l.mu.Lock()
	if !l.shutdown {
		l.hooks = append(l.hooks, hook{name: name, fn: fn})
		l.mu.Unlock()
		return
	}
	l.mu.Unlock()

	if err := fn(); err != nil {
		utils.LogError("SHUTDOWN", err, "task", name)
	}
}

// Shutdown runs every registered task once, even if earlier ones fail
func (l *Lifecycle) Shutdown() error {
	l.mu.Lock()
	if l.shutdown {
		l.mu.Unlock()
		return nil
	}
	l.shutdown = true
	hooks := l.hooks
	l.hooks = nil
	l.mu.Unlock()

	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		h := hooks[i]
		if err := h.fn(); err != nil {
			utils.LogError("SHUTDOWN", err, "task", h.name)
			errs = append(errs, fmt.Errorf("%s: %w", h.name, err))
			continue
		}
		utils.LogInfo("Shutdown task completed", "task", h.name)
	}
	return errors.Join(errs...)
}
