// Package observability provides hooks for instrumenting the dashboard
// without adding hard dependencies on specific metrics backends.
//
// The package uses a simple hooks pattern: define hook interfaces, provide
// no-op default implementations, and allow registration of custom
// implementations at startup. Hooks are registered by main, not by
// libraries, which avoids import cycles and keeps the core packages free
// of observability frameworks.
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetEventHooks(&myEventHooks{})
//	    // ... run application
//	}
package observability

import (
	"context"
	"sync"
	"time"
)

// EventHooks receives events from the dashboard's interaction handlers.
// One pair of calls brackets each state transition: session load, mutation,
// persist, scene rebuild.
type EventHooks interface {
	// OnEventStart records an incoming interaction event.
	OnEventStart(ctx context.Context, event, sessionID string)

	// OnEventComplete records the outcome of an interaction event.
	OnEventComplete(ctx context.Context, event, sessionID string, duration time.Duration, err error)
}

// SessionHooks receives events from session store operations.
type SessionHooks interface {
	// OnSessionCreated records a new session.
	OnSessionCreated(ctx context.Context, sessionID string)

	// OnSessionExpired records an expired session encountered on lookup.
	OnSessionExpired(ctx context.Context, sessionID string)
}

// NoopEventHooks is a no-op implementation of EventHooks.
type NoopEventHooks struct{}

func (NoopEventHooks) OnEventStart(context.Context, string, string)                          {}
func (NoopEventHooks) OnEventComplete(context.Context, string, string, time.Duration, error) {}

// NoopSessionHooks is a no-op implementation of SessionHooks.
type NoopSessionHooks struct{}

func (NoopSessionHooks) OnSessionCreated(context.Context, string) {}
func (NoopSessionHooks) OnSessionExpired(context.Context, string) {}

var (
	eventHooks   EventHooks   = NoopEventHooks{}
	sessionHooks SessionHooks = NoopSessionHooks{}
	hooksMu      sync.RWMutex
)

// SetEventHooks registers custom event hooks. This should be called once at
// application startup before the server handles requests.
func SetEventHooks(h EventHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		eventHooks = h
	}
}

// SetSessionHooks registers custom session hooks.
func SetSessionHooks(h SessionHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		sessionHooks = h
	}
}

// Events returns the registered event hooks.
func Events() EventHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return eventHooks
}

// Sessions returns the registered session hooks.
func Sessions() SessionHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return sessionHooks
}
