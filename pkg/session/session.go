// Package session holds the dashboard's per-user interaction state: the
// node selection, the categorical filter, and the render choices (layout,
// color attribute, neighbor mode).
//
// Every interaction event is one synchronous cycle: load the session, apply
// exactly one state transition, persist the session, rebuild the scene.
// Sessions never embed the graph itself - the server owns the single loaded
// graph, and all session mutations validate node IDs against it.
//
// # Storage
//
// The Store interface supports pluggable backends:
//   - memory: in-process map for single-instance serving (the default)
//   - redis: shared storage for multi-instance deployments
//
// Create a store and a session:
//
//	store := session.NewMemoryStore()
//	sess := session.New(session.Defaults{Layout: "circle"})
//	store.Set(ctx, sess)
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by Store.Get when a session does not exist or
// has expired.
var ErrNotFound = errors.New("session not found")

// DefaultTTL is the default session duration.
const DefaultTTL = 24 * time.Hour

// Defaults seeds a fresh session with the dashboard's startup choices.
type Defaults struct {
	Layout       string       // initial layout algorithm name
	ColorAttr    string       // initial categorical coloring attribute
	NeighborMode NeighborMode // highlight policy for directed graphs
}

// Session is the explicit per-user interaction context, passed to each
// event handler and persisted after each state transition. It replaces
// ambient global dashboard state so every transition is unit-testable.
type Session struct {
	ID           string       `json:"id"`
	Selection    Selection    `json:"selection"`
	Filter       Filter       `json:"filter"`
	Layout       string       `json:"layout"`
	ColorAttr    string       `json:"color_attr"`
	NeighborMode NeighborMode `json:"neighbor_mode"`
	CreatedAt    time.Time    `json:"created_at"`
	ExpiresAt    time.Time    `json:"expires_at"`
}

// New creates a session with a fresh ID and the given defaults.
func New(d Defaults) *Session {
	if d.NeighborMode == "" {
		d.NeighborMode = NeighborsBoth
	}
	now := time.Now()
	return &Session{
		ID:           uuid.NewString(),
		Layout:       d.Layout,
		ColorAttr:    d.ColorAttr,
		NeighborMode: d.NeighborMode,
		CreatedAt:    now,
		ExpiresAt:    now.Add(DefaultTTL),
	}
}

// IsExpired reports whether the session has exceeded its TTL.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Reset clears the interaction state, used when a new graph is loaded.
// Layout, color, and neighbor-mode choices survive the reset.
func (s *Session) Reset() {
	s.Selection.Clear()
	s.Filter.Clear()
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID.
	// Returns ErrNotFound if the session doesn't exist or has expired.
	Get(ctx context.Context, id string) (*Session, error)

	// Set stores a session.
	Set(ctx context.Context, sess *Session) error

	// Delete removes a session.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired sessions (no-op for Redis, which expires
	// keys natively).
	Cleanup(ctx context.Context) error
}
