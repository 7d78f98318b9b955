package controllers

import (
	"sync/atomic"
	"time"
)

// AppState carries process-wide flags that gate degraded-mode behaviour.
type AppState struct {
	dbAvailable atomic.Bool
	startedAt   time.Time
}

// NewAppState returns a state with the database marked unavailable.
func NewAppState() *AppState {
	return &AppState{startedAt: time.Now()}
}

// SetDatabaseAvailable records whether the startup schema check succeeded.
func (s *AppState) SetDatabaseAvailable(ok bool) { s.dbAvailable.Store(ok) }

// DatabaseAvailable reports whether routes may use the database.
func (s *AppState) DatabaseAvailable() bool { return s.dbAvailable.Load() }

// Uptime is the time since the state was created, in seconds.
func (s *AppState) Uptime() float64 { return time.Since(s.startedAt).Seconds() }
