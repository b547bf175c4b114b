// cmd/veritas/state.go
package main

import (
	"sync"
	"time"
)

// State tracks process-memory runtime counters. Nothing here survives a
// restart.
type State struct {
	mu sync.Mutex

	StartupTime   time.Time
	ChecksRun     int
	ChecksDenied  int
	AlertsSent    int
	ErrorCount    int
	LastError     string
	LastErrorTime time.Time
}

var state = &State{StartupTime: time.Now()}

// GetState returns the global runtime state
func GetState() *State {
	return state
}

// RecordCheck counts one accepted pipeline run
func (s *State) RecordCheck() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ChecksRun++
}

// RecordDenied counts one cooldown denial
func (s *State) RecordDenied() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ChecksDenied++
}

// RecordAlert counts one delivered watch alert
func (s *State) RecordAlert() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.AlertsSent++
}

// RecordError notes the most recent error
func (s *State) RecordError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ErrorCount++
	s.LastError = msg
	s.LastErrorTime = time.Now()
}

// Snapshot returns a copy of the counters for reporting
func (s *State) Snapshot() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	return map[string]interface{}{
		"version":        VERSION,
		"uptime_seconds": int64(time.Since(s.StartupTime).Seconds()),
		"checks_run":     s.ChecksRun,
		"checks_denied":  s.ChecksDenied,
		"alerts_sent":    s.AlertsSent,
		"error_count":    s.ErrorCount,
		"last_error":     s.LastError,
	}
}
