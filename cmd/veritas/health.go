// cmd/veritas/health.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// HealthServer exposes liveness and runtime counters over HTTP for the
// hosting platform
type HealthServer struct {
	server   *http.Server
	sessions *SessionManager
	watcher  *Watcher
}

// NewHealthServer creates the health endpoint server
func NewHealthServer(port int, sessions *SessionManager, watcher *Watcher) *HealthServer {
	hs := &HealthServer{
		sessions: sessions,
		watcher:  watcher,
	}

	router := mux.NewRouter()
	router.HandleFunc("/healthz", hs.handleHealthz).Methods(http.MethodGet)
	router.HandleFunc("/status", hs.handleStatus).Methods(http.MethodGet)

	hs.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	return hs
}

// Start serves the health endpoints in the background
func (hs *HealthServer) Start() {
	go func() {
		if err := hs.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			Logger().Error("Health server error: %v", err)
		}
	}()
	Logger().Info("Health server listening on %s", hs.server.Addr)
}

// Stop shuts the health server down
func (hs *HealthServer) Stop(ctx context.Context) error {
	return hs.server.Shutdown(ctx)
}

func (hs *HealthServer) handleHealthz(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (hs *HealthServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	snapshot := GetState().Snapshot()
	if hs.sessions != nil {
		snapshot["live_sessions"] = hs.sessions.Count()
	}
	if hs.watcher != nil {
		snapshot["buffered_messages"] = hs.watcher.BufferedCount()
	}
	respondWithJSON(w, http.StatusOK, snapshot)
}

// respondWithJSON writes a JSON response with the given status code
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		Logger().Error("Failed to encode JSON response: %v", err)
	}
}
