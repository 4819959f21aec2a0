// File: backend/internal/api/ping_handler.go
package api

import (
	"net/http"
)

// PingHandler is a liveness probe, unauthenticated by design.
func (h *APIHandler) PingHandler(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok", "message": "pong"})
}
