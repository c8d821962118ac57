package handlers

import (
	"net/http"
)

// Health reports liveness only; it does not probe the upstream.
func (a *App) Health(w http.ResponseWriter, _ *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"status": "ok", "service": "donation-relay"})
}
