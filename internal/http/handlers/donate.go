package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"donation-relay/internal/domain"
	"donation-relay/internal/middleware"
)

const (
	maxClaimBytes = 16 << 10

	upstreamFailedMessage = "Upstream request failed"
)

// Donate relays a donation claim and mirrors the upstream's status and body.
func (a *App) Donate(w http.ResponseWriter, r *http.Request) {
	var claim domain.DonationClaim
	body := http.MaxBytesReader(w, r.Body, maxClaimBytes)
	// Syntax errors and wrongly typed fields share the missing-fields answer.
	if err := json.NewDecoder(body).Decode(&claim); err != nil && !errors.Is(err, io.EOF) {
		a.error(w, http.StatusBadRequest, domain.MissingFieldsMessage)
		return
	}

	resp, err := a.Relay.Relay(r.Context(), claim)
	switch {
	case errors.Is(err, domain.ErrValidation):
		a.error(w, http.StatusBadRequest, domain.MissingFieldsMessage)
		return
	case err != nil:
		// The cause stays in the log; callers only learn the upstream failed.
		a.Logger.Error().
			Err(err).
			Str("request_id", middleware.RequestIDFromContext(r.Context())).
			Msg("donate: relay failed")
		a.error(w, http.StatusBadGateway, upstreamFailedMessage)
		return
	}

	contentType := resp.ContentType
	if contentType == "" {
		contentType = "text/plain; charset=utf-8"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(resp.StatusCode)
	_, _ = io.WriteString(w, resp.Body)
}
