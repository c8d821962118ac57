package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"donation-relay/internal/domain"
	"donation-relay/internal/infra"
)

// Relayer forwards a validated claim upstream.
type Relayer interface {
	Relay(ctx context.Context, claim domain.DonationClaim) (*domain.UpstreamResponse, error)
}

type App struct {
	Relay  Relayer
	Logger *infra.Logger
}

func NewApp(relay Relayer, logger *infra.Logger) *App {
	if logger == nil {
		logger = infra.NopLogger()
	}
	return &App{Relay: relay, Logger: logger}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, msg string) {
	a.json(w, code, domain.ErrorPayload{Error: msg})
}
