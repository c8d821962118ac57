package httpapi

import (
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"donation-relay/internal/http/handlers"
	"donation-relay/internal/infra"
	"donation-relay/internal/middleware"
)

// NewRouter wires the relay routes. CORS only guards /api; the health and
// documentation routes are same-origin GETs.
func NewRouter(app *handlers.App, logger infra.Logger, allowedOrigins []*regexp.Regexp) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		middleware.Logger(logger),
		chimw.Recoverer,
	)

	r.Get("/healthz", app.Health)
	r.Get("/openapi.json", app.OpenAPIJSON)
	r.Get("/docs", app.OpenAPIDocs)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.CORS(allowedOrigins, http.MethodPost, http.MethodOptions))
		r.Post("/donate", app.Donate)
	})

	return r
}
