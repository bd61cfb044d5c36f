package app

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	httpserver "github.com/fairyhunter13/skills-gap-navigator/internal/adapter/httpserver"
	"github.com/fairyhunter13/skills-gap-navigator/internal/adapter/observability"
	"github.com/fairyhunter13/skills-gap-navigator/internal/config"
)

// ParseOrigins splits a comma-separated origin list into a slice, trimming spaces.
// If the input is empty, returns ["*"].
func ParseOrigins(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || s == "*" {
		return []string{"*"}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// BuildRouter constructs the HTTP handler with all middlewares and routes.
func BuildRouter(cfg config.Config, srv *httpserver.Server) http.Handler {
	r := chi.NewRouter()
	r.Use(httpserver.Recoverer())
	r.Use(httpserver.RequestID())
	r.Use(httpserver.AccessLog())
	r.Use(observability.HTTPMetricsMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   ParseOrigins(cfg.CORSAllowOrigins),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Route("/v1", func(v1 chi.Router) {
		v1.Use(httpserver.RequireJSON)

		v1.Route("/sessions", func(sr chi.Router) {
			sr.Get("/{id}", srv.GetSessionHandler())
			// Every mutating call may reach the AI service.
			sr.Group(func(wr chi.Router) {
				if cfg.RateLimitPerMin > 0 {
					wr.Use(httprate.LimitByIP(cfg.RateLimitPerMin, 1*time.Minute))
				}
				wr.Post("/", srv.CreateSessionHandler())
				wr.Delete("/{id}", srv.DeleteSessionHandler())
				wr.Post("/{id}/search", srv.SearchHandler())
				wr.Post("/{id}/pathways", srv.PathwaysHandler())
				wr.Post("/{id}/employers", srv.EmployersHandler())
				wr.Post("/{id}/retry", srv.RetryHandler())
			})
		})

		v1.Group(func(cr chi.Router) {
			cr.Use(httpserver.AdminGuard(cfg))
			cr.Get("/credential", srv.GetCredentialHandler())
			cr.Put("/credential", srv.PutCredentialHandler())
			cr.Delete("/credential", srv.DeleteCredentialHandler())
		})
	})

	r.Get("/healthz", srv.HealthzHandler())
	r.Get("/readyz", srv.ReadyzHandler())
	r.Handle("/metrics", promhttp.Handler())

	traced := otelhttp.NewHandler(r, "navigator.http",
		otelhttp.WithSpanNameFormatter(func(_ string, req *http.Request) string {
			return req.Method + " " + spanRoute(req.URL.Path)
		}),
	)
	return httpserver.SecurityHeaders(traced)
}

// spanRoute collapses session ids so span names stay low-cardinality.
func spanRoute(path string) string {
	const prefix = "/v1/sessions/"
	if !strings.HasPrefix(path, prefix) {
		return path
	}
	rest := strings.TrimPrefix(path, prefix)
	if _, tail, ok := strings.Cut(rest, "/"); ok {
		return prefix + "{id}/" + tail
	}
	return prefix + "{id}"
}
