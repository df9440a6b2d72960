package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/yuan-yexi/post-maker/internal/auth"
	apperrors "github.com/yuan-yexi/post-maker/internal/errors"
	"github.com/yuan-yexi/post-maker/internal/health"
	"github.com/yuan-yexi/post-maker/internal/logger"
	"github.com/yuan-yexi/post-maker/internal/metrics"
)

const landingPage = `<!DOCTYPE html>
<html>
<head><title>makepost</title></head>
<body>
<h1>makepost</h1>
<p>Content management API. See /posts/ for published content.</p>
</body>
</html>
`

// NewRouter assembles the HTTP surface: public reads, the token exchange, and
// the bearer-protected write endpoints.
func NewRouter(
	authHandlers *auth.Handlers,
	authService *auth.Service,
	postHandlers *PostHandlers,
	userHandlers *UserHandlers,
	healthHandler *health.Handler,
	m *metrics.Metrics,
) http.Handler {
	r := chi.NewRouter()

	r.Use(apperrors.RequestIDMiddleware)
	r.Use(chimiddleware.RealIP)
	r.Use(logger.Middleware)
	r.Use(logger.Recovery)
	r.Use(metrics.Middleware(m))
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Get("/", landingHandler)
	r.Post("/token", apperrors.HandleFunc(authHandlers.Token))
	r.Get("/posts/", apperrors.HandleFunc(postHandlers.ListPosts))
	r.Post("/create_user/", apperrors.HandleFunc(userHandlers.CreateUser))

	// Bearer-protected routes
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(authService))
		r.Get("/protected_route", apperrors.HandleFunc(authHandlers.ProtectedRoute))
		r.Post("/create_post/", apperrors.HandleFunc(postHandlers.CreatePost))
	})

	// Operational endpoints
	r.Get("/healthz", healthHandler.LivenessHandler)
	r.Get("/healthz/ready", healthHandler.ReadinessHandler)
	r.Get("/metrics", m.Handler())

	return r
}

func landingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(landingPage))
}
