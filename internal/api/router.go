package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mehutonkka/ohtuvarasto/internal/panel"
)

// idPattern restricts {id} to non-negative integers; anything else is a 404
// from routing.
const idPattern = "{id:[0-9]+}"

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	r.NotFound(s.handleNotFound)
	r.MethodNotAllowed(s.handleMethodNotAllowed)

	// Stylesheet (embedded via go:embed)
	r.Handle("/static/*", http.StripPrefix("/static", panel.Handler(s.cfg.StaticDir)))

	// HTML form flow
	r.Get("/", s.handleIndex)
	r.Route("/container", func(r chi.Router) {
		r.Get("/new", s.handleNewForm)
		r.Post("/new", s.handleCreate)

		r.Route("/"+idPattern, func(r chi.Router) {
			r.Get("/", s.handleView)
			r.Get("/edit", s.handleEditForm)
			r.Post("/edit", s.handleEdit)
			r.Post("/add", s.handleDeposit)
			r.Post("/remove", s.handleWithdraw)
			r.Post("/delete", s.handleDelete)
		})
	})

	// JSON API v1 (read-only)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/containers", s.handleListContainers)
		r.Get("/containers/"+idPattern, s.handleGetContainer)
		r.Get("/containers/"+idPattern+"/history", s.handleContainerHistory)
	})

	return r
}

func isAPIPath(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/")
}

// handleNotFound answers JSON under /api and plain text elsewhere.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	if isAPIPath(r) {
		writeNotFound(w, "resource not found")
		return
	}
	http.NotFound(w, r)
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	if isAPIPath(r) {
		writeError(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllow, "method not allowed")
		return
	}
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
