package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ST10257746/prog7314-part1-sub000/internal/utils"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, withGZip)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/health", h.health)
		r.Get("/api/health", h.health)
		r.Get("/api/version", h.getServerVersion)

		r.Post("/api/auth/token", h.refreshToken)
		if h.devSessions {
			r.Post("/api/auth/session", h.issueSession)
		}
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		for _, route := range collectionRoutes {
			r.Route(route.path(), func(r chi.Router) {
				r.Get("/", h.listDocuments(route))
				r.Post("/", h.createDocument(route))
				r.Put("/{id}", h.updateDocument(route))
				r.Delete("/{id}", h.deleteDocument(route))
			})
		}

		r.Put("/api/daily-activity/{ownerId}/{date}", h.putDailyActivity)
		r.Put("/api/users/{ownerId}", h.putProfile)
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, http.StatusNotFound, "Not found", "Route "+r.URL.Path+" does not exist")
	})

	return router
}
