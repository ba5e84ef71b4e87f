package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const blobRoute = "/api/blobs/*"

// Init builds the blobd router:
//
//	GET    /api/version/
//	GET    /api/blobs/{identity...}
//	PUT    /api/blobs/{identity...}
//	DELETE /api/blobs/{identity...}
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Get("/api/version/", h.getServerVersion)

	// blob routes
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get(blobRoute, h.getBlob)
		r.With(h.verifyContentHash).Put(blobRoute, h.putBlob)
		r.Delete(blobRoute, h.deleteBlob)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
