package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging, h.withMetrics, withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)
		r.Get("/api/version", h.getServerVersion)
		if h.metrics != nil {
			r.Method("GET", "/metrics", h.metrics.Handler())
		}
	})

	// user routes
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/api/user/me", h.me)
		r.Post("/api/documents/submit", h.submitDocument)
		r.Get("/api/documents", h.listDocuments)
		r.Delete("/api/documents/{doc_id}", h.cancelDocument)
	})

	// printer routes, the printer_id is the capability
	router.Group(func(r chi.Router) {
		r.Use(h.printerSignature)
		r.Get("/api/printer/settings", h.printerSettings)
		r.Get("/api/printer/document", h.printerDocument)
		r.Get("/api/printer/pop", h.printerPop)
		r.Post("/api/printer/progress", h.printerProgress)

		r.Get("/get_doc_settings", h.printerSettings)
		r.Get("/get_doc", h.printerDocument)
		r.Get("/pop_doc", h.printerPop)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
