package calculator

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts all polynomial calculator endpoints onto the given
// router under the /calculator prefix.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/calculator", func(r chi.Router) {
		r.Post("/add", h.Add)
		r.Post("/multiply", h.Multiply)
		r.Post("/evaluate", h.Evaluate)
		r.Post("/has-root", h.HasRoot)
		r.Post("/chain", h.Chain)

		r.Put("/polynomials/{name}", h.Save)
		r.Get("/polynomials/{name}", h.Load)
	})
}
