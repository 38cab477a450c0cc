package server

import (
	"net/http"

	"storefront/app/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Handler struct {
	service *service.Service
}

func NewHandler(service *service.Service) *Handler {
	return &Handler{service: service}
}

func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(loggingMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { writeMessage(w, http.StatusOK, "ok") })
	r.Get("/", handler.renderHTML)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/page", handler.getPage)

		r.Post("/tabs/{tab}", handler.selectTab)
		r.Post("/subcategories/{name}", handler.selectSubcategory)
		r.Post("/search", handler.search)
		r.Delete("/search", handler.clearSearch)

		r.Get("/items/{tab}/{id}", handler.openItem)
		r.Delete("/items/{tab}/{id}", handler.deleteItem)
		r.Delete("/modal", handler.closeItem)

		r.Post("/cart/{tab}/{id}", handler.addToCart)
		r.Patch("/cart/{tab}/{id}", handler.changeQuantity)
		r.Delete("/cart/{tab}/{id}", handler.removeFromCart)
		r.Post("/checkout", handler.checkout)
	})
	return r
}
