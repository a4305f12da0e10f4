package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/webapp/pkg/app"
	"github.com/ghuser/webapp/pkg/httpx"
	"github.com/ghuser/webapp/services/product/application/handlers"
	appsvcs "github.com/ghuser/webapp/services/product/application/services"
)

// ProductRoutes registers product endpoints on the provided chi router.
// Single and full listings are public; everything else requires a credential.
func ProductRoutes(r chi.Router, a *app.Application, svcs *appsvcs.Services) {
	r.Route("/product", func(r chi.Router) {
		r.Get("/health", httpx.TextHealthHandler("Product API is running"))
		r.Get("/", handlers.NewListProductsHandler(svcs).Execute)
		r.Get("/{id}", handlers.NewGetProductHandler(svcs).Execute)

		r.Group(func(r chi.Router) {
			r.Use(a.Authenticate)
			update := handlers.NewUpdateProductHandler(svcs).Execute
			r.Get("/my-products", handlers.NewListMyProductsHandler(svcs).Execute)
			r.Post("/", handlers.NewPostProductHandler(svcs).Execute)
			r.Put("/{id}", update)
			r.Patch("/{id}", update)
			r.Delete("/{id}", handlers.NewDeleteProductHandler(svcs).Execute)
		})
	})
}
