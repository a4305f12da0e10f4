package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/webapp/pkg/app"
	"github.com/ghuser/webapp/pkg/httpx"
	"github.com/ghuser/webapp/services/account/application/handlers"
	appsvcs "github.com/ghuser/webapp/services/account/application/services"
)

// AccountRoutes registers account endpoints on the provided chi router.
// svcs is shared with cmd/api, which also uses it as the credential resolver.
func AccountRoutes(r chi.Router, a *app.Application, svcs *appsvcs.Services) {
	r.Route("/user", func(r chi.Router) {
		r.Get("/health", httpx.TextHealthHandler("User API is running"))
		r.Post("/", handlers.NewPostAccountHandler(svcs).Execute)

		r.Group(func(r chi.Router) {
			r.Use(a.Authenticate)
			update := handlers.NewUpdateSelfHandler(svcs).Execute
			r.Get("/self", handlers.NewGetSelfHandler(svcs).Execute)
			r.Put("/self", update)
			r.Patch("/self", update)
		})
	})
}
