package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/menagerist/pkg/errhttp"
	"github.com/ghuser/menagerist/services/item/application/handlers"
	appsvcs "github.com/ghuser/menagerist/services/item/application/services"
)

// ItemRoutes registers item endpoints on the provided chi router.
func ItemRoutes(r chi.Router, svcs *appsvcs.Services, errs *errhttp.Writer) {
	r.Route("/items", func(r chi.Router) {
		r.Post("/", handlers.NewPostItemHandler(svcs, errs).Execute)
		r.Get("/", handlers.NewListItemsHandler(svcs, errs).Execute)
		r.Get("/{itemID}", handlers.NewGetItemHandler(svcs, errs).Execute)
		r.Delete("/{itemID}", handlers.NewDeleteItemHandler(svcs, errs).Execute)
	})
}
