package services

import (
	"github.com/ghuser/webapp/pkg/app"
	"github.com/ghuser/webapp/pkg/events"
	"github.com/ghuser/webapp/services/product/infrastructure/cache"
	"github.com/ghuser/webapp/services/product/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Product *ProductService
}

// New wires all product application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	var bus events.TxPublisher
	if a.EventBus != nil {
		bus = a.EventBus
	}
	repo := postgres.NewProductRepository(a.Db, bus)

	var productCache ProductCache
	if c := cache.NewProductCache(a.Redis); c != nil {
		productCache = c
	}
	return &Services{
		Product: NewProductService(repo, productCache, a.Logger),
	}
}
