//go:build wireinject
// +build wireinject

package product

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/tair/product-inventory/internal/product/delivery/http"
	"github.com/tair/product-inventory/internal/product/domain"
	"github.com/tair/product-inventory/internal/product/repository"
	"github.com/tair/product-inventory/internal/product/usecase/command"
	"github.com/tair/product-inventory/internal/product/usecase/query"
)

// ProvideProductRepository provides the traced product repository
func ProvideProductRepository(db *gorm.DB) domain.ProductRepository {
	return repository.NewGormProductRepositoryWithTracing(db)
}

// ProvideCreateProductHandler provides the create product command handler
func ProvideCreateProductHandler(repo domain.ProductRepository) *command.CreateProductHandler {
	return command.NewCreateProductHandler(repo)
}

// ProvideListProductsHandler provides the list products query handler
func ProvideListProductsHandler(repo domain.ProductRepository) *query.ListProductsHandler {
	return query.NewListProductsHandler(repo)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideProductRepository,
)

var HandlerSet = wire.NewSet(
	ProvideCreateProductHandler,
	ProvideListProductsHandler,
)

// InitializeHTTPHandler initializes the product HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, reg prometheus.Registerer) (*http.ProductHandler, error) {
	wire.Build(
		RepositorySet,
		HandlerSet,
		http.NewProductHandler,
	)
	return nil, nil
}
