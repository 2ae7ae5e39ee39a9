//go:build wireinject
// +build wireinject

package stock

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/tair/product-inventory/internal/stock/delivery/http"
	"github.com/tair/product-inventory/internal/stock/domain"
	"github.com/tair/product-inventory/internal/stock/repository"
	"github.com/tair/product-inventory/internal/stock/usecase/command"
	"github.com/tair/product-inventory/internal/stock/usecase/query"
	"github.com/tair/product-inventory/kafka"
)

// ProvideStockRepository provides the traced stock repository
func ProvideStockRepository(db *gorm.DB) domain.StockRepository {
	return repository.NewGormStockRepositoryWithTracing(db)
}

// ProvideEventPublisher adapts the optional Kafka publisher. A nil pointer
// becomes a nil interface so the handler's nil check keeps working.
func ProvideEventPublisher(p *kafka.Publisher) http.EventPublisher {
	if p == nil {
		return nil
	}
	return p
}

// ProvideAddStockHandler provides the add stock command handler
func ProvideAddStockHandler(repo domain.StockRepository) *command.AddStockHandler {
	return command.NewAddStockHandler(repo)
}

// ProvideRemoveStockHandler provides the remove stock command handler
func ProvideRemoveStockHandler(repo domain.StockRepository) *command.RemoveStockHandler {
	return command.NewRemoveStockHandler(repo)
}

// ProvideListTransactionsHandler provides the list transactions query handler
func ProvideListTransactionsHandler(repo domain.StockRepository) *query.ListTransactionsHandler {
	return query.NewListTransactionsHandler(repo)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideStockRepository,
)

var HandlerSet = wire.NewSet(
	ProvideAddStockHandler,
	ProvideRemoveStockHandler,
	ProvideListTransactionsHandler,
	ProvideEventPublisher,
)

// InitializeHTTPHandler initializes the stock HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, publisher *kafka.Publisher, reg prometheus.Registerer) (*http.StockHandler, error) {
	wire.Build(
		RepositorySet,
		HandlerSet,
		http.NewStockHandler,
	)
	return nil, nil
}
