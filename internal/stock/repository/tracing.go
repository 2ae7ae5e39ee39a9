package repository

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tair/product-inventory/internal/stock/domain"
)

var tracer = otel.Tracer("stock-repository")

// GormStockRepositoryWithTracing wraps GormStockRepository with tracing
type GormStockRepositoryWithTracing struct {
	*GormStockRepository
}

// NewGormStockRepositoryWithTracing creates a new repository with tracing
func NewGormStockRepositoryWithTracing(db *gorm.DB) *GormStockRepositoryWithTracing {
	return &GormStockRepositoryWithTracing{
		GormStockRepository: NewGormStockRepository(db),
	}
}

// AdjustStock with tracing
func (r *GormStockRepositoryWithTracing) AdjustStock(ctx context.Context, productID, subVariantID uuid.UUID, delta float64, txn *domain.StockTransaction) error {
	ctx, span := tracer.Start(ctx, "repository.AdjustStock",
		trace.WithAttributes(
			attribute.String("product.id", productID.String()),
			attribute.String("sub_variant.id", subVariantID.String()),
			attribute.Float64("stock.delta", delta),
			attribute.String("transaction.type", txn.TransactionType),
		),
	)
	defer span.End()

	err := r.GormStockRepository.AdjustStock(ctx, productID, subVariantID, delta, txn)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(attribute.String("transaction.id", txn.ID.String()))
	return nil
}

// FindTransactions with tracing
func (r *GormStockRepositoryWithTracing) FindTransactions(ctx context.Context, productID *uuid.UUID, limit, offset int) ([]domain.StockTransaction, error) {
	ctx, span := tracer.Start(ctx, "repository.FindTransactions",
		trace.WithAttributes(
			attribute.Int("query.limit", limit),
			attribute.Int("query.offset", offset),
		),
	)
	defer span.End()

	transactions, err := r.GormStockRepository.FindTransactions(ctx, productID, limit, offset)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(transactions)))
	return transactions, nil
}

// CountTransactions with tracing
func (r *GormStockRepositoryWithTracing) CountTransactions(ctx context.Context, productID *uuid.UUID) (int64, error) {
	ctx, span := tracer.Start(ctx, "repository.CountTransactions")
	defer span.End()

	count, err := r.GormStockRepository.CountTransactions(ctx, productID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}

	span.SetAttributes(attribute.Int64("result.count", count))
	return count, nil
}
