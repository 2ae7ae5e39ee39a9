package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	productdomain "github.com/tair/product-inventory/internal/product/domain"
	"github.com/tair/product-inventory/internal/stock/domain"
)

type GormStockRepository struct {
	db *gorm.DB
}

func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

func (r *GormStockRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.StockTransaction{})
}

// AdjustStock performs the whole stock mutation as one database transaction:
// conditional delta on the sub-variant row, recompute of the product total,
// append of the audit record. The conditional WHERE clause makes the delta
// atomic at the row level, so two concurrent adjustments both land and stock
// still cannot drop below zero.
func (r *GormStockRepository) AdjustStock(ctx context.Context, productID, subVariantID uuid.UUID, delta float64, txn *domain.StockTransaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&productdomain.SubVariant{}).
			Where("id = ? AND product_id = ? AND stock + ? >= 0", subVariantID, productID, delta).
			Update("stock", gorm.Expr("stock + ?", delta))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Zero rows means either the sub-variant does not exist under
			// this product or the delta would take stock negative.
			var count int64
			if err := tx.Model(&productdomain.SubVariant{}).
				Where("id = ? AND product_id = ?", subVariantID, productID).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return domain.ErrSubVariantNotFound
			}
			return domain.ErrInsufficientStock
		}

		// Recompute the denormalized total by full aggregation rather than
		// applying the delta in place, so the total cannot drift from its
		// sub-variants.
		if err := tx.Model(&productdomain.Product{}).
			Where("id = ?", productID).
			Update("total_stock", gorm.Expr(
				"(SELECT COALESCE(SUM(stock), 0) FROM sub_variants WHERE product_id = ?)",
				productID,
			)).Error; err != nil {
			return err
		}

		return tx.Create(txn).Error
	})
}

func (r *GormStockRepository) FindTransactions(ctx context.Context, productID *uuid.UUID, limit, offset int) ([]domain.StockTransaction, error) {
	var transactions []domain.StockTransaction
	q := r.db.WithContext(ctx)
	if productID != nil {
		q = q.Where("product_id = ?", *productID)
	}
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&transactions).Error
	return transactions, err
}

func (r *GormStockRepository) CountTransactions(ctx context.Context, productID *uuid.UUID) (int64, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&domain.StockTransaction{})
	if productID != nil {
		q = q.Where("product_id = ?", *productID)
	}
	err := q.Count(&count).Error
	return count, err
}
