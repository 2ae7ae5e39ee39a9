package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Transaction types
const (
	TransactionTypePurchase = "PURCHASE"
	TransactionTypeSale     = "SALE"
)

// Domain errors surfaced by stock operations
var (
	ErrSubVariantNotFound = errors.New("sub-variant not found for this product")
	ErrInsufficientStock  = errors.New("insufficient stock")
)

// StockTransaction is an immutable, append-only record of one stock movement.
// Rows are never updated or deleted; together they form the audit trail of a
// sub-variant's stock.
type StockTransaction struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ProductID       uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	SubVariantID    uuid.UUID `json:"sub_variant_id" gorm:"type:uuid;not null;index"`
	TransactionType string    `json:"transaction_type" gorm:"size:10;not null"`
	Quantity        float64   `json:"quantity" gorm:"not null"`
	Notes           string    `json:"notes,omitempty" gorm:"size:500"`
	CreatedAt       time.Time `json:"created_at"`
}

// TableName specifies the table name
func (StockTransaction) TableName() string {
	return "stock_transactions"
}

// StockRepository defines the contract for stock data access
type StockRepository interface {
	// AdjustStock applies delta to the sub-variant's stock, recomputes the
	// owning product's denormalized total, and appends the transaction record,
	// all inside one database transaction. The delta is applied as a single
	// conditional update so that stock can never go negative and concurrent
	// adjustments cannot lose updates. Returns ErrSubVariantNotFound when the
	// sub-variant does not exist under the product, ErrInsufficientStock when
	// the delta would take stock below zero.
	AdjustStock(ctx context.Context, productID, subVariantID uuid.UUID, delta float64, txn *StockTransaction) error
	FindTransactions(ctx context.Context, productID *uuid.UUID, limit, offset int) ([]StockTransaction, error)
	CountTransactions(ctx context.Context, productID *uuid.UUID) (int64, error)
}
