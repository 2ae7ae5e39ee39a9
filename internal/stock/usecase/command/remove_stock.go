package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tair/product-inventory/internal/stock/domain"
)

// RemoveStockCommand represents the command to remove stock from a sub-variant
type RemoveStockCommand struct {
	ProductID    uuid.UUID
	SubVariantID uuid.UUID
	Quantity     float64
	Notes        string
}

// RemoveStockHandler handles the remove stock (sale) command
type RemoveStockHandler struct {
	repo domain.StockRepository
}

// NewRemoveStockHandler creates a new remove stock handler
func NewRemoveStockHandler(repo domain.StockRepository) *RemoveStockHandler {
	return &RemoveStockHandler{repo: repo}
}

// Handle executes the remove stock command and returns the recorded SALE
// transaction. A removal exceeding current stock is rejected with
// ErrInsufficientStock and leaves stock unchanged.
func (h *RemoveStockHandler) Handle(ctx context.Context, cmd RemoveStockCommand) (*domain.StockTransaction, error) {
	if cmd.ProductID == uuid.Nil {
		return nil, fmt.Errorf("product_id is required")
	}
	if cmd.SubVariantID == uuid.Nil {
		return nil, fmt.Errorf("sub_variant_id is required")
	}
	if cmd.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be greater than 0")
	}

	txn := &domain.StockTransaction{
		ID:              uuid.New(),
		ProductID:       cmd.ProductID,
		SubVariantID:    cmd.SubVariantID,
		TransactionType: domain.TransactionTypeSale,
		Quantity:        cmd.Quantity,
		Notes:           cmd.Notes,
		CreatedAt:       time.Now(),
	}

	if err := h.repo.AdjustStock(ctx, cmd.ProductID, cmd.SubVariantID, -cmd.Quantity, txn); err != nil {
		if errors.Is(err, domain.ErrSubVariantNotFound) || errors.Is(err, domain.ErrInsufficientStock) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to remove stock: %w", err)
	}

	return txn, nil
}
