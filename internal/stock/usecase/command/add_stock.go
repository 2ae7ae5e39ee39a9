package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tair/product-inventory/internal/stock/domain"
)

// AddStockCommand represents the command to add stock to a sub-variant
type AddStockCommand struct {
	ProductID    uuid.UUID
	SubVariantID uuid.UUID
	Quantity     float64
	Notes        string
}

// AddStockHandler handles the add stock (purchase) command
type AddStockHandler struct {
	repo domain.StockRepository
}

// NewAddStockHandler creates a new add stock handler
func NewAddStockHandler(repo domain.StockRepository) *AddStockHandler {
	return &AddStockHandler{repo: repo}
}

// Handle executes the add stock command and returns the recorded PURCHASE
// transaction
func (h *AddStockHandler) Handle(ctx context.Context, cmd AddStockCommand) (*domain.StockTransaction, error) {
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
		TransactionType: domain.TransactionTypePurchase,
		Quantity:        cmd.Quantity,
		Notes:           cmd.Notes,
		CreatedAt:       time.Now(),
	}

	if err := h.repo.AdjustStock(ctx, cmd.ProductID, cmd.SubVariantID, cmd.Quantity, txn); err != nil {
		if errors.Is(err, domain.ErrSubVariantNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to add stock: %w", err)
	}

	return txn, nil
}
