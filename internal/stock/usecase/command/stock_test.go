package command

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/tair/product-inventory/internal/stock/domain"
)

// fakeStockRepo mimics the repository contract in memory: conditional delta,
// total recompute, append-only transaction log.
type fakeStockRepo struct {
	productID uuid.UUID
	stock     map[uuid.UUID]float64
	total     float64
	txns      []domain.StockTransaction
}

func newFakeStockRepo(productID uuid.UUID) *fakeStockRepo {
	return &fakeStockRepo{productID: productID, stock: map[uuid.UUID]float64{}}
}

func (f *fakeStockRepo) AdjustStock(_ context.Context, productID, subVariantID uuid.UUID, delta float64, txn *domain.StockTransaction) error {
	current, ok := f.stock[subVariantID]
	if !ok || productID != f.productID {
		return domain.ErrSubVariantNotFound
	}
	if current+delta < 0 {
		return domain.ErrInsufficientStock
	}
	f.stock[subVariantID] = current + delta

	f.total = 0
	for _, s := range f.stock {
		f.total += s
	}

	f.txns = append(f.txns, *txn)
	return nil
}

func (f *fakeStockRepo) FindTransactions(_ context.Context, productID *uuid.UUID, limit, offset int) ([]domain.StockTransaction, error) {
	return f.txns, nil
}

func (f *fakeStockRepo) CountTransactions(_ context.Context, productID *uuid.UUID) (int64, error) {
	return int64(len(f.txns)), nil
}

func TestAddStock(t *testing.T) {
	productID := uuid.New()
	subVariantID := uuid.New()
	repo := newFakeStockRepo(productID)
	repo.stock[subVariantID] = 0

	h := NewAddStockHandler(repo)
	txn, err := h.Handle(context.Background(), AddStockCommand{
		ProductID:    productID,
		SubVariantID: subVariantID,
		Quantity:     5,
		Notes:        "initial purchase",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := repo.stock[subVariantID]; got != 5 {
		t.Errorf("stock = %v, want 5", got)
	}
	if repo.total != 5 {
		t.Errorf("product total = %v, want 5", repo.total)
	}
	if len(repo.txns) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(repo.txns))
	}
	if txn.TransactionType != domain.TransactionTypePurchase {
		t.Errorf("transaction type = %q, want %q", txn.TransactionType, domain.TransactionTypePurchase)
	}
	if txn.Quantity != 5 {
		t.Errorf("transaction quantity = %v, want 5", txn.Quantity)
	}
	if txn.Notes != "initial purchase" {
		t.Errorf("transaction notes = %q", txn.Notes)
	}
}

func TestAddStock_SubVariantNotFound(t *testing.T) {
	productID := uuid.New()
	repo := newFakeStockRepo(productID)

	h := NewAddStockHandler(repo)
	_, err := h.Handle(context.Background(), AddStockCommand{
		ProductID:    productID,
		SubVariantID: uuid.New(),
		Quantity:     5,
	})
	if !errors.Is(err, domain.ErrSubVariantNotFound) {
		t.Fatalf("expected ErrSubVariantNotFound, got %v", err)
	}
	if len(repo.txns) != 0 {
		t.Errorf("failed adjustment must not record a transaction")
	}
}

func TestRemoveStock(t *testing.T) {
	productID := uuid.New()
	subVariantID := uuid.New()
	repo := newFakeStockRepo(productID)
	repo.stock[subVariantID] = 5

	h := NewRemoveStockHandler(repo)
	txn, err := h.Handle(context.Background(), RemoveStockCommand{
		ProductID:    productID,
		SubVariantID: subVariantID,
		Quantity:     3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := repo.stock[subVariantID]; got != 2 {
		t.Errorf("stock = %v, want 2", got)
	}
	if repo.total != 2 {
		t.Errorf("product total = %v, want 2", repo.total)
	}
	if txn.TransactionType != domain.TransactionTypeSale {
		t.Errorf("transaction type = %q, want %q", txn.TransactionType, domain.TransactionTypeSale)
	}
}

func TestRemoveStock_Insufficient(t *testing.T) {
	productID := uuid.New()
	subVariantID := uuid.New()
	repo := newFakeStockRepo(productID)
	repo.stock[subVariantID] = 5

	h := NewRemoveStockHandler(repo)
	_, err := h.Handle(context.Background(), RemoveStockCommand{
		ProductID:    productID,
		SubVariantID: subVariantID,
		Quantity:     10,
	})
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if got := repo.stock[subVariantID]; got != 5 {
		t.Errorf("rejected removal must leave stock unchanged, got %v", got)
	}
	if len(repo.txns) != 0 {
		t.Errorf("rejected removal must not record a transaction")
	}
}

func TestStock_NeverGoesNegative(t *testing.T) {
	productID := uuid.New()
	subVariantID := uuid.New()
	repo := newFakeStockRepo(productID)
	repo.stock[subVariantID] = 0

	add := NewAddStockHandler(repo)
	remove := NewRemoveStockHandler(repo)

	ops := []struct {
		remove bool
		qty    float64
	}{
		{false, 3}, {true, 1}, {true, 5}, {false, 2}, {true, 4}, {true, 1}, {false, 10}, {true, 9},
	}

	for i, op := range ops {
		var err error
		if op.remove {
			_, err = remove.Handle(context.Background(), RemoveStockCommand{
				ProductID: productID, SubVariantID: subVariantID, Quantity: op.qty,
			})
		} else {
			_, err = add.Handle(context.Background(), AddStockCommand{
				ProductID: productID, SubVariantID: subVariantID, Quantity: op.qty,
			})
		}
		if err != nil && !errors.Is(err, domain.ErrInsufficientStock) {
			t.Fatalf("op %d: unexpected error: %v", i, err)
		}
		if repo.stock[subVariantID] < 0 {
			t.Fatalf("op %d: stock went negative: %v", i, repo.stock[subVariantID])
		}
		if repo.total != repo.stock[subVariantID] {
			t.Fatalf("op %d: product total %v out of sync with stock %v", i, repo.total, repo.stock[subVariantID])
		}
	}
}

func TestStockCommands_Validation(t *testing.T) {
	productID := uuid.New()
	repo := newFakeStockRepo(productID)
	add := NewAddStockHandler(repo)
	remove := NewRemoveStockHandler(repo)

	tests := []struct {
		name string
		cmd  AddStockCommand
	}{
		{"missing product id", AddStockCommand{SubVariantID: uuid.New(), Quantity: 1}},
		{"missing sub-variant id", AddStockCommand{ProductID: productID, Quantity: 1}},
		{"zero quantity", AddStockCommand{ProductID: productID, SubVariantID: uuid.New()}},
		{"negative quantity", AddStockCommand{ProductID: productID, SubVariantID: uuid.New(), Quantity: -2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := add.Handle(context.Background(), tt.cmd); err == nil {
				t.Errorf("add: expected validation error")
			}
			rc := RemoveStockCommand(tt.cmd)
			if _, err := remove.Handle(context.Background(), rc); err == nil {
				t.Errorf("remove: expected validation error")
			}
		})
	}
}
