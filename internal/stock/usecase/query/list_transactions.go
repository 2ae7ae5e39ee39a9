package query

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/tair/product-inventory/internal/stock/domain"
)

// ListTransactionsQuery represents the query to page through the stock
// transaction history, newest first
type ListTransactionsQuery struct {
	Page      int
	PageSize  int
	ProductID *uuid.UUID // Optional: filter by product
}

// TransactionPage is one page of stock transactions with paging metadata
type TransactionPage struct {
	Items      []domain.StockTransaction `json:"items"`
	TotalCount int64                     `json:"total_count"`
	Page       int                       `json:"page"`
	PageSize   int                       `json:"page_size"`
	TotalPages int                       `json:"total_pages"`
}

// ListTransactionsHandler handles list transactions query
type ListTransactionsHandler struct {
	repo domain.StockRepository
}

// NewListTransactionsHandler creates a new list transactions handler
func NewListTransactionsHandler(repo domain.StockRepository) *ListTransactionsHandler {
	return &ListTransactionsHandler{repo: repo}
}

// Handle executes the list transactions query with the same clamping rules as
// product listing
func (h *ListTransactionsHandler) Handle(ctx context.Context, query ListTransactionsQuery) (*TransactionPage, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.PageSize < 1 || query.PageSize > 100 {
		query.PageSize = 10
	}

	total, err := h.repo.CountTransactions(ctx, query.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	offset := (query.Page - 1) * query.PageSize
	transactions, err := h.repo.FindTransactions(ctx, query.ProductID, query.PageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if transactions == nil {
		transactions = []domain.StockTransaction{}
	}

	return &TransactionPage{
		Items:      transactions,
		TotalCount: total,
		Page:       query.Page,
		PageSize:   query.PageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(query.PageSize))),
	}, nil
}
