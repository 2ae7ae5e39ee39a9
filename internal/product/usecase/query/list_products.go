package query

import (
	"context"
	"fmt"
	"math"

	"github.com/tair/product-inventory/internal/product/domain"
)

// ListProductsQuery represents the query to list products page by page
type ListProductsQuery struct {
	Page     int
	PageSize int
	Active   *bool // Optional: filter by active flag
}

// ProductPage is one page of products together with paging metadata
type ProductPage struct {
	Items      []domain.Product `json:"items"`
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}

// ListProductsHandler handles list products query
type ListProductsHandler struct {
	repo domain.ProductRepository
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(repo domain.ProductRepository) *ListProductsHandler {
	return &ListProductsHandler{repo: repo}
}

// Handle executes the list products query. Out-of-range paging values clamp
// to defaults instead of being rejected: page < 1 becomes 1, page size
// outside [1,100] becomes 10.
func (h *ListProductsHandler) Handle(ctx context.Context, query ListProductsQuery) (*ProductPage, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.PageSize < 1 || query.PageSize > 100 {
		query.PageSize = 10
	}

	total, err := h.repo.Count(ctx, query.Active)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	offset := (query.Page - 1) * query.PageSize
	products, err := h.repo.FindAll(ctx, query.PageSize, offset, query.Active)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	if products == nil {
		products = []domain.Product{}
	}

	return &ProductPage{
		Items:      products,
		TotalCount: total,
		Page:       query.Page,
		PageSize:   query.PageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(query.PageSize))),
	}, nil
}
