package command

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tair/product-inventory/internal/product/domain"
)

// VariantInput is one variant axis with its option values
type VariantInput struct {
	Name    string
	Options []string
}

// CreateProductCommand represents the command to create a product with its
// variants and sub-variants
type CreateProductCommand struct {
	Name        string
	HSNCode     string
	ProductCode string
	CreatedUser uuid.UUID
	IsFavourite bool
	Variants    []VariantInput
}

// CreateProductHandler handles product creation command
type CreateProductHandler struct {
	repo domain.ProductRepository
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(repo domain.ProductRepository) *CreateProductHandler {
	return &CreateProductHandler{repo: repo}
}

// Handle executes the create product command. The whole tree is persisted in
// one atomic unit; the product starts active with zero stock everywhere.
func (h *CreateProductHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*domain.Product, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("product name is required")
	}
	if cmd.HSNCode == "" {
		return nil, fmt.Errorf("hsn code is required")
	}
	if cmd.ProductCode == "" {
		return nil, fmt.Errorf("product code is required")
	}
	if len(cmd.Variants) == 0 {
		return nil, fmt.Errorf("at least one variant is required")
	}
	for _, v := range cmd.Variants {
		if v.Name == "" {
			return nil, fmt.Errorf("variant name is required")
		}
		if len(v.Options) == 0 {
			return nil, fmt.Errorf("variant %q requires at least one option", v.Name)
		}
	}

	// Friendly conflict check. The unique index on product_code remains the
	// real guarantee: a concurrent insert of the same code still surfaces as
	// ErrProductCodeExists from Create.
	if _, err := h.repo.FindByCode(ctx, cmd.ProductCode); err == nil {
		return nil, domain.ErrProductCodeExists
	} else if !errors.Is(err, domain.ErrProductNotFound) {
		return nil, fmt.Errorf("failed to check product code: %w", err)
	}

	createdUser := cmd.CreatedUser
	if createdUser == uuid.Nil {
		createdUser = uuid.New()
	}

	now := time.Now()
	product := &domain.Product{
		ID:          uuid.New(),
		ProductCode: cmd.ProductCode,
		ProductName: cmd.Name,
		HSNCode:     cmd.HSNCode,
		CreatedUser: createdUser,
		IsFavourite: cmd.IsFavourite,
		Active:      true,
		TotalStock:  0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	for _, v := range cmd.Variants {
		variant := domain.Variant{
			ID:        uuid.New(),
			ProductID: product.ID,
			Name:      v.Name,
			CreatedAt: now,
		}
		for _, option := range v.Options {
			variant.SubVariants = append(variant.SubVariants, domain.SubVariant{
				ID:          uuid.New(),
				VariantID:   variant.ID,
				ProductID:   product.ID,
				OptionValue: option,
				Stock:       0,
				SKU:         buildSKU(cmd.ProductCode, v.Name, option),
				CreatedAt:   now,
			})
		}
		product.Variants = append(product.Variants, variant)
	}

	if err := h.repo.Create(ctx, product); err != nil {
		if errors.Is(err, domain.ErrProductCodeExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// buildSKU derives the deterministic sub-variant SKU
func buildSKU(productCode, variantName, option string) string {
	return strings.ToUpper(fmt.Sprintf("%s-%s-%s", productCode, variantName, option))
}
