package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Domain errors surfaced by product operations
var (
	ErrProductCodeExists = errors.New("product code already exists")
	ErrProductNotFound   = errors.New("product not found")
)

// Product represents the product aggregate root. TotalStock is denormalized:
// it always equals the sum of the stock of all sub-variants of the product.
type Product struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ProductCode string    `json:"product_code" gorm:"size:50;not null;uniqueIndex"`
	ProductName string    `json:"product_name" gorm:"size:200;not null"`
	HSNCode     string    `json:"hsn_code" gorm:"size:100;not null"`
	CreatedUser uuid.UUID `json:"created_user" gorm:"type:uuid;not null"`
	IsFavourite bool      `json:"is_favourite"`
	Active      bool      `json:"active" gorm:"not null;default:true"`
	TotalStock  float64   `json:"total_stock" gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Variants    []Variant `json:"variants" gorm:"foreignKey:ProductID"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// Variant is a named axis of product differentiation (e.g. "Size", "Color")
type Variant struct {
	ID          uuid.UUID    `json:"id" gorm:"type:uuid;primaryKey"`
	ProductID   uuid.UUID    `json:"product_id" gorm:"type:uuid;not null;index"`
	Name        string       `json:"name" gorm:"size:100;not null"`
	CreatedAt   time.Time    `json:"created_at"`
	SubVariants []SubVariant `json:"sub_variants" gorm:"foreignKey:VariantID"`
}

// TableName specifies the table name
func (Variant) TableName() string {
	return "variants"
}

// SubVariant is the leaf stock-keeping unit: one concrete option value under
// a variant axis. ProductID is denormalized for direct lookups. Stock never
// goes below zero.
type SubVariant struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	VariantID   uuid.UUID `json:"variant_id" gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	OptionValue string    `json:"option_value" gorm:"size:100;not null"`
	Stock       float64   `json:"stock" gorm:"not null;default:0"`
	SKU         string    `json:"sku" gorm:"size:255"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name
func (SubVariant) TableName() string {
	return "sub_variants"
}

// ProductRepository defines the contract for product data access
type ProductRepository interface {
	// Create persists the full product tree (product, variants, sub-variants)
	// as a single atomic unit. Returns ErrProductCodeExists when the product
	// code is already taken.
	Create(ctx context.Context, product *Product) error
	FindByCode(ctx context.Context, code string) (*Product, error)
	// FindAll returns one page of products ordered by creation time descending,
	// with their variant/sub-variant trees attached.
	FindAll(ctx context.Context, limit, offset int, active *bool) ([]Product, error)
	Count(ctx context.Context, active *bool) (int64, error)
}
