package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tair/product-inventory/internal/product/domain"
)

type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Product{}, &domain.Variant{}, &domain.SubVariant{})
}

// Create inserts the product together with its variants and sub-variants.
// GORM cascades the associations inside one transaction, so a failure on any
// row leaves no partial aggregate behind. The unique index on product_code is
// the source of truth for code uniqueness.
func (r *GormProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrProductCodeExists
		}
		return err
	}
	return nil
}

func (r *GormProductRepository) FindByCode(ctx context.Context, code string) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).Where("product_code = ?", code).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *GormProductRepository) FindAll(ctx context.Context, limit, offset int, active *bool) ([]domain.Product, error) {
	var products []domain.Product
	q := r.db.WithContext(ctx).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("variants.created_at")
		}).
		Preload("Variants.SubVariants", func(db *gorm.DB) *gorm.DB {
			return db.Order("sub_variants.created_at")
		})
	if active != nil {
		q = q.Where("active = ?", *active)
	}
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&products).Error
	return products, err
}

func (r *GormProductRepository) Count(ctx context.Context, active *bool) (int64, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&domain.Product{})
	if active != nil {
		q = q.Where("active = ?", *active)
	}
	err := q.Count(&count).Error
	return count, err
}
