package postgres

import (
	"context"
	"errors"
	"fmt"
	"myTerpMarket/domain"

	"gorm.io/gorm"
)

type ProductRepository struct {
	DB *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{
		DB: db,
	}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id uint64) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("context error: %w", err)
	}

	var product domain.Product

	err := r.DB.WithContext(ctx).First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Product{}, errors.New("product not found")
		}
		return domain.Product{}, fmt.Errorf("failed to find product: %w", err)
	}

	return product, nil
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var products []domain.Product
	err := r.DB.WithContext(ctx).Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}

	return products, nil
}

// FindAllWithVariants loads every product paired with its cheapest variant.
// Products without any variant come back with a nil Variant so the engine
// can still count them in the catalog.
func (r *ProductRepository) FindAllWithVariants(ctx context.Context) ([]domain.ProductWithVariant, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var products []domain.Product
	if err := r.DB.WithContext(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}

	var variants []domain.Variant
	if err := r.DB.WithContext(ctx).Order("product_id, price, id").Find(&variants).Error; err != nil {
		return nil, fmt.Errorf("failed to find variants: %w", err)
	}

	// first variant per product_id wins (cheapest by the order above)
	cheapest := make(map[uint64]*domain.Variant, len(products))
	for i := range variants {
		v := &variants[i]
		if _, ok := cheapest[v.ProductID]; !ok {
			cheapest[v.ProductID] = v
		}
	}

	catalog := make([]domain.ProductWithVariant, 0, len(products))
	for _, p := range products {
		catalog = append(catalog, domain.ProductWithVariant{
			Product: p,
			Variant: cheapest[p.ID],
		})
	}

	return catalog, nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	var existingProduct domain.Product
	if err := r.DB.WithContext(ctx).First(&existingProduct, product.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("product not found")
		}
		return fmt.Errorf("failed to find product: %w", err)
	}

	updateData := map[string]interface{}{
		"name":        product.Name,
		"brand":       product.Brand,
		"category":    product.Category,
		"subcategory": product.Subcategory,
		"description": product.Description,
		"strain_type": product.StrainType,
		"genetics":    product.Genetics,
		"image_url":   product.ImageURL,
	}

	result := r.DB.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", product.ID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("product not found or already deleted")
	}

	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Delete(&domain.Product{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("product not found or already deleted")
	}

	return nil
}
