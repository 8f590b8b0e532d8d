package postgres

import (
	"context"
	"errors"
	"fmt"
	"myTerpMarket/domain"

	"gorm.io/gorm"
)

type VariantRepository struct {
	DB *gorm.DB
}

func NewVariantRepository(db *gorm.DB) *VariantRepository {
	return &VariantRepository{
		DB: db,
	}
}

func (r *VariantRepository) Create(ctx context.Context, variant *domain.Variant) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(variant).Error; err != nil {
		return fmt.Errorf("failed to create variant: %w", err)
	}

	return nil
}

func (r *VariantRepository) FindByProductID(ctx context.Context, productID uint64) ([]domain.Variant, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var variants []domain.Variant
	err := r.DB.WithContext(ctx).Where("product_id = ?", productID).Order("price, id").Find(&variants).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find variants: %w", err)
	}

	return variants, nil
}

func (r *VariantRepository) Update(ctx context.Context, variant *domain.Variant) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	updateData := map[string]interface{}{
		"name":               variant.Name,
		"price":              variant.Price,
		"original_price":     variant.OriginalPrice,
		"thc_percent":        variant.THCPercent,
		"cbd_percent":        variant.CBDPercent,
		"total_cannabinoids": variant.TotalCannabinoids,
		"terpene_profile":    variant.TerpeneProfile,
		"inventory_level":    variant.InventoryLevel,
		"is_available":       variant.IsAvailable,
	}

	result := r.DB.WithContext(ctx).Model(&domain.Variant{}).Where("id = ?", variant.ID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update variant: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("variant not found or already deleted")
	}

	return nil
}

// SetInventory updates only the stock fields, used by the POS sync path.
func (r *VariantRepository) SetInventory(ctx context.Context, id uint64, level int, available bool) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Model(&domain.Variant{}).Where("id = ?", id).Updates(map[string]interface{}{
		"inventory_level": level,
		"is_available":    available,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update inventory: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("variant not found or already deleted")
	}

	return nil
}

func (r *VariantRepository) Delete(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Delete(&domain.Variant{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete variant: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("variant not found or already deleted")
	}

	return nil
}
