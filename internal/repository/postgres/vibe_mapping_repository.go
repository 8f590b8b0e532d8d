package postgres

import (
	"context"
	"errors"
	"fmt"
	"myTerpMarket/domain"

	"gorm.io/gorm"
)

type VibeMappingRepository struct {
	DB *gorm.DB
}

func NewVibeMappingRepository(db *gorm.DB) *VibeMappingRepository {
	return &VibeMappingRepository{
		DB: db,
	}
}

func (r *VibeMappingRepository) Create(ctx context.Context, mapping *domain.VibeMapping) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(mapping).Error; err != nil {
		return fmt.Errorf("failed to create vibe mapping: %w", err)
	}

	return nil
}

func (r *VibeMappingRepository) FindByKeyword(ctx context.Context, keyword string) (domain.VibeMapping, error) {
	if err := ctx.Err(); err != nil {
		return domain.VibeMapping{}, fmt.Errorf("context error: %w", err)
	}

	var mapping domain.VibeMapping
	err := r.DB.WithContext(ctx).Where("keyword = ?", keyword).First(&mapping).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.VibeMapping{}, errors.New("vibe mapping not found")
		}
		return domain.VibeMapping{}, fmt.Errorf("failed to find vibe mapping: %w", err)
	}

	return mapping, nil
}

func (r *VibeMappingRepository) FindAll(ctx context.Context) ([]domain.VibeMapping, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var mappings []domain.VibeMapping
	err := r.DB.WithContext(ctx).Order("id").Find(&mappings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find vibe mappings: %w", err)
	}

	return mappings, nil
}

func (r *VibeMappingRepository) Update(ctx context.Context, mapping *domain.VibeMapping) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	updateData := map[string]interface{}{
		"keyword": mapping.Keyword,
		"profile": mapping.Profile,
		"effects": mapping.Effects,
	}

	result := r.DB.WithContext(ctx).Model(&domain.VibeMapping{}).Where("id = ?", mapping.ID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update vibe mapping: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("vibe mapping not found or already deleted")
	}

	return nil
}

func (r *VibeMappingRepository) Delete(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Delete(&domain.VibeMapping{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete vibe mapping: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("vibe mapping not found or already deleted")
	}

	return nil
}
