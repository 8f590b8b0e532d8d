package postgres

import (
	"context"
	"fmt"
	"myTerpMarket/domain"

	"gorm.io/gorm"
)

type SearchLogRepository struct {
	DB *gorm.DB
}

func NewSearchLogRepository(db *gorm.DB) *SearchLogRepository {
	return &SearchLogRepository{
		DB: db,
	}
}

func (r *SearchLogRepository) Create(ctx context.Context, entry *domain.SearchQueryLog) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create search log: %w", err)
	}

	return nil
}

func (r *SearchLogRepository) FindRecentByOrganization(ctx context.Context, organizationID string, limit int) ([]domain.SearchQueryLog, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var logs []domain.SearchQueryLog
	err := r.DB.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find search logs: %w", err)
	}

	return logs, nil
}
