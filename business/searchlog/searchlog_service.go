package searchlog

import (
	"context"
	"errors"
	"fmt"

	"myTerpMarket/domain"
	"myTerpMarket/pkg/logger"

	"github.com/google/uuid"
)

// SearchLogRepository contract interface
type SearchLogRepository interface {
	Create(ctx context.Context, entry *domain.SearchQueryLog) error
	FindRecentByOrganization(ctx context.Context, organizationID string, limit int) ([]domain.SearchQueryLog, error)
}

type searchLogService struct {
	repo SearchLogRepository
}

func NewSearchLogService(repo SearchLogRepository) *searchLogService {
	return &searchLogService{repo: repo}
}

// LogSearch satisfies the engine's SearchLogger contract. The engine calls
// it from a detached goroutine, so this only validates and writes.
func (s *searchLogService) LogSearch(ctx context.Context, entry domain.SearchQueryLog) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if entry.OrganizationID == "" {
		return errors.New("organization id is required")
	}
	if _, err := uuid.Parse(entry.OrganizationID); err != nil {
		return fmt.Errorf("invalid organization id: %w", err)
	}
	if entry.QueryText == "" {
		return errors.New("query text is required")
	}

	if err := s.repo.Create(ctx, &entry); err != nil {
		return fmt.Errorf("failed to save search log: %w", err)
	}

	return nil
}

// GetRecentSearches backs the staff dashboard's "what are customers asking
// for" view.
func (s *searchLogService) GetRecentSearches(ctx context.Context, organizationID string, limit int) ([]domain.SearchQueryLog, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when listing search logs")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if _, err := uuid.Parse(organizationID); err != nil {
		logger.Error("invalid organization id", err)
		return nil, errors.New("invalid organization id")
	}

	if limit <= 0 {
		limit = 50
	}

	logs, err := s.repo.FindRecentByOrganization(ctx, organizationID, limit)
	if err != nil {
		logger.Error("failed to list search logs", err)
		return nil, err
	}

	return logs, nil
}
