package vibemap

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"myTerpMarket/business/recommend"
	"myTerpMarket/domain"
	"myTerpMarket/pkg/logger"
)

// VibeMappingRepository contract interface
type VibeMappingRepository interface {
	Create(ctx context.Context, mapping *domain.VibeMapping) error
	FindByKeyword(ctx context.Context, keyword string) (domain.VibeMapping, error)
	FindAll(ctx context.Context) ([]domain.VibeMapping, error)
	Update(ctx context.Context, mapping *domain.VibeMapping) error
	Delete(ctx context.Context, id uint64) error
}

type vibeMapService struct {
	repo VibeMappingRepository
}

func NewVibeMapService(repo VibeMappingRepository) *vibeMapService {
	return &vibeMapService{repo: repo}
}

// BuildParser loads admin-edited vibe rows and layers them over the
// compiled-in defaults. A DB failure degrades to defaults only; vibe search
// must keep working without the table.
func (s *vibeMapService) BuildParser(ctx context.Context) *recommend.VibeParser {
	mappings := recommend.DefaultVibeMappings()

	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		logger.Warn("failed to load vibe mappings, using defaults only", "error", err)
		return recommend.NewVibeParser(mappings)
	}

	logger.Info("vibe mappings loaded", "count", len(rows))

	return recommend.NewVibeParser(append(mappings, rows...))
}

func (s *vibeMapService) GetAllMappings(ctx context.Context) ([]domain.VibeMapping, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all vibe mappings")
		return nil, fmt.Errorf("context error: %w", err)
	}

	mappings, err := s.repo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find all vibe mappings", err)
		return nil, err
	}

	return mappings, nil
}

func (s *vibeMapService) CreateMapping(ctx context.Context, mapping *domain.VibeMapping) (*domain.VibeMapping, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when create vibe mapping")
		return nil, fmt.Errorf("context error: %w", err)
	}

	mapping.Keyword = strings.ToLower(strings.TrimSpace(mapping.Keyword))

	if mapping.Keyword == "" {
		logger.Error("Invalid vibe mapping: keyword is required")
		return nil, errors.New("keyword is required")
	}

	if len(mapping.Profile) == 0 {
		logger.Error("Invalid vibe mapping: profile is required")
		return nil, errors.New("terpene profile is required")
	}

	if len(mapping.Effects) == 0 {
		logger.Error("Invalid vibe mapping: effects are required")
		return nil, errors.New("at least one effect label is required")
	}

	existing, err := s.repo.FindByKeyword(ctx, mapping.Keyword)
	if err == nil && existing.ID > 0 {
		logger.Error("Vibe mapping keyword already exists", "keyword", mapping.Keyword)
		return nil, errors.New("keyword already exists")
	}

	if err := s.repo.Create(ctx, mapping); err != nil {
		logger.Error("failed to create vibe mapping", err)
		return nil, fmt.Errorf("failed to create vibe mapping: %w", err)
	}

	logger.Info("vibe mapping created", "keyword", mapping.Keyword)

	return mapping, nil
}

func (s *vibeMapService) UpdateMapping(ctx context.Context, mapping *domain.VibeMapping) (*domain.VibeMapping, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when update vibe mapping")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if mapping.ID == 0 {
		logger.Error("Invalid vibe mapping: ID is required")
		return nil, errors.New("mapping ID is required")
	}

	mapping.Keyword = strings.ToLower(strings.TrimSpace(mapping.Keyword))
	if mapping.Keyword == "" {
		logger.Error("Invalid vibe mapping: keyword is required")
		return nil, errors.New("keyword is required")
	}

	if err := s.repo.Update(ctx, mapping); err != nil {
		logger.Error("failed to update vibe mapping", err)
		return nil, fmt.Errorf("failed to update vibe mapping: %w", err)
	}

	logger.Info("vibe mapping updated", "keyword", mapping.Keyword)

	return mapping, nil
}

func (s *vibeMapService) DeleteMapping(ctx context.Context, id uint64) error {
	if id == 0 {
		logger.Error("invalid vibe mapping id")
		return errors.New("invalid mapping id")
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when delete vibe mapping")
		return fmt.Errorf("context error: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete vibe mapping", err)
		return fmt.Errorf("failed to delete vibe mapping: %w", err)
	}

	logger.Info("vibe mapping deleted", "id", id)

	return nil
}
