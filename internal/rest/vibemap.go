package rest

import (
	"context"
	"myTerpMarket/domain"
	"myTerpMarket/pkg/logger"
	"net/http"
	"strconv"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type VibeMapService interface {
	GetAllMappings(ctx context.Context) ([]domain.VibeMapping, error)
	CreateMapping(ctx context.Context, mapping *domain.VibeMapping) (*domain.VibeMapping, error)
	UpdateMapping(ctx context.Context, mapping *domain.VibeMapping) (*domain.VibeMapping, error)
	DeleteMapping(ctx context.Context, id uint64) error
}

type VibeMapHandler struct {
	vibeMapService VibeMapService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewVibeMapHandler(vibeMapService VibeMapService) *VibeMapHandler {
	return &VibeMapHandler{
		vibeMapService: vibeMapService,
		validator:      validator.New(),
		timeout:        10 * time.Second,
	}
}

type VibeMappingRequest struct {
	Keyword string             `json:"keyword" validate:"required"`
	Profile map[string]float64 `json:"profile" validate:"required"`
	Effects []string           `json:"effects" validate:"required,min=1"`
}

func (h *VibeMapHandler) GetAllMappings(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	mappings, err := h.vibeMapService.GetAllMappings(ctx)
	if err != nil {
		logger.Error("Failed to find vibe mappings", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(mappings))
}

func (h *VibeMapHandler) CreateMapping(c echo.Context) error {
	var req VibeMappingRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate vibe mapping request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	mapping := &domain.VibeMapping{
		Keyword: req.Keyword,
		Profile: domain.TerpeneProfile(req.Profile),
		Effects: req.Effects,
	}

	newMapping, err := h.vibeMapService.CreateMapping(ctx, mapping)
	if err != nil {
		logger.Error("Failed to create vibe mapping", err)
		if err.Error() == "keyword is required" ||
			err.Error() == "terpene profile is required" ||
			err.Error() == "at least one effect label is required" ||
			err.Error() == "keyword already exists" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(newMapping))
}

func (h *VibeMapHandler) UpdateMapping(c echo.Context) error {
	mappingIdStr := c.Param("id")

	mappingId, err := strconv.ParseUint(mappingIdStr, 10, 64)
	if err != nil {
		logger.Error("Invalid mapping id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var req VibeMappingRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate vibe mapping request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	mapping := &domain.VibeMapping{
		ID:      mappingId,
		Keyword: req.Keyword,
		Profile: domain.TerpeneProfile(req.Profile),
		Effects: req.Effects,
	}

	updatedMapping, err := h.vibeMapService.UpdateMapping(ctx, mapping)
	if err != nil {
		logger.Error("Failed to update vibe mapping", err)
		if err.Error() == "mapping ID is required" ||
			err.Error() == "keyword is required" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(updatedMapping))
}

func (h *VibeMapHandler) DeleteMapping(c echo.Context) error {
	mappingIdStr := c.Param("id")

	mappingId, err := strconv.ParseUint(mappingIdStr, 10, 64)
	if err != nil {
		logger.Error("Invalid mapping id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	err = h.vibeMapService.DeleteMapping(ctx, mappingId)
	if err != nil {
		logger.Error("Failed to delete vibe mapping", err)
		if err.Error() == "invalid mapping id" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":    "vibe mapping successfully deleted",
		"mapping_id": mappingId,
	})
}
