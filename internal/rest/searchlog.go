package rest

import (
	"context"
	"myTerpMarket/domain"
	"myTerpMarket/pkg/logger"
	"net/http"
	"strconv"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type SearchLogService interface {
	GetRecentSearches(ctx context.Context, organizationID string, limit int) ([]domain.SearchQueryLog, error)
}

type SearchLogHandler struct {
	searchLogService SearchLogService
	timeout          time.Duration
}

func NewSearchLogHandler(searchLogService SearchLogService) *SearchLogHandler {
	return &SearchLogHandler{
		searchLogService: searchLogService,
		timeout:          10 * time.Second,
	}
}

// GetRecentSearches returns the latest vibe queries for the caller's
// organization, newest first.
func (h *SearchLogHandler) GetRecentSearches(c echo.Context) error {
	orgID, ok := c.Get("organization_id").(string)
	if !ok || orgID == "" {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	limit := 0
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 0 {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid limit"})
		}
		limit = parsed
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	logs, err := h.searchLogService.GetRecentSearches(ctx, orgID, limit)
	if err != nil {
		logger.Error("Failed to find search logs", err)
		if err.Error() == "invalid organization id" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(logs))
}
