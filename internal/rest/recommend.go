package rest

import (
	"context"
	"net/http"
	"time"

	"myTerpMarket/business/recommend"
	"myTerpMarket/domain"
	"myTerpMarket/pkg/logger"
	"myTerpMarket/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	RecommendHandler struct {
		validate       *validator.Validate
		catalogService CatalogService
		engine         *recommend.Engine
		timeout        time.Duration
	}

	CatalogService interface {
		GetCatalog(ctx context.Context) ([]domain.ProductWithVariant, error)
	}

	RecommendRequest struct {
		Query          string `json:"query" query:"query" validate:"required"`
		PageSize       int    `json:"page_size" query:"page_size" validate:"gte=0,lte=100"`
		Offset         int    `json:"offset" query:"offset" validate:"gte=0"`
		OrganizationID string `json:"organization_id" query:"organization_id"`
	}
)

func NewRecommendHandler(catalogService CatalogService, engine *recommend.Engine) *RecommendHandler {
	return &RecommendHandler{
		validate:       validator.New(),
		catalogService: catalogService,
		engine:         engine,
		timeout:        10 * time.Second,
	}
}

// requestContext tags the request context with the echo request ID so the
// engine's diagnostics can be correlated with access logs.
func requestContext(c echo.Context) context.Context {
	rid := c.Response().Header().Get(echo.HeaderXRequestID)
	return recommend.WithTraceID(c.Request().Context(), rid)
}

// Recommend serves the staff-facing search. The caller's organization comes
// from the JWT, not from the request body.
func (h *RecommendHandler) Recommend(c echo.Context) error {
	start := time.Now()

	var req RecommendRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind recommend request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		logger.Error("Failed to validate recommend request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	orgID, _ := c.Get("organization_id").(string)

	ctx, cancel := context.WithTimeout(requestContext(c), h.timeout)
	defer cancel()

	catalog, err := h.catalogService.GetCatalog(ctx)
	if err != nil {
		logger.Error("Failed to load catalog", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	result := h.engine.Recommend(ctx, catalog, recommend.Request{
		Query:          req.Query,
		UserType:       domain.UserTypeStaff,
		PageSize:       req.PageSize,
		Offset:         req.Offset,
		OrganizationID: orgID,
	})

	metrics.RecommendRequests.Inc()
	metrics.RecommendLatency.Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}

// KioskRecommend serves the anonymous in-store kiosk. No auth; the kiosk
// identifies its organization in the request.
func (h *RecommendHandler) KioskRecommend(c echo.Context) error {
	start := time.Now()

	var req RecommendRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind kiosk request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		logger.Error("Failed to validate kiosk request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(requestContext(c), h.timeout)
	defer cancel()

	catalog, err := h.catalogService.GetCatalog(ctx)
	if err != nil {
		logger.Error("Failed to load catalog", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	result := h.engine.Recommend(ctx, catalog, recommend.Request{
		Query:          req.Query,
		UserType:       domain.UserTypeKiosk,
		PageSize:       req.PageSize,
		Offset:         req.Offset,
		OrganizationID: req.OrganizationID,
	})

	metrics.RecommendRequests.Inc()
	metrics.RecommendLatency.Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}
