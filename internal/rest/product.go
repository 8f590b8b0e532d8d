package rest

import (
	"context"
	"myTerpMarket/domain"
	"myTerpMarket/pkg/logger"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type ProductService interface {
	GetAllProducts(ctx context.Context) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id uint64) (*domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id uint64) error
	AddVariant(ctx context.Context, variant *domain.Variant) (*domain.Variant, error)
	GetVariants(ctx context.Context, productID uint64) ([]domain.Variant, error)
	SetInventory(ctx context.Context, variantID uint64, level int, available bool) error
}

type ProductHandler struct {
	productService ProductService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewProductHandler(productService ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		validator:      validator.New(),
		timeout:        10 * time.Second,
	}
}

type CreateProductRequest struct {
	Name        string `json:"name" validate:"required"`
	Brand       string `json:"brand"`
	Category    string `json:"category" validate:"required"`
	Subcategory string `json:"subcategory"`
	Description string `json:"description"`
	StrainType  string `json:"strain_type" validate:"omitempty,oneof=sativa indica hybrid cbd balanced"`
	Genetics    string `json:"genetics"`
	ImageURL    string `json:"image_url"`
}

type UpdateProductRequest struct {
	Name        string `json:"name" validate:"required"`
	Brand       string `json:"brand"`
	Category    string `json:"category" validate:"required"`
	Subcategory string `json:"subcategory"`
	Description string `json:"description"`
	StrainType  string `json:"strain_type" validate:"omitempty,oneof=sativa indica hybrid cbd balanced"`
	Genetics    string `json:"genetics"`
	ImageURL    string `json:"image_url"`
}

type CreateVariantRequest struct {
	Name              string             `json:"name" validate:"required"`
	Price             float64            `json:"price" validate:"required,gt=0"`
	OriginalPrice     float64            `json:"original_price" validate:"gte=0"`
	THCPercent        float64            `json:"thc_percent" validate:"gte=0,lte=100"`
	CBDPercent        float64            `json:"cbd_percent" validate:"gte=0,lte=100"`
	TotalCannabinoids float64            `json:"total_cannabinoids" validate:"gte=0"`
	TerpeneProfile    map[string]float64 `json:"terpene_profile"`
	InventoryLevel    int                `json:"inventory_level" validate:"gte=0"`
	IsAvailable       bool               `json:"is_available"`
}

type SetInventoryRequest struct {
	InventoryLevel int  `json:"inventory_level" validate:"gte=0"`
	IsAvailable    bool `json:"is_available"`
}

func (h *ProductHandler) GetAllProducts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.productService.GetAllProducts(ctx)
	if err != nil {
		logger.Error("Failed to find all products", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "successfully get all products",
		"products": products,
	})
}

func (h *ProductHandler) GetProductByID(c echo.Context) error {
	productIdStr := c.Param("id")

	productId, err := strconv.ParseUint(productIdStr, 10, 64)
	if err != nil {
		logger.Error("Invalid product id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	product, err := h.productService.GetProductByID(ctx, productId)
	if err != nil {
		if err.Error() == "product not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully find product by id",
		"product": product,
	})
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req CreateProductRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate product request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	product := &domain.Product{
		Name:        req.Name,
		Brand:       req.Brand,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Description: req.Description,
		StrainType:  req.StrainType,
		Genetics:    req.Genetics,
		ImageURL:    req.ImageURL,
	}

	newProduct, err := h.productService.CreateProduct(ctx, product)
	if err != nil {
		logger.Error("Failed to create product", err)
		if err.Error() == "product name is required" ||
			err.Error() == "unknown product category" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "product successfully created",
		"product": newProduct,
	})
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	productIdStr := c.Param("id")

	productId, err := strconv.ParseUint(productIdStr, 10, 64)
	if err != nil {
		logger.Error("Invalid product id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var req UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate product request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	product := &domain.Product{
		ID:          productId,
		Name:        req.Name,
		Brand:       req.Brand,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Description: req.Description,
		StrainType:  req.StrainType,
		Genetics:    req.Genetics,
		ImageURL:    req.ImageURL,
	}

	updateProduct, err := h.productService.UpdateProduct(ctx, product)
	if err != nil {
		logger.Error("Failed to update product", err)
		if err.Error() == "product not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if err.Error() == "product name is required" ||
			err.Error() == "unknown product category" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully update product",
		"product": updateProduct,
	})
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	productIdStr := c.Param("id")

	productId, err := strconv.ParseUint(productIdStr, 10, 64)
	if err != nil {
		logger.Error("Invalid product id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	err = h.productService.DeleteProduct(ctx, productId)
	if err != nil {
		logger.Error("Failed to delete product", err)
		if err.Error() == "product not found" || err.Error() == "invalid product id" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":    "product successfully deleted",
		"product_id": productId,
	})
}

func (h *ProductHandler) AddVariant(c echo.Context) error {
	productIdStr := c.Param("id")

	productId, err := strconv.ParseUint(productIdStr, 10, 64)
	if err != nil {
		logger.Error("Invalid product id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var req CreateVariantRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate variant request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	variant := &domain.Variant{
		ProductID:         productId,
		Name:              req.Name,
		Price:             req.Price,
		OriginalPrice:     req.OriginalPrice,
		THCPercent:        req.THCPercent,
		CBDPercent:        req.CBDPercent,
		TotalCannabinoids: req.TotalCannabinoids,
		TerpeneProfile:    domain.TerpeneProfile(req.TerpeneProfile),
		InventoryLevel:    req.InventoryLevel,
		IsAvailable:       req.IsAvailable,
	}

	newVariant, err := h.productService.AddVariant(ctx, variant)
	if err != nil {
		logger.Error("Failed to create variant", err)
		if err.Error() == "product not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if err.Error() == "price must be greater than 0" ||
			err.Error() == "inventory cannot be negative" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "variant successfully created",
		"variant": newVariant,
	})
}

func (h *ProductHandler) GetVariants(c echo.Context) error {
	productIdStr := c.Param("id")

	productId, err := strconv.ParseUint(productIdStr, 10, 64)
	if err != nil {
		logger.Error("Invalid product id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	variants, err := h.productService.GetVariants(ctx, productId)
	if err != nil {
		logger.Error("Failed to find variants", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "successfully get variants",
		"variants": variants,
	})
}

func (h *ProductHandler) SetInventory(c echo.Context) error {
	variantIdStr := c.Param("variant_id")

	variantId, err := strconv.ParseUint(variantIdStr, 10, 64)
	if err != nil {
		logger.Error("Invalid variant id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var req SetInventoryRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate inventory request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	err = h.productService.SetInventory(ctx, variantId, req.InventoryLevel, req.IsAvailable)
	if err != nil {
		logger.Error("Failed to update inventory", err)
		if err.Error() == "invalid variant id" ||
			err.Error() == "inventory cannot be negative" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":    "inventory successfully updated",
		"variant_id": variantId,
	})
}
