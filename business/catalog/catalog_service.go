package catalog

import (
	"context"
	"errors"
	"fmt"
	"myTerpMarket/domain"
	"myTerpMarket/pkg/logger"
)

// ProductRepository contract interface
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id uint64) (domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	FindAllWithVariants(ctx context.Context) ([]domain.ProductWithVariant, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uint64) error
}

// VariantRepository contract interface
type VariantRepository interface {
	Create(ctx context.Context, variant *domain.Variant) error
	FindByProductID(ctx context.Context, productID uint64) ([]domain.Variant, error)
	Update(ctx context.Context, variant *domain.Variant) error
	SetInventory(ctx context.Context, id uint64, level int, available bool) error
	Delete(ctx context.Context, id uint64) error
}

type catalogService struct {
	productRepo ProductRepository
	variantRepo VariantRepository
}

func NewCatalogService(productRepo ProductRepository, variantRepo VariantRepository) *catalogService {
	return &catalogService{
		productRepo: productRepo,
		variantRepo: variantRepo,
	}
}

var knownCategories = map[string]bool{
	domain.CategoryFlower:      true,
	domain.CategoryEdible:      true,
	domain.CategoryConcentrate: true,
	domain.CategoryVaporizer:   true,
	domain.CategoryTincture:    true,
	domain.CategoryTopical:     true,
}

// GetCatalog returns the denormalized product+variant view the
// recommendation engine consumes. Each product is paired with its cheapest
// variant; products with no variants get a nil variant and are filtered out
// downstream by the availability check.
func (s *catalogService) GetCatalog(ctx context.Context) ([]domain.ProductWithVariant, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when loading catalog")
		return nil, fmt.Errorf("context error: %w", err)
	}

	catalog, err := s.productRepo.FindAllWithVariants(ctx)
	if err != nil {
		logger.Error("Failed to load catalog", err)
		return nil, err
	}

	return catalog, nil
}

func (s *catalogService) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all products")
		return nil, fmt.Errorf("context error: %w", err)
	}

	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find all products", err)
		return nil, err
	}

	return products, nil
}

func (s *catalogService) GetProductByID(ctx context.Context, id uint64) (*domain.Product, error) {
	if id == 0 {
		logger.Error("invalid product id")
		return nil, errors.New("invalid product id")
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when get product by id")
		return nil, fmt.Errorf("context error: %w", err)
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to find product by id", err.Error())
		return nil, err
	}

	return &product, nil
}

func (s *catalogService) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when create product")
		return nil, fmt.Errorf("context error: %w", err)
	}

	// Validation
	if product.Name == "" {
		logger.Error("Invalid product data: product name is required")
		return nil, errors.New("product name is required")
	}

	if !knownCategories[product.Category] {
		logger.Error("Invalid product data: unknown category", "category", product.Category)
		return nil, errors.New("unknown product category")
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		logger.Error("failed to create new product", err)
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	logger.Info("product created successfully", "product_id", product.ID)

	return product, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when updating product")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if product.ID == 0 {
		logger.Error("Invalid product data: ID is required")
		return nil, errors.New("product ID is required")
	}

	if product.Name == "" {
		logger.Error("Invalid product data: product name is required")
		return nil, errors.New("product name is required")
	}

	if !knownCategories[product.Category] {
		logger.Error("Invalid product data: unknown category", "category", product.Category)
		return nil, errors.New("unknown product category")
	}

	// Verify product exists
	if _, err := s.productRepo.FindByID(ctx, product.ID); err != nil {
		logger.Error("product not found", err)
		return nil, errors.New("product not found")
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		logger.Error("failed to update product", err)
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	updated, err := s.productRepo.FindByID(ctx, product.ID)
	if err != nil {
		logger.Error("failed to fetch updated product", err)
		return nil, fmt.Errorf("failed to fetch updated product: %w", err)
	}

	logger.Info("product updated success", "product_id", product.ID)

	return &updated, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id uint64) error {
	if id == 0 {
		logger.Error("Invalid product id when deleting product")
		return errors.New("invalid product id")
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when deleting product")
		return fmt.Errorf("context error: %w", err)
	}

	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		logger.Error("product not found", err)
		return errors.New("product not found")
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete product", err)
		return fmt.Errorf("failed to delete product: %w", err)
	}

	logger.Info("product deleted success", "product_id", id)

	return nil
}

func (s *catalogService) AddVariant(ctx context.Context, variant *domain.Variant) (*domain.Variant, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when adding variant")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if variant.ProductID == 0 {
		logger.Error("Invalid variant data: product id is required")
		return nil, errors.New("product ID is required")
	}

	if variant.Price <= 0 {
		logger.Error("Invalid variant data: price must be greater than 0")
		return nil, errors.New("price must be greater than 0")
	}

	if variant.InventoryLevel < 0 {
		logger.Error("Invalid variant data: inventory cannot be negative")
		return nil, errors.New("inventory cannot be negative")
	}

	if _, err := s.productRepo.FindByID(ctx, variant.ProductID); err != nil {
		logger.Error("product not found for variant", err)
		return nil, errors.New("product not found")
	}

	if err := s.variantRepo.Create(ctx, variant); err != nil {
		logger.Error("failed to create variant", err)
		return nil, fmt.Errorf("failed to create variant: %w", err)
	}

	logger.Info("variant created successfully", "variant_id", variant.ID)

	return variant, nil
}

func (s *catalogService) GetVariants(ctx context.Context, productID uint64) ([]domain.Variant, error) {
	if productID == 0 {
		logger.Error("invalid product id when listing variants")
		return nil, errors.New("invalid product id")
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when listing variants")
		return nil, fmt.Errorf("context error: %w", err)
	}

	variants, err := s.variantRepo.FindByProductID(ctx, productID)
	if err != nil {
		logger.Error("failed to list variants", err)
		return nil, err
	}

	return variants, nil
}

// SetInventory adjusts stock and availability of a single variant; this is
// the path POS integrations call after every sale.
func (s *catalogService) SetInventory(ctx context.Context, variantID uint64, level int, available bool) error {
	if variantID == 0 {
		logger.Error("invalid variant id when setting inventory")
		return errors.New("invalid variant id")
	}

	if level < 0 {
		logger.Error("inventory cannot be negative")
		return errors.New("inventory cannot be negative")
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when setting inventory")
		return fmt.Errorf("context error: %w", err)
	}

	if err := s.variantRepo.SetInventory(ctx, variantID, level, available); err != nil {
		logger.Error("failed to set inventory", err)
		return fmt.Errorf("failed to set inventory: %w", err)
	}

	return nil
}
