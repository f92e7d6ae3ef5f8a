package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/dlcastillo/storefront/internal/cache"
	apperrors "github.com/dlcastillo/storefront/internal/errors"
	"github.com/dlcastillo/storefront/internal/models"
	repository "github.com/dlcastillo/storefront/internal/repositories"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

const catalogCacheKey = "all"

type CatalogService interface {
	ListProducts(ctx context.Context, category string) ([]models.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID, confirmed bool) error
}

type catalogService struct {
	repo      repository.ProductRepository
	cache     cache.Cache
	sanitizer *bluemonday.Policy
}

func NewCatalogService(repo repository.ProductRepository, productCache cache.Cache) CatalogService {
	return &catalogService{
		repo:      repo,
		cache:     productCache,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *catalogService) ListProducts(ctx context.Context, category string) ([]models.Product, error) {

	// Only the unfiltered catalog is cached; category views are narrow
	// enough to fetch directly.
	useCache := s.cache != nil && category == ""

	if useCache {
		var products []models.Product
		hit, err := s.cache.Get(ctx, cache.Key(cache.CatalogKeyPrefix, catalogCacheKey), &products)
		if err != nil {
			slog.Warn("Catalog cache read failed", slog.String("error", err.Error()))
		}
		if hit {
			return products, nil
		}
	}

	products, err := s.repo.List(ctx, category)
	if err != nil {
		return nil, apperrors.GatewayError("Failed to fetch products").WithError(err)
	}

	if useCache {
		if err := s.cache.Set(ctx, cache.Key(cache.CatalogKeyPrefix, catalogCacheKey), products, 0); err != nil {
			slog.Warn("Catalog cache write failed", slog.String("error", err.Error()))
		}
	}

	return products, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {

	if s.cache != nil {
		cached := &models.Product{}
		hit, err := s.cache.Get(ctx, cache.Key(cache.ProductKeyPrefix, id.String()), cached)
		if err != nil {
			slog.Warn("Product cache read failed", slog.String("error", err.Error()))
		}
		if hit {
			return cached, nil
		}
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundError("Product not found").WithError(err)
		}
		return nil, apperrors.GatewayError("Failed to fetch product").WithError(err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cache.Key(cache.ProductKeyPrefix, id.String()), product, 0); err != nil {
			slog.Warn("Product cache write failed", slog.String("error", err.Error()))
		}
	}

	return product, nil
}

func (s *catalogService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {

	product := &models.Product{
		Name:        s.sanitizer.Sanitize(req.Name),
		Description: s.sanitizer.Sanitize(req.Description),
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Category:    s.sanitizer.Sanitize(req.Category),
		Stock:       req.Stock,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, apperrors.GatewayError("Failed to create product").WithError(err)
	}

	s.invalidate(ctx, product.ID)

	return product, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {

	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = s.sanitizer.Sanitize(*req.Name)
	}
	if req.Description != nil {
		product.Description = s.sanitizer.Sanitize(*req.Description)
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}
	if req.Category != nil {
		product.Category = s.sanitizer.Sanitize(*req.Category)
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, apperrors.GatewayError("Failed to update product").WithError(err)
	}

	s.invalidate(ctx, id)

	return product, nil
}

// DeleteProduct refuses to act without an explicit confirmation from the
// caller.
func (s *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID, confirmed bool) error {

	if !confirmed {
		return apperrors.BadRequestError("Product deletion requires confirmation")
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return apperrors.GatewayError("Failed to delete product").WithError(err)
	}

	if !deleted {
		return apperrors.NotFoundError("Product not found")
	}

	s.invalidate(ctx, id)

	return nil
}

// invalidate drops cached views after a successful write so the next read
// resynchronizes with the backing store.
func (s *catalogService) invalidate(ctx context.Context, id uuid.UUID) {

	if s.cache == nil {
		return
	}

	if err := s.cache.Delete(ctx, cache.Key(cache.CatalogKeyPrefix, catalogCacheKey)); err != nil {
		slog.Warn("Catalog cache invalidation failed", slog.String("error", err.Error()))
	}

	if err := s.cache.Delete(ctx, cache.Key(cache.ProductKeyPrefix, id.String())); err != nil {
		slog.Warn("Product cache invalidation failed", slog.String("error", err.Error()))
	}
}
