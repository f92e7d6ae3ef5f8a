package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/dlcastillo/storefront/internal/gateway"
	"github.com/dlcastillo/storefront/internal/models"
	"github.com/dlcastillo/storefront/internal/utils"
	"github.com/google/uuid"
)

var productColumns = []string{
	"id", "name", "description", "price", "image_url", "category", "stock",
	"created_at", "updated_at",
}

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context, category string) ([]models.Product, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type productRepository struct {
	gw *gateway.Client
}

func NewProductRepo(gw *gateway.Client) ProductRepository {
	return &productRepository{gw: gw}
}

// Create relies on the backend defaulting id and timestamps on insert.
func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	gwCtx, cancel := utils.WithGatewayTimeout(ctx)
	defer cancel()

	row, err := r.gw.InsertReturning(gwCtx, "products", gateway.Values{
		"name":        product.Name,
		"description": product.Description,
		"price":       product.Price,
		"image_url":   product.ImageURL,
		"category":    product.Category,
		"stock":       product.Stock,
	}, "id", "created_at", "updated_at")
	if err != nil {
		return err
	}

	return row.Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	gwCtx, cancel := utils.WithGatewayTimeout(ctx)
	defer cancel()

	row, err := r.gw.SelectRow(gwCtx, gateway.Query{
		Table:   "products",
		Columns: productColumns,
		Filters: []gateway.Filter{gateway.Eq("id", id)},
	})
	if err != nil {
		return nil, err
	}

	product := &models.Product{}

	err = row.Scan(&product.ID, &product.Name, &product.Description, &product.Price,
		&product.ImageURL, &product.Category, &product.Stock,
		&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return product, nil
}

// List returns products newest first, optionally narrowed to one category.
func (r *productRepository) List(ctx context.Context, category string) ([]models.Product, error) {
	gwCtx, cancel := utils.WithGatewayTimeout(ctx)
	defer cancel()

	q := gateway.Query{
		Table:      "products",
		Columns:    productColumns,
		OrderBy:    "created_at",
		Descending: true,
	}

	if category != "" {
		q.Filters = []gateway.Filter{gateway.Eq("category", category)}
	}

	rows, err := r.gw.Select(gwCtx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	defer rows.Close()

	var products []models.Product

	for rows.Next() {

		var product models.Product

		err := rows.Scan(&product.ID, &product.Name, &product.Description, &product.Price,
			&product.ImageURL, &product.Category, &product.Stock,
			&product.CreatedAt, &product.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepository) Count(ctx context.Context) (int, error) {
	gwCtx, cancel := utils.WithGatewayTimeout(ctx)
	defer cancel()

	rows, err := r.gw.Select(gwCtx, gateway.Query{
		Table:   "products",
		Columns: []string{"id"},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}

	defer rows.Close()

	count := 0

	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return 0, err
		}
		count++
	}

	return count, rows.Err()
}

func (r *productRepository) Update(ctx context.Context, product *models.Product) error {
	gwCtx, cancel := utils.WithGatewayTimeout(ctx)
	defer cancel()

	product.UpdatedAt = time.Now()

	affected, err := r.gw.Update(gwCtx, "products", gateway.Values{
		"name":        product.Name,
		"description": product.Description,
		"price":       product.Price,
		"image_url":   product.ImageURL,
		"category":    product.Category,
		"stock":       product.Stock,
		"updated_at":  product.UpdatedAt,
	}, []gateway.Filter{gateway.Eq("id", product.ID)})
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("product not found")
	}

	return nil
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	gwCtx, cancel := utils.WithGatewayTimeout(ctx)
	defer cancel()

	affected, err := r.gw.Delete(gwCtx, "products", []gateway.Filter{gateway.Eq("id", id)})
	if err != nil {
		return false, fmt.Errorf("failed to delete product: %w", err)
	}

	return affected > 0, nil
}
