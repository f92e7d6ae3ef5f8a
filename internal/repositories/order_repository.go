package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dlcastillo/storefront/internal/gateway"
	"github.com/dlcastillo/storefront/internal/models"
	"github.com/dlcastillo/storefront/internal/utils"
	"github.com/google/uuid"
)

var orderColumns = []string{
	"id", "user_id", "total", "status", "customer_name", "customer_email",
	"shipping_address", "created_at",
}

type OrderRepository interface {
	// CreateWithItems writes the order row and every item row in one
	// transaction; a failed item insert leaves no orphaned order behind.
	CreateWithItems(ctx context.Context, order *models.Order, items []models.OrderItem) error
	ListTotals(ctx context.Context) ([]models.Order, error)
	ListRecentWithItems(ctx context.Context, limit int) ([]models.OrderWithItems, error)
}

type orderRepository struct {
	gw *gateway.Client
}

func NewOrderRepo(gw *gateway.Client) OrderRepository {
	return &orderRepository{gw: gw}
}

func (r *orderRepository) CreateWithItems(ctx context.Context, order *models.Order, items []models.OrderItem) error {
	gwCtx, cancel := utils.WithGatewayTimeout(ctx)
	defer cancel()

	return r.gw.InTx(gwCtx, func(tx *gateway.Tx) error {

		var userID any
		if order.UserID != nil {
			userID = *order.UserID
		}

		row, err := tx.InsertReturning(gwCtx, "orders", gateway.Values{
			"user_id":          userID,
			"total":            order.Total,
			"status":           order.Status,
			"customer_name":    order.CustomerName,
			"customer_email":   order.CustomerEmail,
			"shipping_address": order.ShippingAddress,
		}, "id", "created_at")
		if err != nil {
			return err
		}

		if err := row.Scan(&order.ID, &order.CreatedAt); err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}

		for i := range items {
			items[i].OrderID = order.ID

			err := tx.Insert(gwCtx, "order_items", gateway.Values{
				"order_id":   order.ID,
				"product_id": items[i].ProductID,
				"quantity":   items[i].Quantity,
				"price":      items[i].Price,
			})
			if err != nil {
				return fmt.Errorf("failed to insert order item: %w", err)
			}
		}

		return nil
	})
}

// ListTotals fetches the id, total and status of every order; the reporting
// fold needs nothing else.
func (r *orderRepository) ListTotals(ctx context.Context) ([]models.Order, error) {
	gwCtx, cancel := utils.WithGatewayTimeout(ctx)
	defer cancel()

	rows, err := r.gw.Select(gwCtx, gateway.Query{
		Table:   "orders",
		Columns: []string{"id", "total", "status"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	defer rows.Close()

	var orders []models.Order

	for rows.Next() {

		var order models.Order

		if err := rows.Scan(&order.ID, &order.Total, &order.Status); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}

		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepository) ListRecentWithItems(ctx context.Context, limit int) ([]models.OrderWithItems, error) {
	gwCtx, cancel := utils.WithGatewayTimeout(ctx)
	defer cancel()

	rows, err := r.gw.Select(gwCtx, gateway.Query{
		Table:      "orders",
		Columns:    orderColumns,
		OrderBy:    "created_at",
		Descending: true,
		Limit:      limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list recent orders: %w", err)
	}

	orders, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return nil, nil
	}

	orderIDs := make([]any, 0, len(orders))
	byOrder := make(map[uuid.UUID]*models.OrderWithItems, len(orders))

	for i := range orders {
		orderIDs = append(orderIDs, orders[i].ID)
		byOrder[orders[i].ID] = &orders[i]
	}

	productIDs, err := r.attachItems(gwCtx, orderIDs, byOrder)
	if err != nil {
		return nil, err
	}

	if err := r.attachProducts(gwCtx, productIDs, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

func scanOrders(rows *sql.Rows) ([]models.OrderWithItems, error) {

	defer rows.Close()

	var orders []models.OrderWithItems

	for rows.Next() {

		var order models.OrderWithItems

		err := rows.Scan(&order.ID, &order.UserID, &order.Total, &order.Status,
			&order.CustomerName, &order.CustomerEmail, &order.ShippingAddress,
			&order.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}

		orders = append(orders, order)
	}

	return orders, rows.Err()
}

func (r *orderRepository) attachItems(ctx context.Context, orderIDs []any, byOrder map[uuid.UUID]*models.OrderWithItems) ([]any, error) {

	rows, err := r.gw.Select(ctx, gateway.Query{
		Table:   "order_items",
		Columns: []string{"id", "order_id", "product_id", "quantity", "price", "created_at"},
		Filters: []gateway.Filter{gateway.In("order_id", orderIDs...)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}

	defer rows.Close()

	seen := make(map[uuid.UUID]bool)
	var productIDs []any

	for rows.Next() {

		var item models.OrderItemWithProduct

		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID,
			&item.Quantity, &item.Price, &item.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}

		if order, ok := byOrder[item.OrderID]; ok {
			order.Items = append(order.Items, item)
		}

		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			productIDs = append(productIDs, item.ProductID)
		}
	}

	return productIDs, rows.Err()
}

func (r *orderRepository) attachProducts(ctx context.Context, productIDs []any, orders []models.OrderWithItems) error {

	if len(productIDs) == 0 {
		return nil
	}

	rows, err := r.gw.Select(ctx, gateway.Query{
		Table:   "products",
		Columns: productColumns,
		Filters: []gateway.Filter{gateway.In("id", productIDs...)},
	})
	if err != nil {
		return fmt.Errorf("failed to list order products: %w", err)
	}

	defer rows.Close()

	products := make(map[uuid.UUID]*models.Product)

	for rows.Next() {

		var product models.Product

		err := rows.Scan(&product.ID, &product.Name, &product.Description, &product.Price,
			&product.ImageURL, &product.Category, &product.Stock,
			&product.CreatedAt, &product.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to scan product: %w", err)
		}

		products[product.ID] = &product
	}

	if err := rows.Err(); err != nil {
		return err
	}

	for i := range orders {
		for j := range orders[i].Items {
			orders[i].Items[j].Product = products[orders[i].Items[j].ProductID]
		}
	}

	return nil
}
