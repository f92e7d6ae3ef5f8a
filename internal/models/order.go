package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// CurrencySymbol is fixed; the storefront is single-currency.
const CurrencySymbol = "₱"

func FormatAmount(amount float64) string {
	return fmt.Sprintf("%s%.2f", CurrencySymbol, amount)
}

type Order struct {
	ID              uuid.UUID   `json:"id"`
	UserID          *uuid.UUID  `json:"user_id"`
	Total           float64     `json:"total"`
	Status          OrderStatus `json:"status"`
	CustomerName    string      `json:"customer_name"`
	CustomerEmail   string      `json:"customer_email"`
	ShippingAddress string      `json:"shipping_address"`
	CreatedAt       time.Time   `json:"created_at"`
}

// OrderItem carries the unit price as recorded at purchase time,
// independent of later catalog price changes.
type OrderItem struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"order_id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

type OrderItemWithProduct struct {
	OrderItem
	Product *Product `json:"product,omitempty"`
}

type OrderWithItems struct {
	Order
	Items []OrderItemWithProduct `json:"order_items"`
}

type CheckoutRequest struct {
	CustomerName    string `json:"customer_name" validate:"required"`
	CustomerEmail   string `json:"customer_email" validate:"required,email"`
	ShippingAddress string `json:"shipping_address" validate:"required"`
}

type CheckoutResponse struct {
	Order *Order `json:"order"`
}
