package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dlcastillo/storefront/internal/cart"
	apperrors "github.com/dlcastillo/storefront/internal/errors"
	"github.com/dlcastillo/storefront/internal/models"
	repository "github.com/dlcastillo/storefront/internal/repositories"
	"github.com/dlcastillo/storefront/pkg/sendgrid"
	"github.com/google/uuid"
)

type CheckoutService interface {
	Checkout(ctx context.Context, userID uuid.UUID, userCart *cart.Cart, req *models.CheckoutRequest) (*models.Order, error)
}

type checkoutService struct {
	orders repository.OrderRepository
	email  sendgrid.EmailService
}

func NewCheckoutService(orders repository.OrderRepository, email sendgrid.EmailService) CheckoutService {
	return &checkoutService{orders: orders, email: email}
}

// Checkout turns the cart into one order plus its items in a single write.
// The total and every item price are taken from the cart's add-time
// snapshots, not the live catalog. The cart is cleared only after the write
// committed; on failure it is untouched and the caller may retry.
func (s *checkoutService) Checkout(ctx context.Context, userID uuid.UUID, userCart *cart.Cart, req *models.CheckoutRequest) (*models.Order, error) {

	lines := userCart.Lines()

	if len(lines) == 0 {
		return nil, apperrors.BadRequestError("Cannot checkout with an empty cart")
	}

	order := &models.Order{
		UserID:          &userID,
		Total:           userCart.TotalPrice(),
		Status:          models.OrderStatusPending,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		ShippingAddress: req.ShippingAddress,
	}

	items := make([]models.OrderItem, 0, len(lines))

	for _, line := range lines {
		items = append(items, models.OrderItem{
			ProductID: line.Product.ID,
			Quantity:  line.Quantity,
			Price:     line.Product.Price,
		})
	}

	if err := s.orders.CreateWithItems(ctx, order, items); err != nil {
		return nil, apperrors.GatewayError("Failed to place order").WithError(err)
	}

	userCart.Clear()

	// Confirmation email is best effort; checkout already succeeded.
	if s.email != nil {
		if err := s.email.Send(ctx, confirmationEmail(order, lines)); err != nil {
			slog.Warn("Failed to send order confirmation",
				slog.String("orderId", order.ID.String()),
				slog.String("error", err.Error()))
		}
	}

	return order, nil
}

func confirmationEmail(order *models.Order, lines []cart.Line) *sendgrid.Email {

	var sb strings.Builder

	fmt.Fprintf(&sb, "Thank you for your order, %s!\n\n", order.CustomerName)
	fmt.Fprintf(&sb, "Order %s\n\n", order.ID)

	for _, line := range lines {
		fmt.Fprintf(&sb, "  %d x %s @ %s\n",
			line.Quantity, line.Product.Name, models.FormatAmount(line.Product.Price))
	}

	fmt.Fprintf(&sb, "\nTotal: %s\n", models.FormatAmount(order.Total))
	fmt.Fprintf(&sb, "Shipping to: %s\n", order.ShippingAddress)

	return &sendgrid.Email{
		To:      order.CustomerEmail,
		Subject: "Your order confirmation",
		Content: sb.String(),
	}
}
