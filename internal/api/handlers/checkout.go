package handlers

import (
	"log/slog"
	"net/http"

	"github.com/dlcastillo/storefront/internal/api/middleware"
	"github.com/dlcastillo/storefront/internal/cart"
	apperrors "github.com/dlcastillo/storefront/internal/errors"
	"github.com/dlcastillo/storefront/internal/models"
	service "github.com/dlcastillo/storefront/internal/services"
	"github.com/dlcastillo/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
	carts           *cart.Store
	validator       *validator.Validate
}

func NewCheckoutHandler(checkoutService service.CheckoutService, carts *cart.Store) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService, carts: carts, validator: validator.New()}
}

func (h *CheckoutHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, apperrors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.CheckoutRequest

		if !parseAndValidate(w, r, h.validator, &req) {
			return
		}

		userCart := h.carts.Get(claims.UserID)

		order, err := h.checkoutService.Checkout(r.Context(), claims.UserID, userCart, &req)

		if err != nil {
			logger.Error("Checkout failed", slog.String("userId", claims.UserID.String()), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Order placed",
			slog.String("orderId", order.ID.String()),
			slog.String("userId", claims.UserID.String()),
			slog.Float64("total", order.Total))

		response.Success(w, http.StatusCreated, &models.CheckoutResponse{Order: order})
	}
}
