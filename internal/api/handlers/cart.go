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

// CartHandler serves the session cart. The cart is keyed by the
// authenticated user, mutated in memory, and never written to the backing
// store until checkout.
type CartHandler struct {
	carts          *cart.Store
	catalogService service.CatalogService
	validator      *validator.Validate
}

func NewCartHandler(carts *cart.Store, catalogService service.CatalogService) *CartHandler {
	return &CartHandler{carts: carts, catalogService: catalogService, validator: validator.New()}
}

func (h *CartHandler) sessionCart(w http.ResponseWriter, r *http.Request) (*cart.Cart, bool) {

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.Error(w, apperrors.UnauthorizedError("Authentication required"))
		return nil, false
	}

	return h.carts.Get(claims.UserID), true
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		userCart, ok := h.sessionCart(w, r)
		if !ok {
			return
		}

		response.Success(w, http.StatusOK, userCart.Snapshot())
	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		userCart, ok := h.sessionCart(w, r)
		if !ok {
			return
		}

		var req models.AddCartItemRequest

		if !parseAndValidate(w, r, h.validator, &req) {
			return
		}

		// The catalog row fetched here becomes the line's snapshot.
		product, err := h.catalogService.GetProduct(r.Context(), req.ProductID)
		if err != nil {
			logger.Warn("Cart add failed", slog.String("productId", req.ProductID.String()), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		if product.Stock <= 0 {
			response.Error(w, apperrors.BadRequestError("Product is out of stock"))
			return
		}

		userCart.Add(*product, req.Quantity)

		logger.Info("Cart item added", slog.String("productId", product.ID.String()), slog.Int("quantity", req.Quantity))
		response.Success(w, http.StatusOK, userCart.Snapshot())
	}
}

func (h *CartHandler) UpdateItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		userCart, ok := h.sessionCart(w, r)
		if !ok {
			return
		}

		productID, ok := parseIDParam(w, r, logger, "productId")
		if !ok {
			return
		}

		var req models.UpdateCartQuantityRequest

		if !parseAndValidate(w, r, h.validator, &req) {
			return
		}

		userCart.UpdateQuantity(productID, req.Quantity)

		response.Success(w, http.StatusOK, userCart.Snapshot())
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		userCart, ok := h.sessionCart(w, r)
		if !ok {
			return
		}

		productID, ok := parseIDParam(w, r, logger, "productId")
		if !ok {
			return
		}

		userCart.Remove(productID)

		response.Success(w, http.StatusOK, userCart.Snapshot())
	}
}

func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		userCart, ok := h.sessionCart(w, r)
		if !ok {
			return
		}

		userCart.Clear()

		response.Success(w, http.StatusOK, userCart.Snapshot())
	}
}
