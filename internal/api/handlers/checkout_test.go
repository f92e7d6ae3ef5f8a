package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dlcastillo/storefront/internal/api/handlers"
	"github.com/dlcastillo/storefront/internal/cart"
	appErrors "github.com/dlcastillo/storefront/internal/errors"
	"github.com/dlcastillo/storefront/internal/models"
	"github.com/dlcastillo/storefront/internal/services/mocks"
	"github.com/dlcastillo/storefront/internal/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCheckout(t *testing.T) {
	userID := uuid.New()

	reqBody := models.CheckoutRequest{
		CustomerName:    "Dana Cruz",
		CustomerEmail:   "dana@example.com",
		ShippingAddress: "12 Mabini St, Quezon City",
	}

	t.Run("Success - Order Placed", func(t *testing.T) {
		// Arrange
		carts := cart.NewStore()
		mockCheckout := new(mocks.CheckoutService)
		checkoutHandler := handlers.NewCheckoutHandler(mockCheckout, carts)

		body, _ := json.Marshal(reqBody)

		expectedOrder := &models.Order{
			ID:     uuid.New(),
			UserID: &userID,
			Total:  240.0,
			Status: models.OrderStatusPending,
		}

		mockCheckout.On("Checkout", mock.Anything, userID, mock.AnythingOfType("*cart.Cart"),
			mock.AnythingOfType("*models.CheckoutRequest")).Return(expectedOrder, nil).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/checkout",
			bytes.NewReader(body), userID, nil)

		// Act
		checkoutHandler.Checkout().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Contains(t, rr.Body.String(), expectedOrder.ID.String())
		mockCheckout.AssertExpectations(t)
	})

	t.Run("Failure - No Authentication", func(t *testing.T) {
		// Arrange
		mockCheckout := new(mocks.CheckoutService)
		checkoutHandler := handlers.NewCheckoutHandler(mockCheckout, cart.NewStore())

		body, _ := json.Marshal(reqBody)

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/checkout",
			bytes.NewReader(body), nil)

		// Act
		checkoutHandler.Checkout().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		mockCheckout.AssertNotCalled(t, "Checkout")
	})

	t.Run("Failure - Validation Error", func(t *testing.T) {
		// Arrange
		mockCheckout := new(mocks.CheckoutService)
		checkoutHandler := handlers.NewCheckoutHandler(mockCheckout, cart.NewStore())

		invalid := models.CheckoutRequest{CustomerName: "Dana Cruz", CustomerEmail: "not-an-email"}
		body, _ := json.Marshal(invalid)

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/checkout",
			bytes.NewReader(body), userID, nil)

		// Act
		checkoutHandler.Checkout().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), appErrors.ErrCodeValidation)
		mockCheckout.AssertNotCalled(t, "Checkout")
	})

	t.Run("Failure - Empty Cart", func(t *testing.T) {
		// Arrange
		mockCheckout := new(mocks.CheckoutService)
		checkoutHandler := handlers.NewCheckoutHandler(mockCheckout, cart.NewStore())

		body, _ := json.Marshal(reqBody)

		mockCheckout.On("Checkout", mock.Anything, userID, mock.Anything, mock.Anything).
			Return(nil, appErrors.BadRequestError("Cannot checkout with an empty cart")).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/checkout",
			bytes.NewReader(body), userID, nil)

		// Act
		checkoutHandler.Checkout().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "empty cart")
		mockCheckout.AssertExpectations(t)
	})
}
