package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dlcastillo/storefront/internal/api/handlers"
	appErrors "github.com/dlcastillo/storefront/internal/errors"
	"github.com/dlcastillo/storefront/internal/models"
	"github.com/dlcastillo/storefront/internal/services/mocks"
	"github.com/dlcastillo/storefront/internal/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestListProducts(t *testing.T) {
	mockCatalog := new(mocks.CatalogService)
	productHandler := handlers.NewProductHandler(mockCatalog)

	t.Run("Success - Products Listed", func(t *testing.T) {
		// Arrange
		expected := []models.Product{
			{ID: uuid.New(), Name: "Notebook", Price: 120.0},
			{ID: uuid.New(), Name: "Ballpen", Price: 15.0},
		}

		mockCatalog.On("ListProducts", mock.Anything, "").Return(expected, nil).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products", nil, nil)

		// Act
		productHandler.ListProducts().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Notebook")
		mockCatalog.AssertExpectations(t)
	})

	t.Run("Success - Category Filter Forwarded", func(t *testing.T) {
		// Arrange
		mockCatalog.On("ListProducts", mock.Anything, "stationery").Return([]models.Product{}, nil).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products?category=stationery", nil, nil)

		// Act
		productHandler.ListProducts().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		mockCatalog.AssertExpectations(t)
	})

	t.Run("Failure - Service Error", func(t *testing.T) {
		// Arrange
		mockCatalog.On("ListProducts", mock.Anything, "").
			Return(nil, appErrors.GatewayError("Failed to fetch products")).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products", nil, nil)

		// Act
		productHandler.ListProducts().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), appErrors.ErrCodeGatewayError)
		mockCatalog.AssertExpectations(t)
	})
}

func TestGetProduct(t *testing.T) {
	mockCatalog := new(mocks.CatalogService)
	productHandler := handlers.NewProductHandler(mockCatalog)
	testID := uuid.New()

	t.Run("Success - Product Found", func(t *testing.T) {
		// Arrange
		expected := &models.Product{ID: testID, Name: "Notebook"}

		mockCatalog.On("GetProduct", mock.Anything, testID).Return(expected, nil).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products/"+testID.String(), nil,
			map[string]string{"id": testID.String()})

		// Act
		productHandler.GetProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), testID.String())
		mockCatalog.AssertExpectations(t)
	})

	t.Run("Failure - Invalid ID", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products/not-a-uuid", nil,
			map[string]string{"id": "not-a-uuid"})

		// Act
		productHandler.GetProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockCatalog.AssertNotCalled(t, "GetProduct")
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		mockCatalog.On("GetProduct", mock.Anything, testID).
			Return(nil, appErrors.NotFoundError("Product not found")).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products/"+testID.String(), nil,
			map[string]string{"id": testID.String()})

		// Act
		productHandler.GetProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockCatalog.AssertExpectations(t)
	})
}

func TestCreateProduct(t *testing.T) {
	mockCatalog := new(mocks.CatalogService)
	productHandler := handlers.NewProductHandler(mockCatalog)

	reqBody := models.CreateProductRequest{
		Name:        "Notebook",
		Description: "College ruled",
		Price:       120.0,
		Category:    "stationery",
		Stock:       10,
	}

	t.Run("Success - Product Created", func(t *testing.T) {
		// Arrange
		body, _ := json.Marshal(reqBody)

		expected := &models.Product{ID: uuid.New(), Name: reqBody.Name, Price: reqBody.Price}
		mockCatalog.On("CreateProduct", mock.Anything, mock.AnythingOfType("*models.CreateProductRequest")).
			Return(expected, nil).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/admin/products",
			bytes.NewReader(body), uuid.New(), nil)

		// Act
		productHandler.CreateProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Contains(t, rr.Body.String(), expected.ID.String())
		mockCatalog.AssertExpectations(t)
	})

	t.Run("Failure - Bad JSON", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/admin/products",
			bytes.NewReader([]byte("{invalid json")), uuid.New(), nil)

		// Act
		productHandler.CreateProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockCatalog.AssertNotCalled(t, "CreateProduct")
	})

	t.Run("Failure - Validation Error", func(t *testing.T) {
		// Arrange
		invalid := models.CreateProductRequest{Description: "no name"}
		body, _ := json.Marshal(invalid)

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/admin/products",
			bytes.NewReader(body), uuid.New(), nil)

		// Act
		productHandler.CreateProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), appErrors.ErrCodeValidation)
		mockCatalog.AssertNotCalled(t, "CreateProduct")
	})
}

func TestDeleteProduct(t *testing.T) {
	mockCatalog := new(mocks.CatalogService)
	productHandler := handlers.NewProductHandler(mockCatalog)
	testID := uuid.New()

	t.Run("Failure - Missing Confirmation", func(t *testing.T) {
		// Arrange
		mockCatalog.On("DeleteProduct", mock.Anything, testID, false).
			Return(appErrors.BadRequestError("Product deletion requires confirmation")).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodDelete,
			"/api/v1/admin/products/"+testID.String(), nil, uuid.New(),
			map[string]string{"id": testID.String()})

		// Act
		productHandler.DeleteProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "confirmation")
		mockCatalog.AssertExpectations(t)
	})

	t.Run("Success - Confirmed Delete", func(t *testing.T) {
		// Arrange
		mockCatalog.On("DeleteProduct", mock.Anything, testID, true).Return(nil).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodDelete,
			"/api/v1/admin/products/"+testID.String()+"?confirm=true", nil, uuid.New(),
			map[string]string{"id": testID.String()})

		// Act
		productHandler.DeleteProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		mockCatalog.AssertExpectations(t)
	})
}
