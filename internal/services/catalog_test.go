package service_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	appErrors "github.com/dlcastillo/storefront/internal/errors"
	"github.com/dlcastillo/storefront/internal/models"
	"github.com/dlcastillo/storefront/internal/repositories/mocks"
	service "github.com/dlcastillo/storefront/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestListProducts(t *testing.T) {
	// Arrange
	mockRepo := new(mocks.ProductRepository)
	catalogService := service.NewCatalogService(mockRepo, nil)
	ctx := t.Context()

	t.Run("Success - List Products", func(t *testing.T) {
		// Arrange
		expectedProducts := []models.Product{
			{ID: uuid.New(), Name: "Notebook", Price: 120.0, Stock: 10},
			{ID: uuid.New(), Name: "Ballpen", Price: 15.0, Stock: 200},
		}

		mockRepo.On("List", mock.Anything, "").Return(expectedProducts, nil).Once()

		// Act
		products, err := catalogService.ListProducts(ctx, "")

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, expectedProducts, products)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Success - Filtered By Category", func(t *testing.T) {
		// Arrange
		expectedProducts := []models.Product{
			{ID: uuid.New(), Name: "Notebook", Category: "stationery"},
		}

		mockRepo.On("List", mock.Anything, "stationery").Return(expectedProducts, nil).Once()

		// Act
		products, err := catalogService.ListProducts(ctx, "stationery")

		// Assert
		assert.NoError(t, err)
		assert.Len(t, products, 1)
		assert.Equal(t, "stationery", products[0].Category)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - Gateway Error", func(t *testing.T) {
		// Arrange
		mockRepo.On("List", mock.Anything, "").Return(nil, errors.New("connection refused")).Once()

		// Act
		products, err := catalogService.ListProducts(ctx, "")

		// Assert
		assert.Error(t, err)
		assert.Nil(t, products)

		var appErr *appErrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeGatewayError, appErr.Code)
		mockRepo.AssertExpectations(t)
	})
}

func TestGetProduct(t *testing.T) {
	// Arrange
	mockRepo := new(mocks.ProductRepository)
	catalogService := service.NewCatalogService(mockRepo, nil)
	ctx := t.Context()
	testID := uuid.New()

	t.Run("Success - Get Product", func(t *testing.T) {
		// Arrange
		expectedProduct := &models.Product{ID: testID, Name: "Notebook"}

		mockRepo.On("GetByID", mock.Anything, testID).Return(expectedProduct, nil).Once()

		// Act
		product, err := catalogService.GetProduct(ctx, testID)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, expectedProduct, product)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		mockRepo.On("GetByID", mock.Anything, testID).
			Return(nil, fmt.Errorf("failed to get product: %w", sql.ErrNoRows)).Once()

		// Act
		product, err := catalogService.GetProduct(ctx, testID)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, product)

		var appErr *appErrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - Gateway Error", func(t *testing.T) {
		// Arrange
		mockRepo.On("GetByID", mock.Anything, testID).Return(nil, errors.New("connection refused")).Once()

		// Act
		product, err := catalogService.GetProduct(ctx, testID)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, product)

		var appErr *appErrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeGatewayError, appErr.Code)
		mockRepo.AssertExpectations(t)
	})
}

func TestCreateProduct(t *testing.T) {
	// Arrange
	mockRepo := new(mocks.ProductRepository)
	catalogService := service.NewCatalogService(mockRepo, nil)
	ctx := t.Context()

	req := &models.CreateProductRequest{
		Name:        "Desk <b>Organizer</b>",
		Description: "Keeps pens in place",
		Price:       250.0,
		Category:    "office",
		Stock:       8,
	}

	t.Run("Success - Markup Stripped", func(t *testing.T) {
		// Arrange
		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Product) bool {
			return p.Name == "Desk Organizer" && p.Price == req.Price && p.Stock == req.Stock
		})).Return(nil).Once()

		// Act
		product, err := catalogService.CreateProduct(ctx, req)

		// Assert
		assert.NoError(t, err)
		assert.NotNil(t, product)
		assert.Equal(t, "Desk Organizer", product.Name)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - Gateway Error", func(t *testing.T) {
		// Arrange
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Product")).
			Return(errors.New("insert failed")).Once()

		// Act
		product, err := catalogService.CreateProduct(ctx, req)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, product)

		var appErr *appErrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeGatewayError, appErr.Code)
		mockRepo.AssertExpectations(t)
	})
}

func TestUpdateProduct(t *testing.T) {
	// Arrange
	mockRepo := new(mocks.ProductRepository)
	catalogService := service.NewCatalogService(mockRepo, nil)
	ctx := t.Context()
	testID := uuid.New()

	newName := "New Name"
	newPrice := 60.0
	req := &models.UpdateProductRequest{
		Name:  &newName,
		Price: &newPrice,
	}

	t.Run("Success - Partial Update", func(t *testing.T) {
		// Arrange
		existing := &models.Product{
			ID:          testID,
			Name:        "Old Name",
			Description: "Old Description",
			Price:       50.0,
			Stock:       20,
		}

		mockRepo.On("GetByID", mock.Anything, testID).Return(existing, nil).Once()
		mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *models.Product) bool {
			return p.ID == testID && p.Name == newName && p.Price == newPrice && p.Description == "Old Description"
		})).Return(nil).Once()

		// Act
		updated, err := catalogService.UpdateProduct(ctx, testID, req)

		// Assert
		assert.NoError(t, err)
		assert.NotNil(t, updated)
		assert.Equal(t, newName, updated.Name)
		assert.Equal(t, newPrice, updated.Price)
		assert.Equal(t, 20, updated.Stock)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - Product Not Found", func(t *testing.T) {
		// Arrange
		mockRepo.On("GetByID", mock.Anything, testID).
			Return(nil, fmt.Errorf("failed to get product: %w", sql.ErrNoRows)).Once()

		// Act
		updated, err := catalogService.UpdateProduct(ctx, testID, req)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, updated)

		var appErr *appErrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		mockRepo.AssertNotCalled(t, "Update")
	})
}

func TestDeleteProduct(t *testing.T) {
	// Arrange
	mockRepo := new(mocks.ProductRepository)
	catalogService := service.NewCatalogService(mockRepo, nil)
	ctx := t.Context()
	testID := uuid.New()

	t.Run("Failure - Not Confirmed", func(t *testing.T) {
		// Act
		err := catalogService.DeleteProduct(ctx, testID, false)

		// Assert
		assert.Error(t, err)

		var appErr *appErrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)
		mockRepo.AssertNotCalled(t, "Delete")
	})

	t.Run("Success - Confirmed Delete", func(t *testing.T) {
		// Arrange
		mockRepo.On("Delete", mock.Anything, testID).Return(true, nil).Once()

		// Act
		err := catalogService.DeleteProduct(ctx, testID, true)

		// Assert
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - Product Not Found", func(t *testing.T) {
		// Arrange
		mockRepo.On("Delete", mock.Anything, testID).Return(false, nil).Once()

		// Act
		err := catalogService.DeleteProduct(ctx, testID, true)

		// Assert
		assert.Error(t, err)

		var appErr *appErrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		mockRepo.AssertExpectations(t)
	})
}
