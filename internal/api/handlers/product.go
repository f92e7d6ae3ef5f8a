package handlers

import (
	"log/slog"
	"net/http"

	"github.com/dlcastillo/storefront/internal/api/middleware"
	"github.com/dlcastillo/storefront/internal/models"
	service "github.com/dlcastillo/storefront/internal/services"
	"github.com/dlcastillo/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type ProductHandler struct {
	catalogService service.CatalogService
	validator      *validator.Validate
}

func NewProductHandler(catalogService service.CatalogService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService, validator: validator.New()}
}

// for eg: GET /api/v1/products?category=stationery
func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		category := r.URL.Query().Get("category")

		products, err := h.catalogService.ListProducts(r.Context(), category)

		if err != nil {
			logger.Error("Failed to fetch products", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, products)
	}
}

func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, ok := parseIDParam(w, r, logger, "id")
		if !ok {
			return
		}

		product, err := h.catalogService.GetProduct(r.Context(), id)

		if err != nil {
			logger.Warn("Product lookup failed", slog.String("productId", id.String()), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

func (h *ProductHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateProductRequest

		if !parseAndValidate(w, r, h.validator, &req) {
			return
		}

		product, err := h.catalogService.CreateProduct(r.Context(), &req)

		if err != nil {
			logger.Error("Product creation failed", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Product created", slog.String("productId", product.ID.String()))
		response.Success(w, http.StatusCreated, product)
	}
}

func (h *ProductHandler) UpdateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, ok := parseIDParam(w, r, logger, "id")
		if !ok {
			return
		}

		var req models.UpdateProductRequest

		if !parseAndValidate(w, r, h.validator, &req) {
			return
		}

		product, err := h.catalogService.UpdateProduct(r.Context(), id, &req)

		if err != nil {
			logger.Error("Product update failed", slog.String("productId", id.String()), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Product updated", slog.String("productId", product.ID.String()))
		response.Success(w, http.StatusOK, product)
	}
}

// DeleteProduct requires ?confirm=true; a bare delete is rejected so a
// misfired client call cannot drop catalog rows.
func (h *ProductHandler) DeleteProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, ok := parseIDParam(w, r, logger, "id")
		if !ok {
			return
		}

		confirmed := r.URL.Query().Get("confirm") == "true"

		if err := h.catalogService.DeleteProduct(r.Context(), id, confirmed); err != nil {
			logger.Warn("Product deletion failed", slog.String("productId", id.String()), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Product deleted", slog.String("productId", id.String()))
		response.Success(w, http.StatusOK, map[string]string{"message": "Product deleted"})
	}
}
