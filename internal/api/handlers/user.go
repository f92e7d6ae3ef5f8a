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

type UserHandler struct {
	userService service.UserService
	carts       *cart.Store
	validator   *validator.Validate
}

func NewUserHandler(userService service.UserService, carts *cart.Store) *UserHandler {
	return &UserHandler{userService: userService, carts: carts, validator: validator.New()}
}

func (h *UserHandler) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.RegisterRequest

		if !parseAndValidate(w, r, h.validator, &req) {
			return
		}

		user, err := h.userService.Register(r.Context(), &req)

		if err != nil {
			logger.Error("User registration failed", slog.String("email", req.Email), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("User registered", slog.String("userId", user.ID.String()))
		response.Success(w, http.StatusCreated, user)
	}
}

func (h *UserHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.LoginRequest

		if !parseAndValidate(w, r, h.validator, &req) {
			return
		}

		resp, err := h.userService.Login(r.Context(), &req)

		if err != nil {
			logger.Error("Login failed", slog.String("email", req.Email), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		// Failed attempts are part of the response contract: the client
		// shows remaining tries or a retry-after hint.
		if !resp.Success {

			status := http.StatusUnauthorized
			if resp.RetryAfter > 0 {
				status = http.StatusTooManyRequests
			}

			logger.Warn("Login rejected", slog.String("email", req.Email), slog.Int("status", status))
			response.WriteJson(w, status, resp)
			return
		}

		logger.Info("User logged in", slog.String("email", req.Email))
		response.Success(w, http.StatusOK, resp)
	}
}

func (h *UserHandler) Profile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, apperrors.UnauthorizedError("Authentication required"))
			return
		}

		resp, err := h.userService.Profile(r.Context(), claims.UserID)

		if err != nil {
			logger.Warn("Profile fetch failed", slog.String("userId", claims.UserID.String()), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, resp)
	}
}

// Logout drops the server-side cart for the session. Tokens are stateless,
// so the client discards its copy and the token simply ages out.
func (h *UserHandler) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, apperrors.UnauthorizedError("Authentication required"))
			return
		}

		h.carts.Drop(claims.UserID)

		logger.Info("User logged out", slog.String("userId", claims.UserID.String()))
		response.Success(w, http.StatusOK, map[string]string{"message": "Signed out"})
	}
}
