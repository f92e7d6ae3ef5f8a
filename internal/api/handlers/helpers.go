package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/dlcastillo/storefront/internal/errors"
	"github.com/dlcastillo/storefront/internal/utils"
	"github.com/dlcastillo/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// parseAndValidate decodes the JSON body into dest and runs struct
// validation, writing the error response itself on failure.
func parseAndValidate(w http.ResponseWriter, r *http.Request, validate *validator.Validate, dest any) bool {

	if err := utils.DecodeJSONBody(r, dest); err != nil {
		response.Error(w, apperrors.BadRequestError("Invalid request body").WithError(err))
		return false
	}

	if err := utils.ValidateStruct(validate, dest); err != nil {

		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			response.ValidationError(w, validationErrs)
			return false
		}

		response.Error(w, apperrors.ValidationError("Invalid input").WithError(err))
		return false
	}

	return true
}

func parseIDParam(w http.ResponseWriter, r *http.Request, logger *slog.Logger, name string) (uuid.UUID, bool) {

	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		logger.Warn("Invalid id in path", slog.String("param", name), slog.String("error", err.Error()))
		response.Error(w, apperrors.BadRequestError("Invalid id format"))
		return uuid.Nil, false
	}

	return id, true
}
