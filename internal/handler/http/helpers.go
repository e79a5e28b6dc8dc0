package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/tai160903/viet-coffee-server/internal/auth"
	"github.com/tai160903/viet-coffee-server/internal/checkout"
	"github.com/tai160903/viet-coffee-server/internal/order"
	"github.com/tai160903/viet-coffee-server/internal/product"
)

// ValidationErrorResponse carries the per-field messages a form renders
// inline next to the offending inputs.
type ValidationErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details"`
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		log.Error().Err(err).Msg("Failed to write JSON response")
	}
}

func mapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, auth.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, auth.ErrEmailExists):
		return http.StatusConflict
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, order.ErrInvalidStatusTransition):
		return http.StatusUnprocessableEntity
	case errors.Is(err, order.ErrNoItems),
		errors.Is(err, checkout.ErrEmptyOrder):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func formatValidationErrors(validationErrors validator.ValidationErrors) map[string]string {
	details := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		switch fe.Tag() {
		case "required":
			details[fe.Field()] = "this field is required"
		case "email":
			details[fe.Field()] = "must be a valid email address"
		case "min":
			details[fe.Field()] = "must be at least " + fe.Param() + " characters"
		case "oneof":
			details[fe.Field()] = "must be one of: " + fe.Param()
		default:
			details[fe.Field()] = "is not valid"
		}
	}

	return details
}

// decodeStrict decodes a JSON body rejecting unknown fields, responding with
// 400 on failure. Returns false when the request has already been answered.
func decodeStrict(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		log.Error().Err(err).Msg("Failed to decode request body")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return false
	}

	return true
}

// validateStruct runs validator tags over a decoded payload, responding with
// the inline field errors on failure. Returns false when already answered.
func validateStruct(w http.ResponseWriter, validate *validator.Validate, payload interface{}) bool {
	err := validate.Struct(payload)
	if err == nil {
		return true
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		respondWithJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:   "Validation failed",
			Details: formatValidationErrors(validationErrors),
		})
	} else {
		log.Error().Err(err).Msg("Unexpected error type during validation")
		respondWithError(w, http.StatusInternalServerError, "Internal validation error")
	}

	return false
}
