package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/mmbm-clothing/storefront/internal/catalog"
	"github.com/mmbm-clothing/storefront/internal/imaging"
	"github.com/mmbm-clothing/storefront/internal/order"
	"github.com/mmbm-clothing/storefront/internal/selection"
)

// ValidationErrorResponse carries per-field validation failures back to the
// client.
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
	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrEmptyCart):
		return http.StatusConflict
	case errors.Is(err, order.ErrInvalidForm):
		return http.StatusBadRequest
	case errors.Is(err, selection.ErrUnknownOption):
		return http.StatusBadRequest
	case errors.Is(err, imaging.ErrUnsupportedImage):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, imaging.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func formatValidationErrors(validationErrors validator.ValidationErrors) map[string]string {
	details := make(map[string]string, len(validationErrors))
	for _, fieldErr := range validationErrors {
		switch fieldErr.Tag() {
		case "required", "required_if":
			details[fieldErr.Field()] = "This field is required"
		case "email":
			details[fieldErr.Field()] = "Must be a valid email address"
		case "oneof":
			details[fieldErr.Field()] = fmt.Sprintf("Must be one of: %s", fieldErr.Param())
		default:
			details[fieldErr.Field()] = fmt.Sprintf("Failed on the %q rule", fieldErr.Tag())
		}
	}
	return details
}
