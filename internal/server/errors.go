package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jonathan/portfolio-generator/internal/analysis"
	"github.com/jonathan/portfolio-generator/internal/cvextract"
	"github.com/jonathan/portfolio-generator/internal/editing"
	"github.com/jonathan/portfolio-generator/internal/extraction"
	"github.com/jonathan/portfolio-generator/internal/payment"
	"github.com/jonathan/portfolio-generator/internal/pipeline"
	"github.com/jonathan/portfolio-generator/internal/publish"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNotFound indicates no portfolio is stored under a user id.
type ErrNotFound struct {
	UserID string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("portfolio not found: %s", e.UserID)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validation *ErrValidation
		notFound   *ErrNotFound
		upload     *cvextract.UploadError
		editErr    *editing.ValidationError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validation), errors.As(err, &upload), errors.As(err, &editErr),
		errors.Is(err, extraction.ErrNoSources),
		errors.Is(err, pipeline.ErrNoInput),
		errors.Is(err, publish.ErrMissingData),
		errors.Is(err, payment.ErrMissingData),
		errors.Is(err, payment.ErrMissingSession),
		errors.Is(err, analysis.ErrNoURL),
		errors.Is(err, editing.ErrUnknownAction),
		errors.Is(err, editing.ErrInvalidItem),
		errors.Is(err, editing.ErrNoEditSession):
		return http.StatusBadRequest
	case errors.As(err, &notFound), errors.Is(err, editing.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, payment.ErrSessionMismatch):
		return http.StatusForbidden
	case errors.Is(err, jwt.ErrTokenExpired),
		errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable),
		errors.Is(err, jwt.ErrTokenNotValidYet):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
