package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/portfolio-generator/internal/analysis"
	"github.com/jonathan/portfolio-generator/internal/cvextract"
	"github.com/jonathan/portfolio-generator/internal/editing"
	"github.com/jonathan/portfolio-generator/internal/extraction"
	"github.com/jonathan/portfolio-generator/internal/payment"
	"github.com/jonathan/portfolio-generator/internal/pipeline"
	"github.com/jonathan/portfolio-generator/internal/publish"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", &ErrValidation{Field: "userId", Message: "required"}, http.StatusBadRequest},
		{"not found", &ErrNotFound{UserID: "jane"}, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("loading: %w", &ErrNotFound{UserID: "jane"}), http.StatusNotFound},
		{"upload", &cvextract.UploadError{Message: cvextract.MsgTooLarge}, http.StatusBadRequest},
		{"no sources", extraction.ErrNoSources, http.StatusBadRequest},
		{"no input", pipeline.ErrNoInput, http.StatusBadRequest},
		{"publish missing", publish.ErrMissingData, http.StatusBadRequest},
		{"payment missing", payment.ErrMissingData, http.StatusBadRequest},
		{"no session", payment.ErrMissingSession, http.StatusBadRequest},
		{"no url", analysis.ErrNoURL, http.StatusBadRequest},
		{"edit item", &editing.ValidationError{Field: "Company", Tag: "required"}, http.StatusBadRequest},
		{"edit invalid item", fmt.Errorf("%w: add requires an item", editing.ErrInvalidItem), http.StatusBadRequest},
		{"edit missing id", fmt.Errorf("%w: x", editing.ErrNotFound), http.StatusNotFound},
		{"session mismatch", payment.ErrSessionMismatch, http.StatusForbidden},
		{"expired token", fmt.Errorf("token expired: %w", jwt.ErrTokenExpired), http.StatusUnauthorized},
		{"llm failure", &extraction.APICallError{Message: "boom"}, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestErrValidation_Error(t *testing.T) {
	assert.Equal(t, "Missing user ID", (&ErrValidation{Message: "Missing user ID"}).Error())
	assert.Equal(t, "validation error: cv - invalid file", (&ErrValidation{Field: "cv", Message: "invalid file"}).Error())
}
