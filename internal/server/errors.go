// Package server provides the HTTP REST API for the skill-gap analyzer.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/skillgap-analyzer/internal/analyzer"
	"github.com/jonathan/skillgap-analyzer/internal/store"
)

// ErrValidation indicates request validation failure at the HTTP boundary.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	var (
		validation   *ErrValidation
		reqRejection *analyzer.ValidationError
		notFound     *analyzer.NotFoundError
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &reqRejection):
		return http.StatusBadRequest
	case errors.As(err, &notFound), errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
