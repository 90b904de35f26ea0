package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/career-console/internal/assemble"
	"github.com/jonathan/career-console/internal/draft"
	"github.com/jonathan/career-console/internal/schemas"
	"github.com/jonathan/career-console/internal/store"
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *store.ValidationError
		notFoundErr   *store.NotFoundError
		schemaErr     *schemas.ValidationError
		bindingErr    *assemble.MissingBindingError
		templateErr   *assemble.TemplateError
		externalErr   *draft.ExternalError
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &schemaErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &bindingErr), errors.As(err, &templateErr):
		return http.StatusInternalServerError
	case errors.As(err, &externalErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
