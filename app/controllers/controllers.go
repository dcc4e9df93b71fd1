// Package controllers translates HTTP requests into service calls and
// service results into the API's wire shapes.
package controllers

import (
	"errors"
	"net/http"

	"github.com/huyvng/storedash/app/services"
	"github.com/huyvng/storedash/pkg/response"
)

// serviceError maps service-layer errors onto the HTTP error taxonomy.
func serviceError(w http.ResponseWriter, err error) {
	var stockErr *services.InsufficientStockError
	var productErr *services.ProductNotFoundError

	switch {
	case errors.As(err, &stockErr):
		response.Error(w, http.StatusBadRequest, stockErr.Error())
	case errors.As(err, &productErr):
		response.NotFound(w, productErr.Error())
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrDuplicateName):
		response.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrShippingNotFound),
		errors.Is(err, services.ErrNotFound):
		response.NotFound(w, err.Error())
	default:
		response.ServerError(w, "Internal server error", err)
	}
}
