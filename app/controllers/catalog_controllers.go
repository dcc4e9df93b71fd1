package controllers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/huyvng/storedash/app/services"
	"github.com/huyvng/storedash/pkg/bind"
	"github.com/huyvng/storedash/pkg/paginate"
	"github.com/huyvng/storedash/pkg/response"
)

// CatalogController serves one of the name+description resources. The
// label names the resource in messages ("Brand"); the key is the plural
// JSON key in list responses ("brands").
type CatalogController[T any] struct {
	service *services.CatalogService[T]
	label   string
	key     string
}

func NewCatalogController[T any](service *services.CatalogService[T], label, key string) *CatalogController[T] {
	return &CatalogController[T]{service: service, label: label, key: key}
}

func (c *CatalogController[T]) List(w http.ResponseWriter, r *http.Request) {
	page := paginate.FromRequest(r)

	items, total, err := c.service.List(r.Context(), r.URL.Query().Get("name"), page.Skip(), int64(page.Limit))
	if err != nil {
		serviceError(w, err)
		return
	}
	response.Page(w, c.key, items, total, page.Page, page.Limit, page.Pages(total))
}

func (c *CatalogController[T]) Get(w http.ResponseWriter, r *http.Request) {
	item, err := c.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		c.catalogError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

type catalogRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"nullable"`
}

func (c *CatalogController[T]) Create(w http.ResponseWriter, r *http.Request) {
	var body catalogRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	item, err := c.service.Create(r.Context(), body.Name, body.Description)
	if err != nil {
		c.catalogError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, item)
}

type catalogUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (c *CatalogController[T]) Update(w http.ResponseWriter, r *http.Request) {
	var body catalogUpdateRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	item, err := c.service.Update(r.Context(), chi.URLParam(r, "id"), body.Name, body.Description)
	if err != nil {
		c.catalogError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

func (c *CatalogController[T]) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		c.catalogError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"message": c.label + " deleted"})
}

// catalogError prefixes generic catalog errors with the resource label.
func (c *CatalogController[T]) catalogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrDuplicateName):
		response.Error(w, http.StatusBadRequest, c.label+" name already exists")
	case errors.Is(err, services.ErrNotFound):
		response.NotFound(w, c.label+" not found")
	default:
		serviceError(w, err)
	}
}
