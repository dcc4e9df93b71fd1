package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/huyvng/storedash/app/repositories"
	"github.com/huyvng/storedash/app/services"
	"github.com/huyvng/storedash/pkg/bind"
	"github.com/huyvng/storedash/pkg/paginate"
	"github.com/huyvng/storedash/pkg/response"
)

type ShippingController struct {
	service *services.ShippingService
}

func NewShippingController(service *services.ShippingService) *ShippingController {
	return &ShippingController{service: service}
}

func (c *ShippingController) List(w http.ResponseWriter, r *http.Request) {
	page := paginate.FromRequest(r)
	q := r.URL.Query()

	filter := repositories.ShippingFilter{
		ReceiverName: q.Get("receiverName"),
		Address:      q.Get("address"),
		Status:       q.Get("status"),
	}

	shippings, total, err := c.service.List(r.Context(), filter, page.Skip(), int64(page.Limit))
	if err != nil {
		serviceError(w, err)
		return
	}
	response.Page(w, "shippings", shippings, total, page.Page, page.Limit, page.Pages(total))
}

func (c *ShippingController) Get(w http.ResponseWriter, r *http.Request) {
	shipping, err := c.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		serviceError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, shipping)
}

type createShippingRequest struct {
	Order        string `json:"order" validate:"required"`
	ReceiverName string `json:"receiverName" validate:"nullable"`
	Address      string `json:"address" validate:"nullable"`
	City         string `json:"city" validate:"nullable"`
	PostalCode   string `json:"postalCode" validate:"nullable"`
	Country      string `json:"country" validate:"nullable"`
	Status       string `json:"status" validate:"nullable,in=Pending,Shipping,Delivered"`
}

func (c *ShippingController) Create(w http.ResponseWriter, r *http.Request) {
	var body createShippingRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	shipping, err := c.service.Create(r.Context(), services.CreateShippingInput{
		OrderID:      body.Order,
		ReceiverName: body.ReceiverName,
		Address:      body.Address,
		City:         body.City,
		PostalCode:   body.PostalCode,
		Country:      body.Country,
		Status:       body.Status,
	})
	if err != nil {
		serviceError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, shipping)
}

type updateShippingRequest struct {
	ReceiverName *string `json:"receiverName"`
	Address      *string `json:"address"`
	City         *string `json:"city"`
	PostalCode   *string `json:"postalCode"`
	Country      *string `json:"country"`
	Status       *string `json:"status" validate:"nullable,in=Pending,Shipping,Delivered"`
}

func (c *ShippingController) Update(w http.ResponseWriter, r *http.Request) {
	var body updateShippingRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	shipping, err := c.service.Update(r.Context(), chi.URLParam(r, "id"), services.UpdateShippingInput{
		ReceiverName: body.ReceiverName,
		Address:      body.Address,
		City:         body.City,
		PostalCode:   body.PostalCode,
		Country:      body.Country,
		Status:       body.Status,
	})
	if err != nil {
		serviceError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, shipping)
}

func (c *ShippingController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		serviceError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"message": "Shipping deleted"})
}
