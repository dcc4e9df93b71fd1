package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/huyvng/storedash/app/services"
	"github.com/huyvng/storedash/pkg/bind"
	"github.com/huyvng/storedash/pkg/paginate"
	"github.com/huyvng/storedash/pkg/response"
)

type OrderController struct {
	service *services.OrderService
}

func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{service: service}
}

const dateLayout = "2006-01-02"

// parseDate reads a YYYY-MM-DD query value. endOfDay pushes the bound to
// the last instant of that day so endDate stays inclusive.
func parseDate(raw string, endOfDay bool) *time.Time {
	if raw == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t
}

func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	page := paginate.FromRequest(r)
	q := r.URL.Query()

	query := services.OrderListQuery{
		UserName:      q.Get("userName"),
		PaymentMethod: q.Get("paymentMethod"),
		Status:        q.Get("status"),
		StartDate:     parseDate(q.Get("startDate"), false),
		EndDate:       parseDate(q.Get("endDate"), true),
	}

	orders, total, err := c.service.List(r.Context(), query, page.Skip(), int64(page.Limit))
	if err != nil {
		serviceError(w, err)
		return
	}
	response.Page(w, "orders", orders, total, page.Page, page.Limit, page.Pages(total))
}

type orderItemRequest struct {
	Product string `json:"product" validate:"required"`
	Qty     int    `json:"qty" validate:"required,gte=1"`
}

type createOrderRequest struct {
	User          string             `json:"user" validate:"required"`
	OrderItems    []orderItemRequest `json:"orderItems" validate:"required"`
	TotalPrice    float64            `json:"totalPrice" validate:"required,gte=0"`
	PaymentMethod string             `json:"paymentMethod" validate:"required"`
	Status        string             `json:"status" validate:"nullable"`
}

func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	var body createOrderRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	items := make([]services.OrderItemInput, len(body.OrderItems))
	for i, item := range body.OrderItems {
		items[i] = services.OrderItemInput{ProductID: item.Product, Qty: item.Qty}
	}

	order, err := c.service.Create(r.Context(), services.CreateOrderInput{
		UserID:        body.User,
		Items:         items,
		TotalPrice:    body.TotalPrice,
		PaymentMethod: body.PaymentMethod,
		Status:        body.Status,
	})
	if err != nil {
		serviceError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, order)
}

type updateOrderRequest struct {
	User          *string  `json:"user"`
	TotalPrice    *float64 `json:"totalPrice" validate:"nullable,gte=0"`
	PaymentMethod *string  `json:"paymentMethod"`
	Status        *string  `json:"status"`
}

func (c *OrderController) Update(w http.ResponseWriter, r *http.Request) {
	var body updateOrderRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.service.Update(r.Context(), chi.URLParam(r, "id"), services.UpdateOrderInput{
		UserID:        body.User,
		TotalPrice:    body.TotalPrice,
		PaymentMethod: body.PaymentMethod,
		Status:        body.Status,
	})
	if err != nil {
		serviceError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, order)
}

func (c *OrderController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		serviceError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"message": "Order deleted"})
}

func (c *OrderController) RevenueTotal(w http.ResponseWriter, r *http.Request) {
	total, err := c.service.RevenueTotal(r.Context())
	if err != nil {
		serviceError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, total)
}

func (c *OrderController) RevenueDaily(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rows, err := c.service.RevenueDaily(r.Context(),
		parseDate(q.Get("startDate"), false),
		parseDate(q.Get("endDate"), true))
	if err != nil {
		serviceError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, rows)
}

func (c *OrderController) RevenueMonthly(w http.ResponseWriter, r *http.Request) {
	rows, err := c.service.RevenueMonthly(r.Context())
	if err != nil {
		serviceError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, rows)
}
