package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/huyvng/storedash/app/services"
	"github.com/huyvng/storedash/pkg/bind"
	"github.com/huyvng/storedash/pkg/paginate"
	"github.com/huyvng/storedash/pkg/response"
)

type UserController struct {
	service *services.UserService
}

func NewUserController(service *services.UserService) *UserController {
	return &UserController{service: service}
}

func (c *UserController) List(w http.ResponseWriter, r *http.Request) {
	page := paginate.FromRequest(r)
	q := r.URL.Query()

	users, total, err := c.service.List(r.Context(), q.Get("name"), q.Get("email"), page)
	if err != nil {
		serviceError(w, err)
		return
	}
	response.Page(w, "users", users, total, page.Page, page.Limit, page.Pages(total))
}

type createUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone" validate:"nullable"`
	Role     string `json:"role" validate:"nullable,in=admin,user"`
}

func (c *UserController) Create(w http.ResponseWriter, r *http.Request) {
	var body createUserRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, err := c.service.Create(r.Context(), services.CreateUserInput{
		Name:     body.Name,
		Email:    body.Email,
		Password: body.Password,
		Phone:    body.Phone,
		Role:     body.Role,
	})
	if err != nil {
		serviceError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, user)
}

type updateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" validate:"nullable,email"`
	Password *string `json:"password" validate:"nullable,min=6"`
	Phone    *string `json:"phone"`
	Role     *string `json:"role" validate:"nullable,in=admin,user"`
}

func (c *UserController) Update(w http.ResponseWriter, r *http.Request) {
	var body updateUserRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, err := c.service.Update(r.Context(), chi.URLParam(r, "id"), services.UpdateUserInput{
		Name:     body.Name,
		Email:    body.Email,
		Password: body.Password,
		Phone:    body.Phone,
		Role:     body.Role,
	})
	if err != nil {
		serviceError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, user)
}

func (c *UserController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		serviceError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
}
