package controllers

import (
	"net/http"

	"github.com/huyvng/storedash/app/services"
	"github.com/huyvng/storedash/pkg/bind"
	"github.com/huyvng/storedash/pkg/response"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := c.service.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		serviceError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"user": map[string]string{
			"id":    result.User.ID.Hex(),
			"name":  result.User.Name,
			"email": result.User.Email,
			"role":  result.User.Role,
		},
		"token": result.Token,
	})
}
