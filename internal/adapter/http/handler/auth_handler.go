package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	. "todohub/internal/adapter/http/helper"
	. "todohub/internal/adapter/http/validation"
	"todohub/internal/core/domain"
	"todohub/internal/core/model/request"
	"todohub/internal/core/model/response"
	"todohub/internal/core/port"
)

type AuthHandler struct {
	svc port.AuthService
}

func NewAuthHandler(svc port.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	ctx := c.Request.Context()

	var req request.SignUpRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		SendBadRequestError(c, "request", "Invalid request body")
		return
	}

	if err := Validator.Struct(req); err != nil {
		SendValidationError(c, err)
		return
	}

	user, err := h.svc.Register(ctx, &req)

	if err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			SendConflictError(c, err.Error())
			return
		}

		SendInternalError(c, "Error creating account")
		return
	}

	SendSuccess(c, http.StatusCreated, response.NewUserView(user))
}

func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req request.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		SendBadRequestError(c, "request", "Invalid request body")
		return
	}

	if err := Validator.Struct(req); err != nil {
		SendValidationError(c, err)
		return
	}

	user, token, err := h.svc.Authenticate(ctx, &req)

	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) || errors.Is(err, domain.ErrAccountDisabled) {
			SendUnauthorizedError(c, err.Error())
			return
		}

		SendInternalError(c, "Error authenticating")
		return
	}

	SendSuccess(c, http.StatusOK, response.AuthResponse{
		User:  response.NewUserView(user),
		Token: token,
	})
}
