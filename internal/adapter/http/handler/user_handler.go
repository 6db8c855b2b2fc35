package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	. "todohub/internal/adapter/http/helper"
	. "todohub/internal/adapter/http/validation"
	"todohub/internal/core/model/request"
	"todohub/internal/core/model/response"
	"todohub/internal/core/port"
	. "todohub/pkg/auth"
)

type UserHandler struct {
	svc port.UserService
}

func NewUserHandler(svc port.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := CurrentUserID(c)

	if !ok {
		SendUnauthorizedError(c, "Unauthorized request")
		return
	}

	user, err := h.svc.Get(c.Request.Context(), userID)

	if err != nil {
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, response.NewUserView(user))
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := CurrentUserID(c)

	if !ok {
		SendUnauthorizedError(c, "Unauthorized request")
		return
	}

	var req request.UpdateUserRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		SendBadRequestError(c, "request", "Invalid request body")
		return
	}

	if err := Validator.Struct(req); err != nil {
		SendValidationError(c, err)
		return
	}

	user, err := h.svc.Update(c.Request.Context(), userID, &req)

	if err != nil {
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, response.NewUserView(user))
}

func (h *UserHandler) DeleteProfile(c *gin.Context) {
	userID, ok := CurrentUserID(c)

	if !ok {
		SendUnauthorizedError(c, "Unauthorized request")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), userID); err != nil {
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, nil, "Account deleted successfully")
}
