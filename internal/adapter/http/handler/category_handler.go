package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	. "todohub/internal/adapter/http/helper"
	. "todohub/internal/adapter/http/validation"
	"todohub/internal/core/domain"
	"todohub/internal/core/model/request"
	"todohub/internal/core/model/response"
	"todohub/internal/core/port"
	. "todohub/pkg/auth"
)

type CategoryHandler struct {
	svc port.CategoryService
}

func NewCategoryHandler(svc port.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	userID, ok := CurrentUserID(c)

	if !ok {
		SendUnauthorizedError(c, "Unauthorized request")
		return
	}

	categories, err := h.svc.List(c.Request.Context(), userID)

	if err != nil {
		SendDomainError(c, err)
		return
	}

	views := make([]response.CategoryView, 0, len(categories))

	for _, category := range categories {
		views = append(views, response.NewCategoryView(category))
	}

	SendSuccess(c, http.StatusOK, views)
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	userID, ok := CurrentUserID(c)

	if !ok {
		SendUnauthorizedError(c, "Unauthorized request")
		return
	}

	id, err := uuid.Parse(c.Param("id"))

	if err != nil {
		SendBadRequestError(c, "id", "Invalid category id")
		return
	}

	category, err := h.svc.Get(c.Request.Context(), userID, id)

	if err != nil {
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, response.NewCategoryView(category))
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	userID, ok := CurrentUserID(c)

	if !ok {
		SendUnauthorizedError(c, "Unauthorized request")
		return
	}

	var req request.CreateCategoryRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		SendBadRequestError(c, "request", "Invalid request body")
		return
	}

	if err := Validator.Struct(req); err != nil {
		SendValidationError(c, err)
		return
	}

	category, err := h.svc.Create(c.Request.Context(), userID, domain.Category{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})

	if err != nil {
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusCreated, response.NewCategoryView(category))
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	userID, ok := CurrentUserID(c)

	if !ok {
		SendUnauthorizedError(c, "Unauthorized request")
		return
	}

	id, err := uuid.Parse(c.Param("id"))

	if err != nil {
		SendBadRequestError(c, "id", "Invalid category id")
		return
	}

	var req request.UpdateCategoryRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		SendBadRequestError(c, "request", "Invalid request body")
		return
	}

	if err := Validator.Struct(req); err != nil {
		SendValidationError(c, err)
		return
	}

	category, err := h.svc.Update(c.Request.Context(), userID, id, req.Name, req.Description, req.Color)

	if err != nil {
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, response.NewCategoryView(category))
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	userID, ok := CurrentUserID(c)

	if !ok {
		SendUnauthorizedError(c, "Unauthorized request")
		return
	}

	id, err := uuid.Parse(c.Param("id"))

	if err != nil {
		SendBadRequestError(c, "id", "Invalid category id")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), userID, id); err != nil {
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, nil, "Category deleted successfully")
}
