package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	. "todohub/internal/adapter/http/helper"
	. "todohub/internal/adapter/http/validation"
	"todohub/internal/core/model/request"
	"todohub/internal/core/model/response"
	"todohub/internal/core/port"
	. "todohub/pkg/auth"
)

type TagHandler struct {
	svc port.TagService
}

func NewTagHandler(svc port.TagService) *TagHandler {
	return &TagHandler{svc: svc}
}

func (h *TagHandler) ListTags(c *gin.Context) {
	userID, ok := CurrentUserID(c)

	if !ok {
		SendUnauthorizedError(c, "Unauthorized request")
		return
	}

	tags, err := h.svc.List(c.Request.Context(), userID)

	if err != nil {
		SendDomainError(c, err)
		return
	}

	views := make([]response.TagView, 0, len(tags))

	for _, tag := range tags {
		views = append(views, response.NewTagView(tag))
	}

	SendSuccess(c, http.StatusOK, views)
}

func (h *TagHandler) CreateTag(c *gin.Context) {
	userID, ok := CurrentUserID(c)

	if !ok {
		SendUnauthorizedError(c, "Unauthorized request")
		return
	}

	var req request.CreateTagRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		SendBadRequestError(c, "request", "Invalid request body")
		return
	}

	if err := Validator.Struct(req); err != nil {
		SendValidationError(c, err)
		return
	}

	tag, err := h.svc.Create(c.Request.Context(), userID, req.Name)

	if err != nil {
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusCreated, response.NewTagView(tag))
}

func (h *TagHandler) GetTag(c *gin.Context) {
	userID, ok := CurrentUserID(c)

	if !ok {
		SendUnauthorizedError(c, "Unauthorized request")
		return
	}

	id, err := uuid.Parse(c.Param("id"))

	if err != nil {
		SendBadRequestError(c, "id", "Invalid tag id")
		return
	}

	tag, err := h.svc.Get(c.Request.Context(), userID, id)

	if err != nil {
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, response.NewTagView(tag))
}

func (h *TagHandler) DeleteTag(c *gin.Context) {
	userID, ok := CurrentUserID(c)

	if !ok {
		SendUnauthorizedError(c, "Unauthorized request")
		return
	}

	id, err := uuid.Parse(c.Param("id"))

	if err != nil {
		SendBadRequestError(c, "id", "Invalid tag id")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), userID, id); err != nil {
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, nil, "Tag deleted successfully")
}

func (h *TagHandler) AssignTag(c *gin.Context) {
	userID, ok := CurrentUserID(c)

	if !ok {
		SendUnauthorizedError(c, "Unauthorized request")
		return
	}

	todoID, tagID, ok := h.pathIDs(c)

	if !ok {
		return
	}

	if err := h.svc.Assign(c.Request.Context(), userID, todoID, tagID); err != nil {
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, nil, "Tag assigned successfully")
}

func (h *TagHandler) RemoveTag(c *gin.Context) {
	userID, ok := CurrentUserID(c)

	if !ok {
		SendUnauthorizedError(c, "Unauthorized request")
		return
	}

	todoID, tagID, ok := h.pathIDs(c)

	if !ok {
		return
	}

	if err := h.svc.Remove(c.Request.Context(), userID, todoID, tagID); err != nil {
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, nil, "Tag removed successfully")
}

func (h *TagHandler) pathIDs(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	todoID, err := uuid.Parse(c.Param("id"))

	if err != nil {
		SendBadRequestError(c, "id", "Invalid todo id")
		return uuid.Nil, uuid.Nil, false
	}

	tagID, err := uuid.Parse(c.Param("tag_id"))

	if err != nil {
		SendBadRequestError(c, "tag_id", "Invalid tag id")
		return uuid.Nil, uuid.Nil, false
	}

	return todoID, tagID, true
}
