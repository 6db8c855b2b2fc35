package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	. "todohub/internal/adapter/http/helper"
	. "todohub/internal/adapter/http/validation"
	"todohub/internal/core/domain"
	"todohub/internal/core/model/request"
	"todohub/internal/core/port"
	"todohub/internal/core/telemetry"
	. "todohub/pkg/auth"
	. "todohub/pkg/tracing"
)

type TodoHandler struct {
	svc     port.TodoService
	metrics *telemetry.AppMetrics
}

func NewTodoHandler(svc port.TodoService, metrics *telemetry.AppMetrics) *TodoHandler {
	return &TodoHandler{
		svc:     svc,
		metrics: metrics,
	}
}

func (h *TodoHandler) ListTodos(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.todo.ListTodos", []attribute.KeyValue{
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	})

	defer span.End()

	userID, ok := CurrentUserID(c)

	if !ok {
		SendUnauthorizedError(c, "Unauthorized request")
		return
	}

	filter, err := parseListQuery(c)

	if err != nil {
		SendBadRequestError(c, "query", err.Error())
		return
	}

	data, err := h.svc.List(ctx, userID, filter)

	if err != nil {
		AddSpanError(span, err)
		SendDomainError(c, err)
		return
	}

	h.recordOperation(c, "list")

	c.JSON(http.StatusOK, data)
}

func (h *TodoHandler) GetTodo(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := CurrentUserID(c)

	if !ok {
		SendUnauthorizedError(c, "Unauthorized request")
		return
	}

	id, err := uuid.Parse(c.Param("id"))

	if err != nil {
		SendBadRequestError(c, "id", "Invalid todo id")
		return
	}

	todo, err := h.svc.Get(ctx, userID, id)

	if err != nil {
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, todo)
}

func (h *TodoHandler) CreateTodo(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.todo.CreateTodo", []attribute.KeyValue{
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	})

	defer span.End()

	userID, ok := CurrentUserID(c)

	if !ok {
		SendUnauthorizedError(c, "Unauthorized request")
		return
	}

	var req request.CreateTodoRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		SendBadRequestError(c, "request", "Invalid request body")
		return
	}

	if err := Validator.Struct(req); err != nil {
		SendValidationError(c, err)
		return
	}

	input := domain.Todo{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		CategoryID:  req.CategoryID,
	}

	if req.Priority != nil {
		input.Priority = *req.Priority
	}

	todo, err := h.svc.Create(ctx, userID, input, req.Tags)

	if err != nil {
		AddSpanError(span, err)
		SendDomainError(c, err)
		return
	}

	h.recordOperation(c, "create")

	SendSuccess(c, http.StatusCreated, todo)
}

func (h *TodoHandler) UpdateTodo(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := CurrentUserID(c)

	if !ok {
		SendUnauthorizedError(c, "Unauthorized request")
		return
	}

	id, err := uuid.Parse(c.Param("id"))

	if err != nil {
		SendBadRequestError(c, "id", "Invalid todo id")
		return
	}

	var req request.UpdateTodoRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		SendBadRequestError(c, "request", "Invalid request body")
		return
	}

	if err := Validator.Struct(req); err != nil {
		SendValidationError(c, err)
		return
	}

	todo, err := h.svc.Update(ctx, userID, id, req.ToUpdate())

	if err != nil {
		SendDomainError(c, err)
		return
	}

	h.recordOperation(c, "update")

	SendSuccess(c, http.StatusOK, todo)
}

func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := CurrentUserID(c)

	if !ok {
		SendUnauthorizedError(c, "Unauthorized request")
		return
	}

	id, err := uuid.Parse(c.Param("id"))

	if err != nil {
		SendBadRequestError(c, "id", "Invalid todo id")
		return
	}

	if err := h.svc.Delete(ctx, userID, id); err != nil {
		SendDomainError(c, err)
		return
	}

	h.recordOperation(c, "delete")

	SendSuccess(c, http.StatusOK, nil, "Todo deleted successfully")
}

func (h *TodoHandler) BatchUpdateTodos(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.todo.BatchUpdateTodos", []attribute.KeyValue{
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	})

	defer span.End()

	userID, ok := CurrentUserID(c)

	if !ok {
		SendUnauthorizedError(c, "Unauthorized request")
		return
	}

	var req request.BatchUpdateRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		SendBadRequestError(c, "request", "Invalid request body")
		return
	}

	span.SetAttributes(attribute.Int("batch.size", len(req.TodoIDs)))

	data, err := h.svc.BatchUpdate(ctx, userID, req.TodoIDs, req.ToPatch())

	if err != nil {
		AddSpanError(span, err)
		SendDomainError(c, err)
		return
	}

	h.recordOperation(c, "batch_update")

	if h.metrics != nil {
		h.metrics.RecordBatchSize(ctx, "update", len(req.TodoIDs))
	}

	SendSuccess(c, http.StatusOK, data)
}

func (h *TodoHandler) BatchDeleteTodos(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.todo.BatchDeleteTodos", []attribute.KeyValue{
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	})

	defer span.End()

	userID, ok := CurrentUserID(c)

	if !ok {
		SendUnauthorizedError(c, "Unauthorized request")
		return
	}

	var req request.BatchDeleteRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		SendBadRequestError(c, "request", "Invalid request body")
		return
	}

	span.SetAttributes(attribute.Int("batch.size", len(req.TodoIDs)))

	data, err := h.svc.BatchDelete(ctx, userID, req.TodoIDs)

	if err != nil {
		AddSpanError(span, err)
		SendDomainError(c, err)
		return
	}

	h.recordOperation(c, "batch_delete")

	if h.metrics != nil {
		h.metrics.RecordBatchSize(ctx, "delete", len(req.TodoIDs))
	}

	SendSuccess(c, http.StatusOK, data)
}

func (h *TodoHandler) GetStats(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.todo.GetStats", []attribute.KeyValue{
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	})

	defer span.End()

	userID, ok := CurrentUserID(c)

	if !ok {
		SendUnauthorizedError(c, "Unauthorized request")
		return
	}

	stats, err := h.svc.Stats(ctx, userID)

	if err != nil {
		AddSpanError(span, err)
		SendDomainError(c, err)
		return
	}

	h.recordOperation(c, "stats")

	SendSuccess(c, http.StatusOK, stats)
}

func (h *TodoHandler) recordOperation(c *gin.Context, operation string) {
	if h.metrics != nil {
		h.metrics.RecordTodoOperation(c.Request.Context(), operation)
	}
}

// parseListQuery reads the optional criteria by hand because gin's form
// binding does not handle uuid values.
func parseListQuery(c *gin.Context) (domain.TodoFilter, error) {
	var query request.ListTodosQuery

	var err error

	if query.Completed, err = queryBool(c, "completed"); err != nil {
		return domain.TodoFilter{}, err
	}

	if query.Overdue, err = queryBool(c, "overdue"); err != nil {
		return domain.TodoFilter{}, err
	}

	if query.Priority, err = queryInt(c, "priority"); err != nil {
		return domain.TodoFilter{}, err
	}

	if query.Page, err = queryInt(c, "page"); err != nil {
		return domain.TodoFilter{}, err
	}

	if query.PerPage, err = queryInt(c, "per_page"); err != nil {
		return domain.TodoFilter{}, err
	}

	if raw := c.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)

		if err != nil {
			return domain.TodoFilter{}, err
		}

		query.CategoryID = &id
	}

	if raw := c.Query("tag"); raw != "" {
		query.Tag = &raw
	}

	if raw := c.Query("search"); raw != "" {
		query.Search = &raw
	}

	return query.ToFilter(), nil
}

func queryBool(c *gin.Context, name string) (*bool, error) {
	raw := c.Query(name)

	if raw == "" {
		return nil, nil
	}

	value, err := strconv.ParseBool(raw)

	if err != nil {
		return nil, err
	}

	return &value, nil
}

func queryInt(c *gin.Context, name string) (*int, error) {
	raw := c.Query(name)

	if raw == "" {
		return nil, nil
	}

	value, err := strconv.Atoi(raw)

	if err != nil {
		return nil, err
	}

	return &value, nil
}
