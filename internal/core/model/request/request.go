package request

import (
	"time"

	"github.com/google/uuid"

	"todohub/internal/core/domain"
)

type SignUpRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=50"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8,max=72"`
	FullName *string `json:"full_name" validate:"omitempty,max=100"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateUserRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	FullName *string `json:"full_name" validate:"omitempty,max=100"`
	IsActive *bool   `json:"is_active"`
}

type CreateTodoRequest struct {
	Title       string     `json:"title" validate:"required,min=1,max=255"`
	Description *string    `json:"description" validate:"omitempty,max=1000"`
	Priority    *int       `json:"priority" validate:"omitempty,gte=0,lte=4"`
	DueDate     *time.Time `json:"due_date"`
	CategoryID  *uuid.UUID `json:"category_id"`
	Tags        []string   `json:"tags" validate:"omitempty,dive,min=1,max=50"`
}

type UpdateTodoRequest struct {
	Title       *string                     `json:"title" validate:"omitempty,min=1,max=255"`
	Description domain.Optional[string]     `json:"description"`
	Completed   *bool                       `json:"completed"`
	Priority    *int                        `json:"priority" validate:"omitempty,gte=0,lte=4"`
	DueDate     domain.Optional[time.Time]  `json:"due_date"`
	CategoryID  domain.Optional[uuid.UUID]  `json:"category_id"`
	Tags        *[]string                   `json:"tags" validate:"omitempty,dive,min=1,max=50"`
}

func (r *UpdateTodoRequest) ToUpdate() domain.TodoUpdate {
	return domain.TodoUpdate{
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.Completed,
		Priority:    r.Priority,
		DueDate:     r.DueDate,
		CategoryID:  r.CategoryID,
		Tags:        r.Tags,
	}
}

// ListTodosQuery carries the optional list criteria from the query string.
type ListTodosQuery struct {
	Completed  *bool      `form:"completed"`
	CategoryID *uuid.UUID `form:"category_id"`
	Priority   *int       `form:"priority"`
	Tag        *string    `form:"tag"`
	Search     *string    `form:"search"`
	Overdue    *bool      `form:"overdue"`
	Page       *int       `form:"page"`
	PerPage    *int       `form:"per_page"`
}

func (q *ListTodosQuery) ToFilter() domain.TodoFilter {
	return domain.TodoFilter{
		Completed:  q.Completed,
		CategoryID: q.CategoryID,
		Priority:   q.Priority,
		Tag:        q.Tag,
		Search:     q.Search,
		Overdue:    q.Overdue,
		Page:       q.Page,
		PerPage:    q.PerPage,
	}
}

type BatchUpdateRequest struct {
	TodoIDs    []uuid.UUID                `json:"todo_ids"`
	Completed  domain.Optional[bool]      `json:"completed"`
	Priority   domain.Optional[int]       `json:"priority"`
	CategoryID domain.Optional[uuid.UUID] `json:"category_id"`
}

func (r *BatchUpdateRequest) ToPatch() domain.TodoPatch {
	return domain.TodoPatch{
		Completed:  r.Completed,
		Priority:   r.Priority,
		CategoryID: r.CategoryID,
	}
}

type BatchDeleteRequest struct {
	TodoIDs []uuid.UUID `json:"todo_ids"`
}

type CreateCategoryRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Color       *string `json:"color" validate:"omitempty,max=7"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Color       *string `json:"color" validate:"omitempty,max=7"`
}

type CreateTagRequest struct {
	Name string `json:"name" validate:"required,min=1,max=50"`
}
