package response

import (
	"time"

	"github.com/google/uuid"

	"todohub/internal/core/domain"
)

type CategoryView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Color       *string   `json:"color"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewCategoryView(c domain.Category) CategoryView {
	return CategoryView{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Color:       c.Color,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

type TagView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func NewTagView(t domain.Tag) TagView {
	return TagView{ID: t.ID, Name: t.Name, CreatedAt: t.CreatedAt}
}

// TodoView is the denormalized todo shape: the row merged with its category
// and tags. Field names and nullability are the wire contract.
type TodoView struct {
	ID          uuid.UUID     `json:"id"`
	Title       string        `json:"title"`
	Description *string       `json:"description"`
	Completed   bool          `json:"completed"`
	UserID      uuid.UUID     `json:"user_id"`
	Category    *CategoryView `json:"category"`
	Priority    int           `json:"priority"`
	DueDate     *time.Time    `json:"due_date"`
	Tags        []TagView     `json:"tags"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

type TodoListResponse struct {
	Todos   []TodoView `json:"todos"`
	Total   int64      `json:"total"`
	Page    int        `json:"page"`
	PerPage int        `json:"per_page"`
}

type BatchResponse struct {
	AffectedIDs []uuid.UUID `json:"affected_ids"`
}

type PriorityCountView struct {
	Priority int   `json:"priority"`
	Count    int64 `json:"count"`
}

type CategoryCountView struct {
	CategoryID   *uuid.UUID `json:"category_id"`
	CategoryName *string    `json:"category_name"`
	Count        int64      `json:"count"`
}

type StatsView struct {
	TotalTodos      int64               `json:"total_todos"`
	CompletedTodos  int64               `json:"completed_todos"`
	PendingTodos    int64               `json:"pending_todos"`
	OverdueTodos    int64               `json:"overdue_todos"`
	TodosByPriority []PriorityCountView `json:"todos_by_priority"`
	TodosByCategory []CategoryCountView `json:"todos_by_category"`
}

func NewStatsView(s domain.TodoStats) *StatsView {
	byPriority := make([]PriorityCountView, 0, len(s.ByPriority))

	for _, p := range s.ByPriority {
		byPriority = append(byPriority, PriorityCountView{Priority: p.Priority, Count: p.Count})
	}

	byCategory := make([]CategoryCountView, 0, len(s.ByCategory))

	for _, c := range s.ByCategory {
		byCategory = append(byCategory, CategoryCountView{
			CategoryID:   c.CategoryID,
			CategoryName: c.CategoryName,
			Count:        c.Count,
		})
	}

	return &StatsView{
		TotalTodos:      s.Total,
		CompletedTodos:  s.Completed,
		PendingTodos:    s.Pending,
		OverdueTodos:    s.Overdue,
		TodosByPriority: byPriority,
		TodosByCategory: byCategory,
	}
}

type UserView struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  *string   `json:"full_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewUserView(u domain.User) UserView {
	return UserView{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type AuthResponse struct {
	User  UserView `json:"user"`
	Token string   `json:"token"`
}

type SuccessResponse struct {
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ResponseError struct {
	Code    string            `json:"code"`
	Errors  []ValidationError `json:"errors"`
	Details any               `json:"details,omitempty"`
}

type ErrorResponse struct {
	Error ResponseError `json:"error"`
}
