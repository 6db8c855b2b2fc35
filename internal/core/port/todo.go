package port

import (
	"context"

	"github.com/google/uuid"

	"todohub/internal/core/domain"
	"todohub/internal/core/model/response"
)

type TodoRepository interface {
	// List returns one page of rows matching the filter plus the total
	// matching count before pagination.
	List(ctx context.Context, userID uuid.UUID, filter domain.TodoFilter, limit, offset int) ([]domain.Todo, int64, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Todo, error)
	Create(ctx context.Context, todo domain.Todo, tags []string) (domain.Todo, error)
	Update(ctx context.Context, todo domain.Todo, tags []string) (domain.Todo, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// BatchUpdate and BatchDelete apply one mutation atomically to the
	// owned subset of ids and report the ids actually affected.
	BatchUpdate(ctx context.Context, userID uuid.UUID, ids []uuid.UUID, patch domain.TodoPatch) ([]uuid.UUID, error)
	BatchDelete(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]uuid.UUID, error)

	CategoriesByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]domain.Category, error)
	TagsByTodoIDs(ctx context.Context, todoIDs []uuid.UUID) (map[uuid.UUID][]domain.Tag, error)

	// Stats computes all aggregates inside a single read transaction.
	Stats(ctx context.Context, userID uuid.UUID) (domain.TodoStats, error)
}

type TodoService interface {
	List(ctx context.Context, userID uuid.UUID, filter domain.TodoFilter) (*response.TodoListResponse, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*response.TodoView, error)
	Create(ctx context.Context, userID uuid.UUID, input domain.Todo, tags []string) (*response.TodoView, error)
	Update(ctx context.Context, userID, id uuid.UUID, update domain.TodoUpdate) (*response.TodoView, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	BatchUpdate(ctx context.Context, userID uuid.UUID, ids []uuid.UUID, patch domain.TodoPatch) (*response.BatchResponse, error)
	BatchDelete(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (*response.BatchResponse, error)
	Stats(ctx context.Context, userID uuid.UUID) (*response.StatsView, error)
}
