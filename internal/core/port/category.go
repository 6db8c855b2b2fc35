package port

import (
	"context"

	"github.com/google/uuid"

	"todohub/internal/core/domain"
)

type CategoryRepository interface {
	Create(ctx context.Context, category domain.Category) (domain.Category, error)
	List(ctx context.Context, userID uuid.UUID) ([]domain.Category, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Category, error)
	GetByName(ctx context.Context, userID uuid.UUID, name string) (domain.Category, error)
	Update(ctx context.Context, category domain.Category) (domain.Category, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type CategoryService interface {
	Create(ctx context.Context, userID uuid.UUID, category domain.Category) (domain.Category, error)
	List(ctx context.Context, userID uuid.UUID) ([]domain.Category, error)
	Get(ctx context.Context, userID, id uuid.UUID) (domain.Category, error)
	Update(ctx context.Context, userID, id uuid.UUID, name, description, color *string) (domain.Category, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
