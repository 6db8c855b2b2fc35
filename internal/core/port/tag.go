package port

import (
	"context"

	"github.com/google/uuid"

	"todohub/internal/core/domain"
)

type TagRepository interface {
	Create(ctx context.Context, tag domain.Tag) (domain.Tag, error)
	List(ctx context.Context, userID uuid.UUID) ([]domain.Tag, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Tag, error)
	GetByName(ctx context.Context, userID uuid.UUID, name string) (domain.Tag, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error

	Assign(ctx context.Context, userID, todoID, tagID uuid.UUID) error
	Remove(ctx context.Context, userID, todoID, tagID uuid.UUID) error
}

type TagService interface {
	Create(ctx context.Context, userID uuid.UUID, name string) (domain.Tag, error)
	List(ctx context.Context, userID uuid.UUID) ([]domain.Tag, error)
	Get(ctx context.Context, userID, id uuid.UUID) (domain.Tag, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Assign(ctx context.Context, userID, todoID, tagID uuid.UUID) error
	Remove(ctx context.Context, userID, todoID, tagID uuid.UUID) error
}
