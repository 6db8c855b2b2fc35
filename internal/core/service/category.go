package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"todohub/internal/core/domain"
	"todohub/internal/core/port"
)

type CategoryService struct {
	repo port.CategoryRepository
}

func NewCategoryService(repo port.CategoryRepository) *CategoryService {
	return &CategoryService{repo}
}

func (cs *CategoryService) Create(ctx context.Context, userID uuid.UUID, category domain.Category) (domain.Category, error) {
	if _, err := cs.repo.GetByName(ctx, userID, category.Name); err == nil {
		return domain.Category{}, domain.ErrCategoryNameTaken
	} else if !errors.Is(err, domain.ErrCategoryNotFound) {
		return domain.Category{}, err
	}

	now := time.Now().UTC()

	category.ID = uuid.New()
	category.UserID = userID
	category.CreatedAt = now
	category.UpdatedAt = now

	created, err := cs.repo.Create(ctx, category)

	if err != nil {
		slog.Error("Error creating category", "error", err, "name", category.Name)
		return domain.Category{}, err
	}

	return created, nil
}

func (cs *CategoryService) List(ctx context.Context, userID uuid.UUID) ([]domain.Category, error) {
	return cs.repo.List(ctx, userID)
}

func (cs *CategoryService) Get(ctx context.Context, userID, id uuid.UUID) (domain.Category, error) {
	return cs.repo.GetByID(ctx, userID, id)
}

func (cs *CategoryService) Update(ctx context.Context, userID, id uuid.UUID, name, description, color *string) (domain.Category, error) {
	existing, err := cs.repo.GetByID(ctx, userID, id)

	if err != nil {
		return domain.Category{}, err
	}

	if name != nil && *name != existing.Name {
		if other, err := cs.repo.GetByName(ctx, userID, *name); err == nil && other.ID != id {
			return domain.Category{}, domain.ErrCategoryNameTaken
		} else if err != nil && !errors.Is(err, domain.ErrCategoryNotFound) {
			return domain.Category{}, err
		}

		existing.Name = *name
	}

	if description != nil {
		existing.Description = description
	}

	if color != nil {
		existing.Color = color
	}

	existing.UpdatedAt = time.Now().UTC()

	return cs.repo.Update(ctx, existing)
}

func (cs *CategoryService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return cs.repo.Delete(ctx, userID, id)
}
