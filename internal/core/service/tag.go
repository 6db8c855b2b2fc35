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

type TagService struct {
	repo port.TagRepository
}

func NewTagService(repo port.TagRepository) *TagService {
	return &TagService{repo}
}

func (s *TagService) Create(ctx context.Context, userID uuid.UUID, name string) (domain.Tag, error) {
	if _, err := s.repo.GetByName(ctx, userID, name); err == nil {
		return domain.Tag{}, domain.ErrTagNameTaken
	} else if !errors.Is(err, domain.ErrTagNotFound) {
		return domain.Tag{}, err
	}

	tag := domain.Tag{
		ID:        uuid.New(),
		Name:      name,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, tag)

	if err != nil {
		slog.Error("Error creating tag", "error", err, "name", name)
		return domain.Tag{}, err
	}

	return created, nil
}

func (s *TagService) List(ctx context.Context, userID uuid.UUID) ([]domain.Tag, error) {
	return s.repo.List(ctx, userID)
}

func (s *TagService) Get(ctx context.Context, userID, id uuid.UUID) (domain.Tag, error) {
	return s.repo.GetByID(ctx, userID, id)
}

func (s *TagService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.Delete(ctx, userID, id)
}

func (s *TagService) Assign(ctx context.Context, userID, todoID, tagID uuid.UUID) error {
	return s.repo.Assign(ctx, userID, todoID, tagID)
}

func (s *TagService) Remove(ctx context.Context, userID, todoID, tagID uuid.UUID) error {
	return s.repo.Remove(ctx, userID, todoID, tagID)
}
