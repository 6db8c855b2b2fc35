package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"todohub/internal/core/domain"
	"todohub/internal/core/model/request"
	"todohub/internal/core/port"
)

type UserService struct {
	repo port.UserRepository
}

func NewUserService(repo port.UserRepository) *UserService {
	return &UserService{repo}
}

func (us *UserService) Get(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return us.repo.GetByID(ctx, id)
}

func (us *UserService) Update(ctx context.Context, id uuid.UUID, req *request.UpdateUserRequest) (domain.User, error) {
	user, err := us.repo.GetByID(ctx, id)

	if err != nil {
		return domain.User{}, err
	}

	if req.Email != nil {
		user.Email = *req.Email
	}

	if req.FullName != nil {
		user.FullName = req.FullName
	}

	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	user.UpdatedAt = time.Now().UTC()

	return us.repo.Update(ctx, user)
}

func (us *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	return us.repo.Delete(ctx, id)
}
