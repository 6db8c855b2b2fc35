package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"todohub/internal/core/domain"
	"todohub/internal/core/model/request"
	"todohub/internal/core/port"
	"todohub/internal/core/util"
	"todohub/pkg/auth"
)

type AuthService struct {
	users port.UserRepository
}

func NewAuthService(users port.UserRepository) *AuthService {
	return &AuthService{users}
}

func (as *AuthService) Register(ctx context.Context, req *request.SignUpRequest) (domain.User, error) {
	exists, err := as.users.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)

	if err != nil {
		return domain.User{}, err
	}

	if exists {
		return domain.User{}, domain.ErrUserAlreadyExists
	}

	hash, err := util.HashPassword(req.Password)

	if err != nil {
		slog.Error("Error hashing password", "error", err)
		return domain.User{}, err
	}

	now := time.Now().UTC()

	user := domain.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return as.users.Create(ctx, user)
}

func (as *AuthService) Authenticate(ctx context.Context, req *request.LoginRequest) (domain.User, string, error) {
	user, err := as.users.GetByUsername(ctx, req.Username)

	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.User{}, "", domain.ErrInvalidCredentials
		}

		return domain.User{}, "", err
	}

	if !user.IsActive {
		return domain.User{}, "", domain.ErrAccountDisabled
	}

	if !util.ComparePassword(req.Password, user.PasswordHash) {
		return domain.User{}, "", domain.ErrInvalidCredentials
	}

	token, err := auth.CreateJwtTokenForUser(user.ID)

	if err != nil {
		slog.Error("Error creating token", "error", err, "user_id", user.ID)
		return domain.User{}, "", err
	}

	return user, token, nil
}
