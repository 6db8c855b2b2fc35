package port

import (
	"context"

	"github.com/google/uuid"

	"todohub/internal/core/domain"
	"todohub/internal/core/model/request"
)

type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	GetByUsername(ctx context.Context, username string) (domain.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	Update(ctx context.Context, user domain.User) (domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type UserService interface {
	Get(ctx context.Context, id uuid.UUID) (domain.User, error)
	Update(ctx context.Context, id uuid.UUID, req *request.UpdateUserRequest) (domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type AuthService interface {
	Register(ctx context.Context, req *request.SignUpRequest) (domain.User, error)
	Authenticate(ctx context.Context, req *request.LoginRequest) (domain.User, string, error)
}
