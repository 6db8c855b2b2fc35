package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Username     string `validate:"required,min=3,max=50"`
	Email        string `validate:"required,email"`
	PasswordHash string
	FullName     *string `validate:"omitempty,max=100"`
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
