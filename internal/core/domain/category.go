package domain

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID          uuid.UUID
	Name        string  `validate:"required,min=1,max=100"`
	Description *string `validate:"omitempty,max=500"`
	Color       *string `validate:"omitempty,max=7"`
	UserID      uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (c *Category) BelongsToUser(userID uuid.UUID) bool {
	return c.UserID == userID
}
