package domain

import (
	"time"

	"github.com/google/uuid"
)

type Tag struct {
	ID        uuid.UUID
	Name      string `validate:"required,min=1,max=50"`
	UserID    uuid.UUID
	CreatedAt time.Time
}

func (t *Tag) BelongsToUser(userID uuid.UUID) bool {
	return t.UserID == userID
}
