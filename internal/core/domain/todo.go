package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	PriorityMin = 0
	PriorityMax = 4

	// PriorityLevels is the fixed number of priority buckets reported by stats.
	PriorityLevels = PriorityMax - PriorityMin + 1
)

type Todo struct {
	ID          uuid.UUID
	Title       string  `validate:"required,min=1,max=255"`
	Description *string `validate:"omitempty,max=1000"`
	Completed   bool
	Priority    int `validate:"gte=0,lte=4"`
	DueDate     *time.Time
	UserID      uuid.UUID
	CategoryID  *uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (t *Todo) BelongsToUser(userID uuid.UUID) bool {
	return t.UserID == userID
}

// IsOverdue reports whether the todo is past its due date and still open.
// A todo without a due date is never overdue.
func (t *Todo) IsOverdue(now time.Time) bool {
	if t.DueDate == nil || t.Completed {
		return false
	}

	return t.DueDate.Before(now)
}

func ValidPriority(p int) bool {
	return p >= PriorityMin && p <= PriorityMax
}
