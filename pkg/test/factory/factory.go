package factory

import (
	"fmt"
	"time"

	fab "github.com/Goldziher/fabricator"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"todohub/internal/core/domain"
)

// DefaultPassword is the plaintext behind every factory-built user's hash.
const DefaultPassword = "12345678"

func NewUser(customData ...map[string]any) domain.User {
	id := uuid.New()
	now := time.Now().UTC()

	hash, _ := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)

	defaults := map[string]any{
		"ID":           id,
		"Username":     fmt.Sprintf("user_%s", id.String()[:8]),
		"Email":        fmt.Sprintf("user_%s@example.com", id.String()[:8]),
		"PasswordHash": string(hash),
		"FullName":     (*string)(nil),
		"IsActive":     true,
		"CreatedAt":    now,
		"UpdatedAt":    now,
	}

	return fab.New(domain.User{}).Build(merge(defaults, customData...))
}

func NewTodo(userID uuid.UUID, customData ...map[string]any) domain.Todo {
	id := uuid.New()
	now := time.Now().UTC()

	// every field is pinned so nothing comes back with generated data that
	// the schema constraints would reject
	defaults := map[string]any{
		"ID":          id,
		"Title":       fmt.Sprintf("Todo %s", id.String()[:8]),
		"Description": (*string)(nil),
		"Completed":   false,
		"Priority":    0,
		"DueDate":     (*time.Time)(nil),
		"UserID":      userID,
		"CategoryID":  (*uuid.UUID)(nil),
		"CreatedAt":   now,
		"UpdatedAt":   now,
	}

	return fab.New(domain.Todo{}).Build(merge(defaults, customData...))
}

func NewCategory(userID uuid.UUID, customData ...map[string]any) domain.Category {
	id := uuid.New()
	now := time.Now().UTC()

	defaults := map[string]any{
		"ID":          id,
		"Name":        fmt.Sprintf("Category %s", id.String()[:8]),
		"Description": (*string)(nil),
		"Color":       (*string)(nil),
		"UserID":      userID,
		"CreatedAt":   now,
		"UpdatedAt":   now,
	}

	return fab.New(domain.Category{}).Build(merge(defaults, customData...))
}

func NewTag(userID uuid.UUID, customData ...map[string]any) domain.Tag {
	id := uuid.New()

	defaults := map[string]any{
		"ID":        id,
		"Name":      fmt.Sprintf("tag-%s", id.String()[:8]),
		"UserID":    userID,
		"CreatedAt": time.Now().UTC(),
	}

	return fab.New(domain.Tag{}).Build(merge(defaults, customData...))
}

func merge(defaults map[string]any, customData ...map[string]any) map[string]any {
	for _, data := range customData {
		for key, value := range data {
			defaults[key] = value
		}
	}

	return defaults
}
