package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Optional is a tri-state JSON field: absent, explicit null, or a value.
// It lets a patch distinguish "leave unchanged" from "set to null".
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true

	if string(data) == "null" {
		o.Valid = false
		return nil
	}

	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}

	o.Valid = true
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || !o.Valid {
		return []byte("null"), nil
	}

	return json.Marshal(o.Value)
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Valid: true, Value: v}
}

func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// TodoPatch is the sparse payload applied by batch updates. Only fields with
// Set=true are written; CategoryID additionally supports explicit null to
// detach the category.
type TodoPatch struct {
	Completed  Optional[bool]
	Priority   Optional[int]
	CategoryID Optional[uuid.UUID]
}

func (p TodoPatch) Empty() bool {
	return !p.Completed.Set && !p.Priority.Set && !p.CategoryID.Set
}

// TodoUpdate is the sparse payload for single-todo updates. Tags replaces the
// whole link set when non-nil.
type TodoUpdate struct {
	Title       *string
	Description Optional[string]
	Completed   *bool
	Priority    *int
	CategoryID  Optional[uuid.UUID]
	DueDate     Optional[time.Time]
	Tags        *[]string
}
