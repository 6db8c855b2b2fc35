package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"todohub/internal/core/domain"
)

type patchPayload struct {
	Completed  domain.Optional[bool]      `json:"completed"`
	Priority   domain.Optional[int]       `json:"priority"`
	CategoryID domain.Optional[uuid.UUID] `json:"category_id"`
}

func TestOptional_AbsentField(t *testing.T) {
	var payload patchPayload

	err := json.Unmarshal([]byte(`{}`), &payload)

	assert.NoError(t, err)
	assert.False(t, payload.Completed.Set)
	assert.False(t, payload.Priority.Set)
	assert.False(t, payload.CategoryID.Set)
}

func TestOptional_ExplicitNull(t *testing.T) {
	var payload patchPayload

	err := json.Unmarshal([]byte(`{"category_id": null}`), &payload)

	assert.NoError(t, err)
	assert.True(t, payload.CategoryID.Set)
	assert.False(t, payload.CategoryID.Valid)
}

func TestOptional_Value(t *testing.T) {
	var payload patchPayload

	id := uuid.New()

	err := json.Unmarshal([]byte(`{"completed": true, "priority": 3, "category_id": "`+id.String()+`"}`), &payload)

	assert.NoError(t, err)
	assert.True(t, payload.Completed.Set)
	assert.True(t, payload.Completed.Valid)
	assert.True(t, payload.Completed.Value)
	assert.Equal(t, 3, payload.Priority.Value)
	assert.Equal(t, id, payload.CategoryID.Value)
}

func TestOptional_InvalidValue(t *testing.T) {
	var payload patchPayload

	err := json.Unmarshal([]byte(`{"priority": "high"}`), &payload)

	assert.Error(t, err)
}

func TestTodoPatch_Empty(t *testing.T) {
	assert.True(t, domain.TodoPatch{}.Empty())

	assert.False(t, domain.TodoPatch{Completed: domain.Some(true)}.Empty())
	assert.False(t, domain.TodoPatch{CategoryID: domain.Null[uuid.UUID]()}.Empty())
}
