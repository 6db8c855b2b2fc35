package repository

import (
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"todohub/internal/adapter/database/postgres"
	"todohub/internal/core/domain"
)

func newTestRepo() *TodoRepository {
	qb := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	return &TodoRepository{db: &postgres.DB{QueryBuilder: &qb}}
}

func boolPtr(v bool) *bool    { return &v }
func strPtr(v string) *string { return &v }

func TestListConditions_OwnerOnly(t *testing.T) {
	userID := uuid.New()

	conds := listConditions(userID, domain.TodoFilter{}, time.Now())

	assert.Len(t, conds, 1)

	sqlStr, args, err := sq.And(conds).ToSql()

	assert.NoError(t, err)
	assert.Equal(t, "(user_id = ?)", sqlStr)

	// squirrel resolves driver.Valuer args, so the uuid lands as its string form
	assert.Equal(t, []interface{}{userID.String()}, args)
}

func TestListConditions_Conjunction(t *testing.T) {
	userID := uuid.New()

	conds := listConditions(userID, domain.TodoFilter{
		Completed: boolPtr(true),
		Search:    strPtr("milk"),
	}, time.Now())

	sqlStr, args, err := sq.And(conds).ToSql()

	assert.NoError(t, err)
	assert.Contains(t, sqlStr, "user_id = ?")
	assert.Contains(t, sqlStr, "completed = ?")
	assert.Contains(t, sqlStr, "title ILIKE ?")
	assert.Contains(t, sqlStr, "description ILIKE ?")
	assert.Contains(t, args, "%milk%")
}

func TestListConditions_BlankSearchIgnored(t *testing.T) {
	conds := listConditions(uuid.New(), domain.TodoFilter{Search: strPtr("   ")}, time.Now())

	assert.Len(t, conds, 1)
}

func TestListConditions_TagSubquery(t *testing.T) {
	userID := uuid.New()

	conds := listConditions(userID, domain.TodoFilter{Tag: strPtr("work")}, time.Now())

	sqlStr, args, err := sq.And(conds).ToSql()

	assert.NoError(t, err)
	assert.Contains(t, sqlStr, "id IN (SELECT tt.todo_id FROM todo_tags tt JOIN tags t ON t.id = tt.tag_id")
	assert.Contains(t, sqlStr, "t.name ILIKE ?")
	assert.Contains(t, args, "%work%")
}

func TestListConditions_Overdue(t *testing.T) {
	now := time.Now().UTC()

	conds := listConditions(uuid.New(), domain.TodoFilter{Overdue: boolPtr(true)}, now)

	sqlStr, args, err := sq.And(conds).ToSql()

	assert.NoError(t, err)
	assert.Contains(t, sqlStr, "due_date < ? AND completed = FALSE")
	assert.Contains(t, args, now)

	// overdue=false filters nothing
	conds = listConditions(uuid.New(), domain.TodoFilter{Overdue: boolPtr(false)}, now)
	assert.Len(t, conds, 1)
}

func TestListQuery_OrderingAndPagination(t *testing.T) {
	repo := newTestRepo()

	query, count := repo.listQuery(uuid.New(), domain.TodoFilter{}, 10, 20, time.Now())

	querySQL, _, err := query.ToSql()

	assert.NoError(t, err)
	assert.Contains(t, querySQL, "ORDER BY created_at DESC, id DESC")
	assert.Contains(t, querySQL, "LIMIT 10")
	assert.Contains(t, querySQL, "OFFSET 20")
	assert.Contains(t, querySQL, "$1")

	countSQL, _, err := count.ToSql()

	assert.NoError(t, err)
	assert.Contains(t, countSQL, "SELECT COUNT(*) FROM todos")
	assert.NotContains(t, countSQL, "LIMIT")
	assert.NotContains(t, countSQL, "ORDER BY")
}
