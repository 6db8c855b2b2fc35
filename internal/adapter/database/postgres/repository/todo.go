package repository

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"

	"todohub/internal/adapter/database/postgres"
	"todohub/internal/core/domain"
	"todohub/internal/core/port"
)

var todoColumns = []string{
	"id", "title", "description", "completed", "priority",
	"due_date", "user_id", "category_id", "created_at", "updated_at",
}

type TodoRepository struct {
	db    *postgres.DB
	probe port.Telemetry
}

func NewTodoRepository(db *postgres.DB, probe port.Telemetry) port.TodoRepository {
	return &TodoRepository{db: db, probe: probe}
}

// listConditions turns the optional criteria into a conjunction of
// parameterized predicates. The owner predicate is always present; every
// other clause is emitted only when its criterion is supplied.
func listConditions(userID uuid.UUID, filter domain.TodoFilter, now time.Time) []sq.Sqlizer {
	conds := []sq.Sqlizer{sq.Eq{"user_id": userID}}

	if filter.Completed != nil {
		conds = append(conds, sq.Eq{"completed": *filter.Completed})
	}

	if filter.CategoryID != nil {
		conds = append(conds, sq.Eq{"category_id": *filter.CategoryID})
	}

	if filter.Priority != nil {
		conds = append(conds, sq.Eq{"priority": *filter.Priority})
	}

	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		pattern := "%" + *filter.Search + "%"
		conds = append(conds, sq.Or{
			sq.ILike{"title": pattern},
			sq.ILike{"description": pattern},
		})
	}

	if filter.Tag != nil && strings.TrimSpace(*filter.Tag) != "" {
		conds = append(conds, sq.Expr(
			"id IN (SELECT tt.todo_id FROM todo_tags tt JOIN tags t ON t.id = tt.tag_id WHERE t.user_id = ? AND t.name ILIKE ?)",
			userID, "%"+*filter.Tag+"%",
		))
	}

	if filter.Overdue != nil && *filter.Overdue {
		conds = append(conds, sq.Expr("due_date < ? AND completed = FALSE", now))
	}

	return conds
}

func (tr *TodoRepository) listQuery(userID uuid.UUID, filter domain.TodoFilter, limit, offset int, now time.Time) (sq.SelectBuilder, sq.SelectBuilder) {
	conds := listConditions(userID, filter, now)

	query := tr.db.QueryBuilder.Select(todoColumns...).From("todos")
	count := tr.db.QueryBuilder.Select("COUNT(*)").From("todos")

	for _, cond := range conds {
		query = query.Where(cond)
		count = count.Where(cond)
	}

	query = query.
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	return query, count
}

func (tr *TodoRepository) List(ctx context.Context, userID uuid.UUID, filter domain.TodoFilter, limit, offset int) ([]domain.Todo, int64, error) {
	ctx, span := tr.probe.StartRepositorySpan(ctx, "List", "todos", []attribute.KeyValue{
		attribute.String("user.id", userID.String()),
		attribute.Int("todo.limit", limit),
		attribute.Int("todo.offset", offset),
	})

	defer span.End()

	query, count := tr.listQuery(userID, filter, limit, offset, time.Now().UTC())

	countSQL, countArgs, err := count.ToSql()

	if err != nil {
		return nil, 0, err
	}

	var total int64

	if err := tr.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		slog.Error("Error counting todos", "error", err)
		return nil, 0, err
	}

	querySQL, queryArgs, err := query.ToSql()

	if err != nil {
		return nil, 0, err
	}

	rows, err := tr.db.Query(ctx, querySQL, queryArgs...)

	if err != nil {
		slog.Error("Error fetching todos", "error", err)
		return nil, 0, err
	}

	defer rows.Close()

	todos, err := scanTodos(rows)

	if err != nil {
		return nil, 0, err
	}

	span.SetAttributes(
		attribute.Int("db.rows_returned", len(todos)),
		attribute.Int64("db.total_count", total),
	)

	return todos, total, nil
}

func (tr *TodoRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Todo, error) {
	query := tr.db.QueryBuilder.Select(todoColumns...).
		From("todos").
		Where(sq.Eq{"user_id": userID, "id": id}).
		Limit(1)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Todo{}, err
	}

	var todo domain.Todo

	err = tr.db.QueryRow(ctx, stmt, args...).Scan(
		&todo.ID, &todo.Title, &todo.Description, &todo.Completed, &todo.Priority,
		&todo.DueDate, &todo.UserID, &todo.CategoryID, &todo.CreatedAt, &todo.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Todo{}, domain.ErrTodoNotFound
		}

		return domain.Todo{}, err
	}

	return todo, nil
}

func (tr *TodoRepository) Create(ctx context.Context, todo domain.Todo, tags []string) (domain.Todo, error) {
	tx, err := tr.db.Begin(ctx)

	if err != nil {
		return domain.Todo{}, err
	}

	defer tx.Rollback(ctx)

	query := tr.db.QueryBuilder.Insert("todos").
		Columns(todoColumns...).
		Values(todo.ID, todo.Title, todo.Description, todo.Completed, todo.Priority,
			todo.DueDate, todo.UserID, todo.CategoryID, todo.CreatedAt, todo.UpdatedAt)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Todo{}, err
	}

	if _, err := tx.Exec(ctx, stmt, args...); err != nil {
		slog.Error("Error creating todo", "error", err)
		return domain.Todo{}, err
	}

	if err := tr.linkTags(ctx, tx, todo, tags); err != nil {
		return domain.Todo{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Todo{}, err
	}

	return todo, nil
}

func (tr *TodoRepository) Update(ctx context.Context, todo domain.Todo, tags []string) (domain.Todo, error) {
	tx, err := tr.db.Begin(ctx)

	if err != nil {
		return domain.Todo{}, err
	}

	defer tx.Rollback(ctx)

	query := tr.db.QueryBuilder.Update("todos").
		SetMap(map[string]interface{}{
			"title":       todo.Title,
			"description": todo.Description,
			"completed":   todo.Completed,
			"priority":    todo.Priority,
			"due_date":    todo.DueDate,
			"category_id": todo.CategoryID,
			"updated_at":  todo.UpdatedAt,
		}).
		Where(sq.Eq{"user_id": todo.UserID, "id": todo.ID})

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Todo{}, err
	}

	tag, err := tx.Exec(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error updating todo", "error", err)
		return domain.Todo{}, err
	}

	if tag.RowsAffected() == 0 {
		return domain.Todo{}, domain.ErrTodoNotFound
	}

	// tags == nil leaves the link set untouched, an empty slice clears it
	if tags != nil {
		if _, err := tx.Exec(ctx, "DELETE FROM todo_tags WHERE todo_id = $1", todo.ID); err != nil {
			return domain.Todo{}, err
		}

		if err := tr.linkTags(ctx, tx, todo, tags); err != nil {
			return domain.Todo{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Todo{}, err
	}

	return todo, nil
}

func (tr *TodoRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := tr.db.Exec(ctx, "DELETE FROM todos WHERE user_id = $1 AND id = $2", userID, id)

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTodoNotFound
	}

	return nil
}

func (tr *TodoRepository) BatchUpdate(ctx context.Context, userID uuid.UUID, ids []uuid.UUID, patch domain.TodoPatch) ([]uuid.UUID, error) {
	ctx, span := tr.probe.StartRepositorySpan(ctx, "BatchUpdate", "todos", []attribute.KeyValue{
		attribute.String("user.id", userID.String()),
		attribute.Int("batch.size", len(ids)),
	})

	defer span.End()

	query := tr.db.QueryBuilder.Update("todos").
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"user_id": userID, "id": ids}).
		Suffix("RETURNING id")

	if patch.Completed.Set {
		query = query.Set("completed", patch.Completed.Value)
	}

	if patch.Priority.Set {
		query = query.Set("priority", patch.Priority.Value)
	}

	if patch.CategoryID.Set {
		if patch.CategoryID.Valid {
			query = query.Set("category_id", patch.CategoryID.Value)
		} else {
			query = query.Set("category_id", nil)
		}
	}

	stmt, args, err := query.ToSql()

	if err != nil {
		return nil, err
	}

	tx, err := tr.db.Begin(ctx)

	if err != nil {
		return nil, err
	}

	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error batch updating todos", "error", err)
		return nil, err
	}

	affected, err := scanIDs(rows)

	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("db.rows_affected", len(affected)))

	return affected, nil
}

func (tr *TodoRepository) BatchDelete(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]uuid.UUID, error) {
	ctx, span := tr.probe.StartRepositorySpan(ctx, "BatchDelete", "todos", []attribute.KeyValue{
		attribute.String("user.id", userID.String()),
		attribute.Int("batch.size", len(ids)),
	})

	defer span.End()

	query := tr.db.QueryBuilder.Delete("todos").
		Where(sq.Eq{"user_id": userID, "id": ids}).
		Suffix("RETURNING id")

	stmt, args, err := query.ToSql()

	if err != nil {
		return nil, err
	}

	tx, err := tr.db.Begin(ctx)

	if err != nil {
		return nil, err
	}

	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error batch deleting todos", "error", err)
		return nil, err
	}

	affected, err := scanIDs(rows)

	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("db.rows_affected", len(affected)))

	return affected, nil
}

func (tr *TodoRepository) CategoriesByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]domain.Category, error) {
	query := tr.db.QueryBuilder.
		Select("id", "name", "description", "color", "user_id", "created_at", "updated_at").
		From("categories").
		Where(sq.Eq{"user_id": userID, "id": ids})

	stmt, args, err := query.ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := tr.db.Query(ctx, stmt, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	categories := []domain.Category{}

	for rows.Next() {
		var c domain.Category

		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Color, &c.UserID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}

		categories = append(categories, c)
	}

	return categories, rows.Err()
}

func (tr *TodoRepository) TagsByTodoIDs(ctx context.Context, todoIDs []uuid.UUID) (map[uuid.UUID][]domain.Tag, error) {
	query := tr.db.QueryBuilder.
		Select("tt.todo_id", "t.id", "t.name", "t.user_id", "t.created_at").
		From("todo_tags tt").
		Join("tags t ON t.id = tt.tag_id").
		Where(sq.Eq{"tt.todo_id": todoIDs}).
		OrderBy("t.name")

	stmt, args, err := query.ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := tr.db.Query(ctx, stmt, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	byTodo := make(map[uuid.UUID][]domain.Tag)

	for rows.Next() {
		var todoID uuid.UUID
		var tag domain.Tag

		if err := rows.Scan(&todoID, &tag.ID, &tag.Name, &tag.UserID, &tag.CreatedAt); err != nil {
			return nil, err
		}

		byTodo[todoID] = append(byTodo[todoID], tag)
	}

	return byTodo, rows.Err()
}

// Stats runs every aggregate inside one repeatable-read transaction so the
// counts describe a single snapshot of the user's todos.
func (tr *TodoRepository) Stats(ctx context.Context, userID uuid.UUID) (domain.TodoStats, error) {
	ctx, span := tr.probe.StartRepositorySpan(ctx, "Stats", "todos", []attribute.KeyValue{
		attribute.String("user.id", userID.String()),
	})

	defer span.End()

	tx, err := tr.db.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})

	if err != nil {
		return domain.TodoStats{}, err
	}

	defer tx.Rollback(ctx)

	var stats domain.TodoStats

	err = tx.QueryRow(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE completed),
		        COUNT(*) FILTER (WHERE due_date < $2 AND completed = FALSE)
		 FROM todos WHERE user_id = $1`,
		userID, time.Now().UTC(),
	).Scan(&stats.Total, &stats.Completed, &stats.Overdue)

	if err != nil {
		slog.Error("Error counting todos for stats", "error", err)
		return domain.TodoStats{}, err
	}

	stats.Pending = stats.Total - stats.Completed

	rows, err := tx.Query(ctx,
		"SELECT priority, COUNT(*) FROM todos WHERE user_id = $1 GROUP BY priority ORDER BY priority",
		userID,
	)

	if err != nil {
		return domain.TodoStats{}, err
	}

	for rows.Next() {
		var c domain.PriorityCount

		if err := rows.Scan(&c.Priority, &c.Count); err != nil {
			rows.Close()
			return domain.TodoStats{}, err
		}

		stats.ByPriority = append(stats.ByPriority, c)
	}

	rows.Close()

	if err := rows.Err(); err != nil {
		return domain.TodoStats{}, err
	}

	rows, err = tx.Query(ctx,
		`SELECT t.category_id, c.name, COUNT(*)
		 FROM todos t
		 LEFT JOIN categories c ON c.id = t.category_id
		 WHERE t.user_id = $1
		 GROUP BY t.category_id, c.name
		 ORDER BY COUNT(*) DESC`,
		userID,
	)

	if err != nil {
		return domain.TodoStats{}, err
	}

	for rows.Next() {
		var c domain.CategoryCount

		if err := rows.Scan(&c.CategoryID, &c.CategoryName, &c.Count); err != nil {
			rows.Close()
			return domain.TodoStats{}, err
		}

		stats.ByCategory = append(stats.ByCategory, c)
	}

	rows.Close()

	if err := rows.Err(); err != nil {
		return domain.TodoStats{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.TodoStats{}, err
	}

	return stats, nil
}

func (tr *TodoRepository) linkTags(ctx context.Context, tx pgx.Tx, todo domain.Todo, tags []string) error {
	now := time.Now().UTC()

	for _, name := range tags {
		var tagID uuid.UUID

		// find-or-create keeps one tag row per (user, name)
		err := tx.QueryRow(ctx,
			`INSERT INTO tags (id, name, user_id, created_at) VALUES ($1, $2, $3, $4)
			 ON CONFLICT (user_id, name) DO UPDATE SET name = EXCLUDED.name
			 RETURNING id`,
			uuid.New(), name, todo.UserID, now,
		).Scan(&tagID)

		if err != nil {
			slog.Error("Error upserting tag", "error", err, "tag", name)
			return err
		}

		_, err = tx.Exec(ctx,
			"INSERT INTO todo_tags (todo_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
			todo.ID, tagID,
		)

		if err != nil {
			return err
		}
	}

	return nil
}

func scanTodos(rows pgx.Rows) ([]domain.Todo, error) {
	todos := []domain.Todo{}

	for rows.Next() {
		var todo domain.Todo

		err := rows.Scan(
			&todo.ID, &todo.Title, &todo.Description, &todo.Completed, &todo.Priority,
			&todo.DueDate, &todo.UserID, &todo.CategoryID, &todo.CreatedAt, &todo.UpdatedAt,
		)

		if err != nil {
			return nil, err
		}

		todos = append(todos, todo)
	}

	return todos, rows.Err()
}

func scanIDs(rows pgx.Rows) ([]uuid.UUID, error) {
	defer rows.Close()

	ids := []uuid.UUID{}

	for rows.Next() {
		var id uuid.UUID

		if err := rows.Scan(&id); err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	return ids, rows.Err()
}
