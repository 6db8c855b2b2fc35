package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"todohub/internal/adapter/database/sqlite"
	"todohub/internal/core/domain"
	"todohub/internal/core/port"
)

var tagColumns = []string{"id", "name", "user_id", "created_at"}

type TagRepository struct {
	db *sqlite.DB
}

func NewTagRepository(db *sqlite.DB) port.TagRepository {
	return &TagRepository{db: db}
}

func (tr *TagRepository) Create(ctx context.Context, tag domain.Tag) (domain.Tag, error) {
	query := tr.db.QueryBuilder.Insert("tags").
		Columns(tagColumns...).
		Values(tag.ID, tag.Name, tag.UserID, tag.CreatedAt)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Tag{}, err
	}

	if _, err := tr.db.ExecContext(ctx, stmt, args...); err != nil {
		slog.Error("Error creating tag", "error", err)
		return domain.Tag{}, err
	}

	return tag, nil
}

func (tr *TagRepository) List(ctx context.Context, userID uuid.UUID) ([]domain.Tag, error) {
	query := tr.db.QueryBuilder.Select(tagColumns...).
		From("tags").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("name")

	stmt, args, err := query.ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := tr.db.QueryContext(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error listing tags", "error", err)
		return nil, err
	}

	defer rows.Close()

	tags := []domain.Tag{}

	for rows.Next() {
		var t domain.Tag

		if err := rows.Scan(&t.ID, &t.Name, &t.UserID, &t.CreatedAt); err != nil {
			return nil, err
		}

		tags = append(tags, t)
	}

	return tags, rows.Err()
}

func (tr *TagRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Tag, error) {
	query := tr.db.QueryBuilder.Select(tagColumns...).
		From("tags").
		Where(sq.Eq{"user_id": userID, "id": id}).
		Limit(1)

	return tr.getOne(ctx, query)
}

func (tr *TagRepository) GetByName(ctx context.Context, userID uuid.UUID, name string) (domain.Tag, error) {
	query := tr.db.QueryBuilder.Select(tagColumns...).
		From("tags").
		Where(sq.Eq{"user_id": userID, "name": name}).
		Limit(1)

	return tr.getOne(ctx, query)
}

func (tr *TagRepository) getOne(ctx context.Context, query sq.SelectBuilder) (domain.Tag, error) {
	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Tag{}, err
	}

	var t domain.Tag

	err = tr.db.QueryRowContext(ctx, stmt, args...).Scan(&t.ID, &t.Name, &t.UserID, &t.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Tag{}, domain.ErrTagNotFound
		}

		return domain.Tag{}, err
	}

	return t, nil
}

func (tr *TagRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result, err := tr.db.ExecContext(ctx, "DELETE FROM tags WHERE user_id = $1 AND id = $2", userID, id)

	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()

	if err != nil {
		return err
	}

	if affected == 0 {
		return domain.ErrTagNotFound
	}

	return nil
}

func (tr *TagRepository) Assign(ctx context.Context, userID, todoID, tagID uuid.UUID) error {
	if err := tr.checkOwnership(ctx, userID, todoID, tagID); err != nil {
		return err
	}

	_, err := tr.db.ExecContext(ctx,
		"INSERT INTO todo_tags (todo_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
		todoID, tagID,
	)

	return err
}

func (tr *TagRepository) Remove(ctx context.Context, userID, todoID, tagID uuid.UUID) error {
	if err := tr.checkOwnership(ctx, userID, todoID, tagID); err != nil {
		return err
	}

	result, err := tr.db.ExecContext(ctx,
		"DELETE FROM todo_tags WHERE todo_id = $1 AND tag_id = $2",
		todoID, tagID,
	)

	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()

	if err != nil {
		return err
	}

	if affected == 0 {
		return domain.ErrTagLinkNotFound
	}

	return nil
}

func (tr *TagRepository) checkOwnership(ctx context.Context, userID, todoID, tagID uuid.UUID) error {
	var todoOK, tagOK bool

	err := tr.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM todos WHERE user_id = $1 AND id = $2),
		        EXISTS (SELECT 1 FROM tags WHERE user_id = $1 AND id = $3)`,
		userID, todoID, tagID,
	).Scan(&todoOK, &tagOK)

	if err != nil {
		return err
	}

	if !todoOK {
		return domain.ErrTodoNotFound
	}

	if !tagOK {
		return domain.ErrTagNotFound
	}

	return nil
}
