package repository

import (
	"context"
	"errors"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"todohub/internal/adapter/database/postgres"
	"todohub/internal/core/domain"
	"todohub/internal/core/port"
)

var categoryColumns = []string{
	"id", "name", "description", "color", "user_id", "created_at", "updated_at",
}

type CategoryRepository struct {
	db *postgres.DB
}

func NewCategoryRepository(db *postgres.DB) port.CategoryRepository {
	return &CategoryRepository{db: db}
}

func (cr *CategoryRepository) List(ctx context.Context, userID uuid.UUID) ([]domain.Category, error) {
	query := cr.db.QueryBuilder.Select(categoryColumns...).
		From("categories").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("name")

	stmt, args, err := query.ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := cr.db.Query(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error listing categories", "error", err)
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

func (cr *CategoryRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Category, error) {
	query := cr.db.QueryBuilder.Select(categoryColumns...).
		From("categories").
		Where(sq.Eq{"user_id": userID, "id": id}).
		Limit(1)

	return cr.getOne(ctx, query)
}

func (cr *CategoryRepository) GetByName(ctx context.Context, userID uuid.UUID, name string) (domain.Category, error) {
	query := cr.db.QueryBuilder.Select(categoryColumns...).
		From("categories").
		Where(sq.Eq{"user_id": userID, "name": name}).
		Limit(1)

	return cr.getOne(ctx, query)
}

func (cr *CategoryRepository) getOne(ctx context.Context, query sq.SelectBuilder) (domain.Category, error) {
	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Category{}, err
	}

	var c domain.Category

	err = cr.db.QueryRow(ctx, stmt, args...).Scan(
		&c.ID, &c.Name, &c.Description, &c.Color, &c.UserID, &c.CreatedAt, &c.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Category{}, domain.ErrCategoryNotFound
		}

		return domain.Category{}, err
	}

	return c, nil
}

func (cr *CategoryRepository) Create(ctx context.Context, category domain.Category) (domain.Category, error) {
	query := cr.db.QueryBuilder.Insert("categories").
		Columns(categoryColumns...).
		Values(category.ID, category.Name, category.Description, category.Color,
			category.UserID, category.CreatedAt, category.UpdatedAt)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Category{}, err
	}

	if _, err := cr.db.Exec(ctx, stmt, args...); err != nil {
		slog.Error("Error creating category", "error", err)
		return domain.Category{}, err
	}

	return category, nil
}

func (cr *CategoryRepository) Update(ctx context.Context, category domain.Category) (domain.Category, error) {
	query := cr.db.QueryBuilder.Update("categories").
		SetMap(map[string]interface{}{
			"name":        category.Name,
			"description": category.Description,
			"color":       category.Color,
			"updated_at":  category.UpdatedAt,
		}).
		Where(sq.Eq{"user_id": category.UserID, "id": category.ID})

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Category{}, err
	}

	tag, err := cr.db.Exec(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error updating category", "error", err)
		return domain.Category{}, err
	}

	if tag.RowsAffected() == 0 {
		return domain.Category{}, domain.ErrCategoryNotFound
	}

	return category, nil
}

func (cr *CategoryRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := cr.db.Exec(ctx, "DELETE FROM categories WHERE user_id = $1 AND id = $2", userID, id)

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}

	return nil
}
