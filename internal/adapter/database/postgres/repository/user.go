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

var userColumns = []string{
	"id", "username", "email", "password_hash", "full_name", "is_active", "created_at", "updated_at",
}

type UserRepository struct {
	db *postgres.DB
}

func NewUserRepository(db *postgres.DB) port.UserRepository {
	return &UserRepository{db: db}
}

func (ur *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	query := ur.db.QueryBuilder.Insert("users").
		Columns(userColumns...).
		Values(user.ID, user.Username, user.Email, user.PasswordHash,
			user.FullName, user.IsActive, user.CreatedAt, user.UpdatedAt)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, err
	}

	if _, err := ur.db.Exec(ctx, stmt, args...); err != nil {
		slog.Error("Error creating user", "error", err)
		return domain.User{}, err
	}

	return user, nil
}

func (ur *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	query := ur.db.QueryBuilder.Select(userColumns...).
		From("users").
		Where(sq.Eq{"id": id}).
		Limit(1)

	return ur.getOne(ctx, query)
}

func (ur *UserRepository) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	query := ur.db.QueryBuilder.Select(userColumns...).
		From("users").
		Where(sq.Eq{"username": username}).
		Limit(1)

	return ur.getOne(ctx, query)
}

func (ur *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var exists bool

	err := ur.db.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 OR email = $2)",
		username, email,
	).Scan(&exists)

	if err != nil {
		slog.Error("Error checking user existence", "error", err)
		return false, err
	}

	return exists, nil
}

func (ur *UserRepository) Update(ctx context.Context, user domain.User) (domain.User, error) {
	query := ur.db.QueryBuilder.Update("users").
		SetMap(map[string]interface{}{
			"email":         user.Email,
			"password_hash": user.PasswordHash,
			"full_name":     user.FullName,
			"is_active":     user.IsActive,
			"updated_at":    user.UpdatedAt,
		}).
		Where(sq.Eq{"id": user.ID})

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, err
	}

	tag, err := ur.db.Exec(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error updating user", "error", err)
		return domain.User{}, err
	}

	if tag.RowsAffected() == 0 {
		return domain.User{}, domain.ErrUserNotFound
	}

	return user, nil
}

func (ur *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := ur.db.Exec(ctx, "DELETE FROM users WHERE id = $1", id)

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

func (ur *UserRepository) getOne(ctx context.Context, query sq.SelectBuilder) (domain.User, error) {
	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, err
	}

	var u domain.User

	err = ur.db.QueryRow(ctx, stmt, args...).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&u.FullName, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}

		slog.Error("Error getting user", "error", err)
		return domain.User{}, err
	}

	return u, nil
}
