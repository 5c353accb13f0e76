// Package auth_repo provides the PostgreSQL user repository.
package auth_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"agriaccount/internal/core/apperror"
	"agriaccount/internal/domain/auth"
	"agriaccount/internal/infrastructure/storage/postgres"
)

var userCols = postgres.ExtractDBColumns[auth.User]()

// UserRepo implements auth.UserRepository.
type UserRepo struct {
	txm *postgres.TxManager
}

var _ auth.UserRepository = (*UserRepo)(nil)

func NewUserRepo(txm *postgres.TxManager) *UserRepo {
	return &UserRepo{txm: txm}
}

func (r *UserRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *UserRepo) Create(ctx context.Context, user *auth.User) error {
	data := postgres.StructToMap(user)
	delete(data, "id")
	q := r.builder().Insert("users").SetMap(data).Suffix("RETURNING id")
	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&user.ID); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*auth.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, id)
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*auth.User, error) {
	return r.getOne(ctx, squirrel.Eq{"username": username}, username)
}

func (r *UserRepo) getOne(ctx context.Context, pred squirrel.Eq, key any) (*auth.User, error) {
	q := r.builder().Select(userCols...).From("users").Where(pred)
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}
	var user auth.User
	err = pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &user, sql, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("user", key)
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &user, nil
}

func (r *UserRepo) Exists(ctx context.Context, username string) (bool, error) {
	var one int
	err := r.txm.GetQuerier(ctx).QueryRow(ctx, "SELECT 1 FROM users WHERE username = $1", username).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("user exists: %w", err)
	}
	return true, nil
}

func (r *UserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	tag, err := r.txm.GetQuerier(ctx).Exec(ctx,
		"UPDATE users SET password_hash = $1 WHERE id = $2", passwordHash, id)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("user", id)
	}
	return nil
}
