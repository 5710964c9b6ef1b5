package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/toppingfrozen/ordertrack/internal/core/domain"
)

var userColumns = []string{
	"id", "username", "password", "name", "role", "created_at", "updated_at",
}

func scanUser(row rowScanner) (*domain.User, error) {
	user := domain.User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Password,
		&user.Name,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, dataError(err)
	}
	return &user, nil
}

func (r *Repository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	statement := r.db.QueryBuilder.Insert("users").
		Columns("username", "password", "name", "role").
		Values(user.Username, user.Password, user.Name, user.Role).
		Suffix("returning id, created_at, updated_at")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRow(ctx, sql, args...).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, dataError(err)
	}

	return user, nil
}

func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.readUserWhere(ctx, sq.Eq{"username": username})
}

func (r *Repository) GetUser(ctx context.Context, id uint64) (*domain.User, error) {
	return r.readUserWhere(ctx, sq.Eq{"id": id})
}

func (r *Repository) readUserWhere(ctx context.Context, pred any) (*domain.User, error) {
	statement := r.db.QueryBuilder.
		Select(userColumns...).
		From("users").
		Where(pred)

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	return scanUser(r.db.QueryRow(ctx, sql, args...))
}

func (r *Repository) ListUsers(ctx context.Context) ([]*domain.User, error) {
	statement := r.db.QueryBuilder.
		Select(userColumns...).
		From("users").
		OrderBy("username ASC")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, dataError(err)
	}
	defer rows.Close()

	list := make([]*domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func (r *Repository) UpdateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	statement := r.db.QueryBuilder.Update("users").
		Set("password", user.Password).
		Set("name", user.Name).
		Set("role", user.Role).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": user.ID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	ct, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return nil, dataError(err)
	}
	if ct.RowsAffected() == 0 {
		return nil, domain.ErrDataNotFound
	}

	return r.GetUser(ctx, user.ID)
}

func (r *Repository) DeleteUser(ctx context.Context, id uint64) error {
	statement := r.db.QueryBuilder.Delete("users").Where(sq.Eq{"id": id})

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}

	ct, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return dataError(err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrDataNotFound
	}
	return nil
}
