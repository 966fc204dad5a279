package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/attendly/backend/internal/db"
	"github.com/attendly/backend/internal/domain"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const userColumns = `id, name, email, password_hash, pin_hash, role, verified,
	balance, online_balance, offline_balance, online_limit, offline_limit,
	preferred_offline_balance, currency, profile_picture, address, phone,
	created_at, updated_at, deleted_at`

type userRepository struct {
	db *sqlx.DB
}

func newUserRepository(db *sqlx.DB) *userRepository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const op = "repository.user.Create"

	const query = `
	INSERT INTO user (id, name, email, password_hash, role, verified)
	VALUES (uuid_to_bin(?), ?, ?, ?, ?, ?);
	`

	res, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Verified,
	)
	if err != nil {
		//nolint:errorlint
		if mysqlError, ok := err.(*mysql.MySQLError); ok && mysqlError.Number == db.DuplicateEntry {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("%s: insert user failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	if rows == 0 {
		return domain.ErrNoRowsAffected
	}

	return nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const op = "repository.user.GetByEmail"

	query := `SELECT ` + userColumns + ` FROM user WHERE email = ? AND deleted_at IS NULL;`

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select user by email failed: %w", op, err)
	}

	return &user, nil
}

func (r *userRepository) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	const op = "repository.user.GetOneByID"

	query := `SELECT ` + userColumns + ` FROM user WHERE id = uuid_to_bin(?) AND deleted_at IS NULL;`

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select user by id failed: %w", op, err)
	}

	return &user, nil
}

func (r *userRepository) SetVerified(ctx context.Context, id uuid.UUID) error {
	const op = "repository.user.SetVerified"

	const query = `UPDATE user SET verified = true WHERE id = uuid_to_bin(?);`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("%s: update user verified failed: %w", op, err)
	}

	return nil
}

func (r *userRepository) UpdatePinHash(ctx context.Context, id uuid.UUID, pinHash string) error {
	const op = "repository.user.UpdatePinHash"

	const query = `UPDATE user SET pin_hash = ? WHERE id = uuid_to_bin(?);`

	if _, err := r.db.ExecContext(ctx, query, pinHash, id); err != nil {
		return fmt.Errorf("%s: update user pin failed: %w", op, err)
	}

	return nil
}

func (r *userRepository) UpdatePreferredOfflineBalance(ctx context.Context, id uuid.UUID, value float64) error {
	const op = "repository.user.UpdatePreferredOfflineBalance"

	const query = `UPDATE user SET preferred_offline_balance = ? WHERE id = uuid_to_bin(?);`

	if _, err := r.db.ExecContext(ctx, query, value, id); err != nil {
		return fmt.Errorf("%s: update preferred offline balance failed: %w", op, err)
	}

	return nil
}

func (r *userRepository) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	const op = "repository.user.List"

	query := `SELECT ` + userColumns + ` FROM user WHERE deleted_at IS NULL
	ORDER BY created_at DESC LIMIT ? OFFSET ?;`

	var users []*domain.User
	if err := r.db.SelectContext(ctx, &users, query, limit, offset); err != nil {
		return nil, fmt.Errorf("%s: select users failed: %w", op, err)
	}

	return users, nil
}

func (r *userRepository) ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	const op = "repository.user.ListByRole"

	query := `SELECT ` + userColumns + ` FROM user WHERE role = ? AND deleted_at IS NULL;`

	var users []*domain.User
	if err := r.db.SelectContext(ctx, &users, query, role); err != nil {
		return nil, fmt.Errorf("%s: select users by role failed: %w", op, err)
	}

	return users, nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	const op = "repository.user.Count"

	const query = `SELECT COUNT(*) FROM user WHERE deleted_at IS NULL;`

	var count int64
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("%s: count users failed: %w", op, err)
	}

	return count, nil
}
