package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/attendly/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type codeRepository struct {
	db *sqlx.DB
}

func newCodeRepository(db *sqlx.DB) *codeRepository {
	return &codeRepository{
		db: db,
	}
}

// Upsert replaces the live code of a user in place. The unique key on
// user_id turns the insert into an overwrite, which keeps "one live code per
// user" without explicit locking; the attempt counter restarts with the new
// code.
func (r *codeRepository) Upsert(ctx context.Context, code *domain.OneTimeCode) error {
	const op = "repository.code.Upsert"

	const query = `
	INSERT INTO one_time_code (id, user_id, code_hash, expires_at, attempts, resend_count, last_sent_at)
	VALUES (uuid_to_bin(:id), uuid_to_bin(:user_id), :code_hash, :expires_at, 0, :resend_count, :last_sent_at)
	ON DUPLICATE KEY UPDATE
		code_hash = VALUES(code_hash),
		expires_at = VALUES(expires_at),
		attempts = 0,
		resend_count = VALUES(resend_count),
		last_sent_at = VALUES(last_sent_at);
	`

	res, err := r.db.NamedExecContext(ctx, query, code)
	if err != nil {
		return fmt.Errorf("%s: upsert one time code failed: %w", op, err)
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

func (r *codeRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.OneTimeCode, error) {
	const op = "repository.code.GetByUserID"

	const query = `
	SELECT id, user_id, code_hash, expires_at, attempts, resend_count, last_sent_at, created_at, updated_at
	FROM one_time_code
	WHERE user_id = uuid_to_bin(?);
	`

	var code domain.OneTimeCode
	if err := r.db.GetContext(ctx, &code, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select one time code failed: %w", op, err)
	}

	return &code, nil
}

// IncrementAttempts bumps the counter only when it still holds the value the
// caller read. A concurrent verify that got there first makes this return
// domain.ErrNoRowsAffected instead of silently double-counting.
func (r *codeRepository) IncrementAttempts(ctx context.Context, id uuid.UUID, expectedAttempts int) error {
	const op = "repository.code.IncrementAttempts"

	const query = `
	UPDATE one_time_code SET attempts = attempts + 1
	WHERE id = uuid_to_bin(?) AND attempts = ?;
	`

	res, err := r.db.ExecContext(ctx, query, id, expectedAttempts)
	if err != nil {
		return fmt.Errorf("%s: increment attempts failed: %w", op, err)
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

func (r *codeRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	const op = "repository.code.DeleteByUserID"

	const query = `DELETE FROM one_time_code WHERE user_id = uuid_to_bin(?);`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("%s: delete one time code failed: %w", op, err)
	}

	return nil
}
