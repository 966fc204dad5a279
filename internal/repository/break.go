package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/attendly/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type breakRepository struct {
	db *sqlx.DB
}

func newBreakRepository(db *sqlx.DB) *breakRepository {
	return &breakRepository{
		db: db,
	}
}

func (r *breakRepository) Create(ctx context.Context, brk *domain.Break) error {
	const op = "repository.break.Create"

	const query = `
	INSERT INTO work_break (id, user_id, break_start)
	VALUES (uuid_to_bin(:id), uuid_to_bin(:user_id), :break_start);
	`

	res, err := r.db.NamedExecContext(ctx, query, brk)
	if err != nil {
		return fmt.Errorf("%s: insert break failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	if rows != 1 {
		return fmt.Errorf("%s: expected 1 row affected, got %d", op, rows)
	}

	return nil
}

func (r *breakRepository) GetOpenByUser(ctx context.Context, userID uuid.UUID) (*domain.Break, error) {
	const op = "repository.break.GetOpenByUser"

	const query = `
	SELECT id, user_id, break_start, break_end, created_at
	FROM work_break
	WHERE user_id = uuid_to_bin(?) AND break_end IS NULL
	ORDER BY break_start DESC
	LIMIT 1;
	`

	var brk domain.Break
	if err := r.db.GetContext(ctx, &brk, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select open break failed: %w", op, err)
	}

	return &brk, nil
}

func (r *breakRepository) End(ctx context.Context, id uuid.UUID, endedAt time.Time) error {
	const op = "repository.break.End"

	const query = `
	UPDATE work_break SET break_end = ?
	WHERE id = uuid_to_bin(?) AND break_end IS NULL;
	`

	res, err := r.db.ExecContext(ctx, query, endedAt, id)
	if err != nil {
		return fmt.Errorf("%s: end break failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	if rows == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *breakRepository) ListByUserBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*domain.Break, error) {
	const op = "repository.break.ListByUserBetween"

	const query = `
	SELECT id, user_id, break_start, break_end, created_at
	FROM work_break
	WHERE user_id = uuid_to_bin(?) AND break_start >= ? AND break_start <= ?
	ORDER BY break_start ASC;
	`

	var breaks []*domain.Break
	if err := r.db.SelectContext(ctx, &breaks, query, userID, from, to); err != nil {
		return nil, fmt.Errorf("%s: select breaks failed: %w", op, err)
	}

	return breaks, nil
}
