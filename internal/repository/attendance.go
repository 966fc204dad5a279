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

type attendanceRepository struct {
	db *sqlx.DB
}

func newAttendanceRepository(db *sqlx.DB) *attendanceRepository {
	return &attendanceRepository{
		db: db,
	}
}

func (r *attendanceRepository) Create(ctx context.Context, attendance *domain.Attendance) error {
	const op = "repository.attendance.Create"

	const query = `
	INSERT INTO attendance (id, user_id, check_in_at, status)
	VALUES (uuid_to_bin(:id), uuid_to_bin(:user_id), :check_in_at, :status);
	`

	res, err := r.db.NamedExecContext(ctx, query, attendance)
	if err != nil {
		return fmt.Errorf("%s: insert attendance failed: %w", op, err)
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

func (r *attendanceRepository) GetTodayByUser(ctx context.Context, userID uuid.UUID, dayStart time.Time) (*domain.Attendance, error) {
	const op = "repository.attendance.GetTodayByUser"

	const query = `
	SELECT id, user_id, check_in_at, check_out_at, status, created_at, updated_at
	FROM attendance
	WHERE user_id = uuid_to_bin(?) AND check_in_at >= ?
	ORDER BY check_in_at DESC
	LIMIT 1;
	`

	var attendance domain.Attendance
	if err := r.db.GetContext(ctx, &attendance, query, userID, dayStart); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select attendance failed: %w", op, err)
	}

	return &attendance, nil
}

// CloseOpen closes the open record identified by (user, check-in) the way
// the auto-checkout job sees it; a vanished record is reported as not found
// so the job can fall back to closing by id.
func (r *attendanceRepository) CloseOpen(ctx context.Context, userID uuid.UUID, checkInAt, checkOutAt time.Time, status domain.AttendanceStatus) error {
	const op = "repository.attendance.CloseOpen"

	const query = `
	UPDATE attendance SET check_out_at = ?, status = ?
	WHERE user_id = uuid_to_bin(?) AND check_in_at = ? AND check_out_at IS NULL;
	`

	res, err := r.db.ExecContext(ctx, query, checkOutAt, status, userID, checkInAt)
	if err != nil {
		return fmt.Errorf("%s: close attendance failed: %w", op, err)
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

func (r *attendanceRepository) Close(ctx context.Context, id uuid.UUID, checkOutAt time.Time, status domain.AttendanceStatus) error {
	const op = "repository.attendance.Close"

	const query = `
	UPDATE attendance SET check_out_at = ?, status = ?
	WHERE id = uuid_to_bin(?) AND check_out_at IS NULL;
	`

	res, err := r.db.ExecContext(ctx, query, checkOutAt, status, id)
	if err != nil {
		return fmt.Errorf("%s: close attendance by id failed: %w", op, err)
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

func (r *attendanceRepository) ListOpenBefore(ctx context.Context, cutoff time.Time) ([]*domain.Attendance, error) {
	const op = "repository.attendance.ListOpenBefore"

	const query = `
	SELECT id, user_id, check_in_at, check_out_at, status, created_at, updated_at
	FROM attendance
	WHERE check_out_at IS NULL AND check_in_at < ?
	ORDER BY check_in_at DESC;
	`

	var attendances []*domain.Attendance
	if err := r.db.SelectContext(ctx, &attendances, query, cutoff); err != nil {
		return nil, fmt.Errorf("%s: select open attendances failed: %w", op, err)
	}

	return attendances, nil
}

func (r *attendanceRepository) ListClosed(ctx context.Context) ([]*domain.Attendance, error) {
	const op = "repository.attendance.ListClosed"

	const query = `
	SELECT id, user_id, check_in_at, check_out_at, status, created_at, updated_at
	FROM attendance
	WHERE check_out_at IS NOT NULL;
	`

	var attendances []*domain.Attendance
	if err := r.db.SelectContext(ctx, &attendances, query); err != nil {
		return nil, fmt.Errorf("%s: select closed attendances failed: %w", op, err)
	}

	return attendances, nil
}

func (r *attendanceRepository) ResetCheckOut(ctx context.Context, id uuid.UUID) error {
	const op = "repository.attendance.ResetCheckOut"

	const query = `
	UPDATE attendance SET check_out_at = NULL, status = ?
	WHERE id = uuid_to_bin(?);
	`

	if _, err := r.db.ExecContext(ctx, query, domain.AttendanceOpen, id); err != nil {
		return fmt.Errorf("%s: reset check out failed: %w", op, err)
	}

	return nil
}
