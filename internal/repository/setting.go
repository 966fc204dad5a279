package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/attendly/backend/internal/domain"

	"github.com/jmoiron/sqlx"
)

type settingRepository struct {
	db *sqlx.DB
}

func newSettingRepository(db *sqlx.DB) *settingRepository {
	return &settingRepository{
		db: db,
	}
}

func (r *settingRepository) GetAttendanceTimes(ctx context.Context) (*domain.AttendanceTimes, error) {
	const op = "repository.setting.GetAttendanceTimes"

	const query = `SELECT id, check_in_time, check_out_time FROM attendance_times WHERE id = 1;`

	var times domain.AttendanceTimes
	if err := r.db.GetContext(ctx, &times, query); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select attendance times failed: %w", op, err)
	}

	return &times, nil
}

func (r *settingRepository) UpdateAttendanceTimes(ctx context.Context, times *domain.AttendanceTimes) error {
	const op = "repository.setting.UpdateAttendanceTimes"

	const query = `
	INSERT INTO attendance_times (id, check_in_time, check_out_time)
	VALUES (1, ?, ?)
	ON DUPLICATE KEY UPDATE
		check_in_time = VALUES(check_in_time),
		check_out_time = VALUES(check_out_time);
	`

	if _, err := r.db.ExecContext(ctx, query, times.CheckInTime, times.CheckOutTime); err != nil {
		return fmt.Errorf("%s: upsert attendance times failed: %w", op, err)
	}

	return nil
}
