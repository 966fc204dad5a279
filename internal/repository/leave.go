package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/attendly/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type leaveRepository struct {
	db *sqlx.DB
}

func newLeaveRepository(db *sqlx.DB) *leaveRepository {
	return &leaveRepository{
		db: db,
	}
}

func (r *leaveRepository) HasApprovedOnDate(ctx context.Context, userID uuid.UUID, date time.Time) (bool, error) {
	const op = "repository.leave.HasApprovedOnDate"

	const query = `
	SELECT COUNT(*) FROM user_leave
	WHERE user_id = uuid_to_bin(?) AND status = ? AND start_date <= ? AND end_date >= ?;
	`

	var count int64
	if err := r.db.GetContext(ctx, &count, query, userID, domain.LeaveApproved, date, date); err != nil {
		return false, fmt.Errorf("%s: count approved leaves failed: %w", op, err)
	}

	return count > 0, nil
}
