package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/attendly/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type reminderRepository struct {
	db *sqlx.DB
}

func newReminderRepository(db *sqlx.DB) *reminderRepository {
	return &reminderRepository{
		db: db,
	}
}

func (r *reminderRepository) Create(ctx context.Context, reminder *domain.CheckInReminder) error {
	const op = "repository.reminder.Create"

	const query = `
	INSERT INTO check_in_reminder (id, user_id, kind, minutes_late, last_sent)
	VALUES (uuid_to_bin(:id), uuid_to_bin(:user_id), :kind, :minutes_late, :last_sent);
	`

	res, err := r.db.NamedExecContext(ctx, query, reminder)
	if err != nil {
		return fmt.Errorf("%s: insert reminder failed: %w", op, err)
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

func (r *reminderRepository) SentSince(ctx context.Context, userID uuid.UUID, kind domain.ReminderKind, since time.Time) (bool, error) {
	const op = "repository.reminder.SentSince"

	const query = `
	SELECT COUNT(*) FROM check_in_reminder
	WHERE user_id = uuid_to_bin(?) AND kind = ? AND last_sent >= ?;
	`

	var count int64
	if err := r.db.GetContext(ctx, &count, query, userID, kind, since); err != nil {
		return false, fmt.Errorf("%s: count reminders failed: %w", op, err)
	}

	return count > 0, nil
}
