package domain

import (
	"time"

	"github.com/google/uuid"
)

type ReminderKind string

const (
	ReminderUpcoming ReminderKind = "upcoming"
	ReminderLate     ReminderKind = "late"
	ReminderAbsent   ReminderKind = "absent"
)

// CheckInReminder records that a reminder of a given kind was sent to a user.
// The schedulers look the latest row up per user/kind/day to guarantee at
// most one mail of each kind per day.
type CheckInReminder struct {
	ID          uuid.UUID    `db:"id"`
	UserID      uuid.UUID    `db:"user_id"`
	Kind        ReminderKind `db:"kind"`
	MinutesLate int          `db:"minutes_late"`
	LastSent    time.Time    `db:"last_sent"`
	CreatedAt   time.Time    `db:"created_at"`
}
