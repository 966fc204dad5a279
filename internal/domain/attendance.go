package domain

import (
	"time"

	"github.com/google/uuid"
)

type AttendanceStatus string

const (
	AttendanceOpen         AttendanceStatus = "open"
	AttendanceCheckedOut   AttendanceStatus = "checked_out"
	AttendanceAutoCheckout AttendanceStatus = "auto_checkout"
)

// Attendance is one check-in event. A row with a null CheckOutAt is "open"
// and is the unit the nightly auto-checkout job operates on.
type Attendance struct {
	ID         uuid.UUID        `db:"id" json:"id"`
	UserID     uuid.UUID        `db:"user_id" json:"user_id"`
	CheckInAt  time.Time        `db:"check_in_at" json:"check_in_at"`
	CheckOutAt *time.Time       `db:"check_out_at" json:"check_out_at"`
	Status     AttendanceStatus `db:"status" json:"status"`
	CreatedAt  time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time        `db:"updated_at" json:"updated_at"`
}

type Break struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	UserID     uuid.UUID  `db:"user_id" json:"user_id"`
	BreakStart time.Time  `db:"break_start" json:"break_start"`
	BreakEnd   *time.Time `db:"break_end" json:"break_end"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}
