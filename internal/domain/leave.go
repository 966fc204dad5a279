package domain

import (
	"time"

	"github.com/google/uuid"
)

type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

type Leave struct {
	ID        uuid.UUID   `db:"id" json:"id"`
	UserID    uuid.UUID   `db:"user_id" json:"user_id"`
	StartDate time.Time   `db:"start_date" json:"start_date"`
	EndDate   time.Time   `db:"end_date" json:"end_date"`
	Status    LeaveStatus `db:"status" json:"status"`
	CreatedAt time.Time   `db:"created_at" json:"created_at"`
}
