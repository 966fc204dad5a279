package domain

import (
	"time"

	"github.com/google/uuid"
)

// OneTimeCode is the single live verification code of a user. The user_id
// column carries a unique key, so Issue/Resend upsert over any prior row and
// "at most one live code per user" holds without locking.
type OneTimeCode struct {
	ID          uuid.UUID `db:"id"`
	UserID      uuid.UUID `db:"user_id"`
	CodeHash    string    `db:"code_hash"`
	ExpiresAt   time.Time `db:"expires_at"`
	Attempts    int       `db:"attempts"`
	ResendCount int       `db:"resend_count"`
	LastSentAt  time.Time `db:"last_sent_at"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
