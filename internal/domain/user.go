package domain

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleStaff Role = "staff"
	RoleAdmin Role = "admin"
)

type User struct {
	ID           uuid.UUID      `db:"id" json:"id"`
	Name         string         `db:"name" json:"name"`
	Email        string         `db:"email" json:"email"`
	PasswordHash string         `db:"password_hash" json:"-"`
	PinHash      sql.NullString `db:"pin_hash" json:"-"`
	Role         Role           `db:"role" json:"role"`
	Verified     bool           `db:"verified" json:"verified"`

	Balance                 sql.NullFloat64 `db:"balance" json:"balance"`
	OnlineBalance           sql.NullFloat64 `db:"online_balance" json:"online_balance"`
	OfflineBalance          sql.NullFloat64 `db:"offline_balance" json:"offline_balance"`
	OnlineLimit             sql.NullFloat64 `db:"online_limit" json:"online_limit"`
	OfflineLimit            sql.NullFloat64 `db:"offline_limit" json:"offline_limit"`
	PreferredOfflineBalance sql.NullFloat64 `db:"preferred_offline_balance" json:"preferred_offline_balance"`
	Currency                sql.NullString  `db:"currency" json:"currency"`

	ProfilePicture sql.NullString `db:"profile_picture" json:"profile_picture"`
	Address        sql.NullString `db:"address" json:"address"`
	Phone          sql.NullString `db:"phone" json:"phone"`

	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
}

// HasPin reports whether a numeric PIN has ever been set for the account.
func (u *User) HasPin() bool {
	return u.PinHash.Valid && u.PinHash.String != ""
}
