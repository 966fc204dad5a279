package repository

import (
	"context"
	"time"

	"github.com/attendly/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Users       Users
	Codes       Codes
	Attendances Attendances
	Breaks      Breaks
	Leaves      Leaves
	Reminders   Reminders
	Settings    Settings
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Users:       newUserRepository(db),
		Codes:       newCodeRepository(db),
		Attendances: newAttendanceRepository(db),
		Breaks:      newBreakRepository(db),
		Leaves:      newLeaveRepository(db),
		Reminders:   newReminderRepository(db),
		Settings:    newSettingRepository(db),
	}
}

type Users interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetOneByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	SetVerified(ctx context.Context, id uuid.UUID) error
	UpdatePinHash(ctx context.Context, id uuid.UUID, pinHash string) error
	UpdatePreferredOfflineBalance(ctx context.Context, id uuid.UUID, value float64) error
	List(ctx context.Context, offset, limit int) ([]*domain.User, error)
	ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)
	Count(ctx context.Context) (int64, error)
}

type Codes interface {
	Upsert(ctx context.Context, code *domain.OneTimeCode) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.OneTimeCode, error)
	IncrementAttempts(ctx context.Context, id uuid.UUID, expectedAttempts int) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type Attendances interface {
	Create(ctx context.Context, attendance *domain.Attendance) error
	GetTodayByUser(ctx context.Context, userID uuid.UUID, dayStart time.Time) (*domain.Attendance, error)
	CloseOpen(ctx context.Context, userID uuid.UUID, checkInAt, checkOutAt time.Time, status domain.AttendanceStatus) error
	Close(ctx context.Context, id uuid.UUID, checkOutAt time.Time, status domain.AttendanceStatus) error
	ListOpenBefore(ctx context.Context, cutoff time.Time) ([]*domain.Attendance, error)
	ListClosed(ctx context.Context) ([]*domain.Attendance, error)
	ResetCheckOut(ctx context.Context, id uuid.UUID) error
}

type Breaks interface {
	Create(ctx context.Context, brk *domain.Break) error
	GetOpenByUser(ctx context.Context, userID uuid.UUID) (*domain.Break, error)
	End(ctx context.Context, id uuid.UUID, endedAt time.Time) error
	ListByUserBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*domain.Break, error)
}

type Leaves interface {
	HasApprovedOnDate(ctx context.Context, userID uuid.UUID, date time.Time) (bool, error)
}

type Reminders interface {
	Create(ctx context.Context, reminder *domain.CheckInReminder) error
	SentSince(ctx context.Context, userID uuid.UUID, kind domain.ReminderKind, since time.Time) (bool, error)
}

type Settings interface {
	GetAttendanceTimes(ctx context.Context) (*domain.AttendanceTimes, error)
	UpdateAttendanceTimes(ctx context.Context, times *domain.AttendanceTimes) error
}
