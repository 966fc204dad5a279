package service

import (
	"context"
	"time"

	"github.com/attendly/backend/internal/config"
	"github.com/attendly/backend/internal/domain"
	"github.com/attendly/backend/internal/repository"
	"github.com/attendly/backend/pkg/auth"
	"github.com/attendly/backend/pkg/hash"
	"github.com/attendly/backend/pkg/otp"

	"github.com/google/uuid"
)

type Services struct {
	Users       Users
	Attendances Attendances
}

type Deps struct {
	Config       *config.Config
	Hasher       hash.PasswordHasher
	TokenManager auth.TokenManager
	OtpGenerator otp.Generator
	Repos        *repository.Repositories
}

func NewServices(deps Deps) *Services {
	return &Services{
		Users: newUserService(
			deps.Repos.Users,
			deps.Repos.Codes,
			deps.Hasher,
			deps.TokenManager,
			deps.OtpGenerator,
			deps.Config.OTP,
		),
		Attendances: newAttendanceService(
			deps.Repos.Attendances,
			deps.Repos.Breaks,
			deps.Repos.Settings,
		),
	}
}

type SignUpInput struct {
	Name     string
	Email    string
	Password string
}

type Token struct {
	AccessToken string
	TTL         time.Duration
}

type PinInput struct {
	Pin           string
	OldPin        string
	NewPin        string
	ConfirmNewPin string
}

type Users interface {
	SignUp(ctx context.Context, input SignUpInput) (*domain.User, error)
	SignIn(ctx context.Context, email, password string) (*Token, *domain.User, error)
	VerifyEmail(ctx context.Context, email, code string) error
	ResendCode(ctx context.Context, email string) error
	GetOneByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	SetOrUpdatePin(ctx context.Context, userID uuid.UUID, input PinInput) (created bool, err error)
	UpdatePreferredOfflineBalance(ctx context.Context, userID uuid.UUID, value float64) error
	List(ctx context.Context, page, limit int) ([]*domain.User, int64, error)
}

type Attendances interface {
	CheckIn(ctx context.Context, userID uuid.UUID) (*domain.Attendance, error)
	CheckOut(ctx context.Context, userID uuid.UUID) (*domain.Attendance, error)
	Today(ctx context.Context, userID uuid.UUID) (*domain.Attendance, error)
	StartBreak(ctx context.Context, userID uuid.UUID) (*domain.Break, error)
	EndBreak(ctx context.Context, userID uuid.UUID) (*domain.Break, error)
	GetAttendanceTimes(ctx context.Context) (*domain.AttendanceTimes, error)
	UpdateAttendanceTimes(ctx context.Context, times *domain.AttendanceTimes) error
}
