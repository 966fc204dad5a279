package service

import (
	"context"
	"time"

	"github.com/attendly/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SetVerified(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePinHash(ctx context.Context, id uuid.UUID, pinHash string) error {
	args := m.Called(ctx, id, pinHash)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePreferredOfflineBalance(ctx context.Context, id uuid.UUID, value float64) error {
	args := m.Called(ctx, id, value)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockCodeRepository struct {
	mock.Mock
}

func (m *MockCodeRepository) Upsert(ctx context.Context, code *domain.OneTimeCode) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockCodeRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.OneTimeCode, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OneTimeCode), args.Error(1)
}

func (m *MockCodeRepository) IncrementAttempts(ctx context.Context, id uuid.UUID, expectedAttempts int) error {
	args := m.Called(ctx, id, expectedAttempts)
	return args.Error(0)
}

func (m *MockCodeRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockAttendanceRepository struct {
	mock.Mock
}

func (m *MockAttendanceRepository) Create(ctx context.Context, attendance *domain.Attendance) error {
	args := m.Called(ctx, attendance)
	return args.Error(0)
}

func (m *MockAttendanceRepository) GetTodayByUser(ctx context.Context, userID uuid.UUID, dayStart time.Time) (*domain.Attendance, error) {
	args := m.Called(ctx, userID, dayStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attendance), args.Error(1)
}

func (m *MockAttendanceRepository) CloseOpen(ctx context.Context, userID uuid.UUID, checkInAt, checkOutAt time.Time, status domain.AttendanceStatus) error {
	args := m.Called(ctx, userID, checkInAt, checkOutAt, status)
	return args.Error(0)
}

func (m *MockAttendanceRepository) Close(ctx context.Context, id uuid.UUID, checkOutAt time.Time, status domain.AttendanceStatus) error {
	args := m.Called(ctx, id, checkOutAt, status)
	return args.Error(0)
}

func (m *MockAttendanceRepository) ListOpenBefore(ctx context.Context, cutoff time.Time) ([]*domain.Attendance, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Attendance), args.Error(1)
}

func (m *MockAttendanceRepository) ListClosed(ctx context.Context) ([]*domain.Attendance, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Attendance), args.Error(1)
}

func (m *MockAttendanceRepository) ResetCheckOut(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockBreakRepository struct {
	mock.Mock
}

func (m *MockBreakRepository) Create(ctx context.Context, brk *domain.Break) error {
	args := m.Called(ctx, brk)
	return args.Error(0)
}

func (m *MockBreakRepository) GetOpenByUser(ctx context.Context, userID uuid.UUID) (*domain.Break, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Break), args.Error(1)
}

func (m *MockBreakRepository) End(ctx context.Context, id uuid.UUID, endedAt time.Time) error {
	args := m.Called(ctx, id, endedAt)
	return args.Error(0)
}

func (m *MockBreakRepository) ListByUserBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*domain.Break, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Break), args.Error(1)
}

type MockSettingRepository struct {
	mock.Mock
}

func (m *MockSettingRepository) GetAttendanceTimes(ctx context.Context) (*domain.AttendanceTimes, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AttendanceTimes), args.Error(1)
}

func (m *MockSettingRepository) UpdateAttendanceTimes(ctx context.Context, times *domain.AttendanceTimes) error {
	args := m.Called(ctx, times)
	return args.Error(0)
}

type MockHasher struct {
	mock.Mock
}

func (m *MockHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockHasher) Compare(hashed, password string) bool {
	args := m.Called(hashed, password)
	return args.Bool(0)
}

type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) NewJWT(userID uuid.UUID) (string, time.Duration, error) {
	args := m.Called(userID)
	return args.String(0), args.Get(1).(time.Duration), args.Error(2)
}

func (m *MockTokenManager) Parse(accessToken string) (string, error) {
	args := m.Called(accessToken)
	return args.String(0), args.Error(1)
}

type MockOtpGenerator struct {
	mock.Mock
}

func (m *MockOtpGenerator) RandomCode(length int) (string, error) {
	args := m.Called(length)
	return args.String(0), args.Error(1)
}
