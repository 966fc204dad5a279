package service

import (
	"context"
	"testing"
	"time"

	"github.com/attendly/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type attendanceServiceMocks struct {
	attendances *MockAttendanceRepository
	breaks      *MockBreakRepository
	settings    *MockSettingRepository
}

func newTestAttendanceService() (*attendanceService, attendanceServiceMocks) {
	m := attendanceServiceMocks{
		attendances: new(MockAttendanceRepository),
		breaks:      new(MockBreakRepository),
		settings:    new(MockSettingRepository),
	}
	return newAttendanceService(m.attendances, m.breaks, m.settings), m
}

func TestAttendanceService_CheckIn(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("creates an open record", func(t *testing.T) {
		svc, m := newTestAttendanceService()

		m.attendances.On("GetTodayByUser", ctx, userID, mock.AnythingOfType("time.Time")).
			Return(nil, domain.ErrNotFound)
		m.attendances.On("Create", ctx, mock.AnythingOfType("*domain.Attendance")).Return(nil)

		attendance, err := svc.CheckIn(ctx, userID)

		require.NoError(t, err)
		assert.Equal(t, domain.AttendanceOpen, attendance.Status)
		assert.Equal(t, userID, attendance.UserID)
		assert.Nil(t, attendance.CheckOutAt)
	})

	t.Run("rejects a second open check-in", func(t *testing.T) {
		svc, m := newTestAttendanceService()
		open := &domain.Attendance{
			ID:        uuid.New(),
			UserID:    userID,
			CheckInAt: time.Now().Add(-time.Hour),
			Status:    domain.AttendanceOpen,
		}

		m.attendances.On("GetTodayByUser", ctx, userID, mock.AnythingOfType("time.Time")).
			Return(open, nil)

		_, err := svc.CheckIn(ctx, userID)

		assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
		m.attendances.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAttendanceService_CheckOut(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("closes today's open record", func(t *testing.T) {
		svc, m := newTestAttendanceService()
		open := &domain.Attendance{
			ID:        uuid.New(),
			UserID:    userID,
			CheckInAt: time.Now().Add(-8 * time.Hour),
			Status:    domain.AttendanceOpen,
		}

		m.attendances.On("GetTodayByUser", ctx, userID, mock.AnythingOfType("time.Time")).
			Return(open, nil)
		m.attendances.On("Close", ctx, open.ID, mock.AnythingOfType("time.Time"), domain.AttendanceCheckedOut).
			Return(nil)

		attendance, err := svc.CheckOut(ctx, userID)

		require.NoError(t, err)
		assert.Equal(t, domain.AttendanceCheckedOut, attendance.Status)
		assert.NotNil(t, attendance.CheckOutAt)
	})

	t.Run("no record today", func(t *testing.T) {
		svc, m := newTestAttendanceService()

		m.attendances.On("GetTodayByUser", ctx, userID, mock.AnythingOfType("time.Time")).
			Return(nil, domain.ErrNotFound)

		_, err := svc.CheckOut(ctx, userID)

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("already checked out", func(t *testing.T) {
		svc, m := newTestAttendanceService()
		out := time.Now().Add(-time.Hour)
		closed := &domain.Attendance{
			ID:         uuid.New(),
			UserID:     userID,
			CheckInAt:  time.Now().Add(-9 * time.Hour),
			CheckOutAt: &out,
			Status:     domain.AttendanceCheckedOut,
		}

		m.attendances.On("GetTodayByUser", ctx, userID, mock.AnythingOfType("time.Time")).
			Return(closed, nil)

		_, err := svc.CheckOut(ctx, userID)

		assert.ErrorIs(t, err, domain.ErrNotFound)
		m.attendances.AssertNotCalled(t, "Close", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAttendanceService_Breaks(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("start rejects a second open break", func(t *testing.T) {
		svc, m := newTestAttendanceService()
		open := &domain.Break{ID: uuid.New(), UserID: userID, BreakStart: time.Now()}

		m.breaks.On("GetOpenByUser", ctx, userID).Return(open, nil)

		_, err := svc.StartBreak(ctx, userID)

		assert.ErrorIs(t, err, ErrBreakAlreadyOpen)
	})

	t.Run("start opens a break", func(t *testing.T) {
		svc, m := newTestAttendanceService()

		m.breaks.On("GetOpenByUser", ctx, userID).Return(nil, domain.ErrNotFound)
		m.breaks.On("Create", ctx, mock.AnythingOfType("*domain.Break")).Return(nil)

		brk, err := svc.StartBreak(ctx, userID)

		require.NoError(t, err)
		assert.Equal(t, userID, brk.UserID)
		assert.Nil(t, brk.BreakEnd)
	})

	t.Run("end without an open break", func(t *testing.T) {
		svc, m := newTestAttendanceService()

		m.breaks.On("GetOpenByUser", ctx, userID).Return(nil, domain.ErrNotFound)

		_, err := svc.EndBreak(ctx, userID)

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("end closes the open break", func(t *testing.T) {
		svc, m := newTestAttendanceService()
		open := &domain.Break{ID: uuid.New(), UserID: userID, BreakStart: time.Now().Add(-30 * time.Minute)}

		m.breaks.On("GetOpenByUser", ctx, userID).Return(open, nil)
		m.breaks.On("End", ctx, open.ID, mock.AnythingOfType("time.Time")).Return(nil)

		brk, err := svc.EndBreak(ctx, userID)

		require.NoError(t, err)
		assert.NotNil(t, brk.BreakEnd)
	})
}
