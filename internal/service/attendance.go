package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/attendly/backend/internal/domain"
	"github.com/attendly/backend/internal/repository"

	"github.com/google/uuid"
)

type attendanceService struct {
	attendanceRepository repository.Attendances
	breakRepository      repository.Breaks
	settingRepository    repository.Settings
}

func newAttendanceService(
	attendanceRepository repository.Attendances,
	breakRepository repository.Breaks,
	settingRepository repository.Settings,
) *attendanceService {
	return &attendanceService{
		attendanceRepository: attendanceRepository,
		breakRepository:      breakRepository,
		settingRepository:    settingRepository,
	}
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (s *attendanceService) CheckIn(ctx context.Context, userID uuid.UUID) (*domain.Attendance, error) {
	now := time.Now()

	existing, err := s.attendanceRepository.GetTodayByUser(ctx, userID, dayStart(now))
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get today attendance failed: %w", err)
	}
	if existing != nil && existing.CheckOutAt == nil {
		return nil, ErrAlreadyCheckedIn
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate attendance id failed: %w", err)
	}

	attendance := &domain.Attendance{
		ID:        id,
		UserID:    userID,
		CheckInAt: now,
		Status:    domain.AttendanceOpen,
	}

	if err := s.attendanceRepository.Create(ctx, attendance); err != nil {
		return nil, fmt.Errorf("create attendance failed: %w", err)
	}

	return attendance, nil
}

func (s *attendanceService) CheckOut(ctx context.Context, userID uuid.UUID) (*domain.Attendance, error) {
	now := time.Now()

	attendance, err := s.attendanceRepository.GetTodayByUser(ctx, userID, dayStart(now))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get today attendance failed: %w", err)
	}

	if attendance.CheckOutAt != nil {
		return nil, domain.ErrNotFound
	}

	if err := s.attendanceRepository.Close(ctx, attendance.ID, now, domain.AttendanceCheckedOut); err != nil {
		return nil, fmt.Errorf("close attendance failed: %w", err)
	}

	attendance.CheckOutAt = &now
	attendance.Status = domain.AttendanceCheckedOut

	return attendance, nil
}

func (s *attendanceService) Today(ctx context.Context, userID uuid.UUID) (*domain.Attendance, error) {
	return s.attendanceRepository.GetTodayByUser(ctx, userID, dayStart(time.Now()))
}

func (s *attendanceService) StartBreak(ctx context.Context, userID uuid.UUID) (*domain.Break, error) {
	if _, err := s.breakRepository.GetOpenByUser(ctx, userID); err == nil {
		return nil, ErrBreakAlreadyOpen
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get open break failed: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate break id failed: %w", err)
	}

	brk := &domain.Break{
		ID:         id,
		UserID:     userID,
		BreakStart: time.Now(),
	}

	if err := s.breakRepository.Create(ctx, brk); err != nil {
		return nil, fmt.Errorf("create break failed: %w", err)
	}

	return brk, nil
}

func (s *attendanceService) EndBreak(ctx context.Context, userID uuid.UUID) (*domain.Break, error) {
	brk, err := s.breakRepository.GetOpenByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get open break failed: %w", err)
	}

	now := time.Now()
	if err := s.breakRepository.End(ctx, brk.ID, now); err != nil {
		return nil, fmt.Errorf("end break failed: %w", err)
	}

	brk.BreakEnd = &now

	return brk, nil
}

func (s *attendanceService) GetAttendanceTimes(ctx context.Context) (*domain.AttendanceTimes, error) {
	return s.settingRepository.GetAttendanceTimes(ctx)
}

func (s *attendanceService) UpdateAttendanceTimes(ctx context.Context, times *domain.AttendanceTimes) error {
	return s.settingRepository.UpdateAttendanceTimes(ctx, times)
}
