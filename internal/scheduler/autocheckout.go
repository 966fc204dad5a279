package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/attendly/backend/internal/domain"
	"github.com/attendly/backend/pkg/logger"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const fallbackEndOfDay = "17:00:00"

// parseWallClock reads "HH:MM" or "HH:MM:SS", falling back to 17:00:00 on
// anything malformed.
func parseWallClock(s string) (hour, minute, second int) {
	if _, err := fmt.Sscanf(s, "%d:%d:%d", &hour, &minute, &second); err == nil {
		if hour >= 0 && hour <= 23 && minute >= 0 && minute <= 59 && second >= 0 && second <= 59 {
			return hour, minute, second
		}
	}
	hour, minute, second = 0, 0, 0
	if _, err := fmt.Sscanf(s, "%d:%d", &hour, &minute); err == nil {
		if hour >= 0 && hour <= 23 && minute >= 0 && minute <= 59 {
			return hour, minute, 0
		}
	}
	return 17, 0, 0
}

func atWallClock(day time.Time, clock string) time.Time {
	h, m, sec := parseWallClock(clock)
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, sec, 0, day.Location())
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// checkoutTime computes where to close an abandoned attendance record. With
// no breaks on the check-in date the configured end of day wins; otherwise
// the last break decides (its end, or its start when still open). Anything
// that lands before check-in or on another date is clamped back to the end
// of day on the check-in date.
func checkoutTime(checkIn time.Time, breaks []*domain.Break, endOfDay string) time.Time {
	var out time.Time

	if len(breaks) == 0 {
		out = atWallClock(checkIn, endOfDay)
	} else {
		last := breaks[len(breaks)-1]
		if last.BreakEnd != nil {
			out = *last.BreakEnd
		} else {
			out = last.BreakStart
		}
	}

	if out.Before(checkIn) || !sameDate(out, checkIn) {
		out = atWallClock(checkIn, endOfDay)
	}

	return out
}

func (s *Scheduler) endOfDay(ctx context.Context) string {
	times, err := s.repos.Settings.GetAttendanceTimes(ctx)
	if err != nil {
		logger.Warn("read attendance times failed, using configured default",
			zap.Error(errors.Wrap(err, "attendance times")))
		return s.cfg.Attendance.CheckOutTime
	}
	if times.CheckOutTime == "" {
		return fallbackEndOfDay
	}
	return times.CheckOutTime
}

// runAutoCheckout closes every attendance record left open for over a day.
// Failures on single rows are logged and the scan continues.
func (s *Scheduler) runAutoCheckout(ctx context.Context) {
	now := time.Now().In(s.loc)
	logger.Info("auto-checkout run started", zap.Time("now", now))

	endOfDay := s.endOfDay(ctx)

	open, err := s.repos.Attendances.ListOpenBefore(ctx, now.Add(-24*time.Hour))
	if err != nil {
		logger.Error("list open attendances failed", zap.Error(err))
		return
	}

	processed := 0
	for _, attendance := range open {
		if err := s.closeAttendance(ctx, attendance, endOfDay); err != nil {
			logger.Error("auto-checkout failed",
				zap.String("user_id", attendance.UserID.String()),
				zap.Error(err))
			continue
		}
		processed++
		time.Sleep(perRowDelay)
	}

	cleaned := s.cleanupInvalid(ctx)

	logger.Info("auto-checkout run finished",
		zap.Int("open", len(open)),
		zap.Int("processed", processed),
		zap.Int("cleaned", cleaned))
}

func (s *Scheduler) closeAttendance(ctx context.Context, attendance *domain.Attendance, endOfDay string) error {
	checkIn := attendance.CheckInAt.In(s.loc)

	breaks, err := s.repos.Breaks.ListByUserBetween(ctx, attendance.UserID,
		atWallClock(checkIn, "00:00:00"),
		atWallClock(checkIn, "23:59:59"))
	if err != nil {
		return errors.Wrap(err, "list breaks")
	}

	checkOut := checkoutTime(checkIn, breaks, endOfDay)

	err = s.repos.Attendances.CloseOpen(ctx, attendance.UserID, attendance.CheckInAt, checkOut, domain.AttendanceAutoCheckout)
	if err == nil {
		return nil
	}

	// The keyed update can miss when the row moved underfoot; close by id as
	// the fallback path.
	logger.Warn("close by key failed, retrying by id",
		zap.String("attendance_id", attendance.ID.String()), zap.Error(err))

	if err := s.repos.Attendances.Close(ctx, attendance.ID, checkOut, domain.AttendanceAutoCheckout); err != nil {
		return errors.Wrap(err, "close by id")
	}

	return nil
}

// cleanupInvalid resets checkouts that drifted more than a calendar day away
// from their check-in; those rows are corrupt and go back to open.
func (s *Scheduler) cleanupInvalid(ctx context.Context) int {
	closed, err := s.repos.Attendances.ListClosed(ctx)
	if err != nil {
		logger.Error("list closed attendances failed", zap.Error(err))
		return 0
	}

	cleaned := 0
	for _, attendance := range closed {
		if attendance.CheckOutAt == nil {
			continue
		}
		gap := attendance.CheckOutAt.Sub(attendance.CheckInAt)
		if gap < 0 {
			gap = -gap
		}
		if sameDate(attendance.CheckInAt.In(s.loc), attendance.CheckOutAt.In(s.loc)) || gap <= 24*time.Hour {
			continue
		}

		if err := s.repos.Attendances.ResetCheckOut(ctx, attendance.ID); err != nil {
			logger.Error("reset invalid checkout failed",
				zap.String("attendance_id", attendance.ID.String()), zap.Error(err))
			continue
		}
		cleaned++
	}

	return cleaned
}
