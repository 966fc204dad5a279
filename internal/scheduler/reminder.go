package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/attendly/backend/internal/domain"
	"github.com/attendly/backend/internal/queue/client"
	"github.com/attendly/backend/internal/queue/task"
	"github.com/attendly/backend/pkg/logger"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"
)

const upcomingLead = 10 * time.Minute

func (s *Scheduler) checkInTime(ctx context.Context) string {
	times, err := s.repos.Settings.GetAttendanceTimes(ctx)
	if err != nil {
		logger.Warn("read attendance times failed, using configured default",
			zap.Error(pkgerrors.Wrap(err, "attendance times")))
		return s.cfg.Attendance.CheckInTime
	}
	if times.CheckInTime == "" {
		return s.cfg.Attendance.CheckInTime
	}
	return times.CheckInTime
}

// runReminders sends at most one "upcoming" and one "late" reminder per
// staff member per day, skipping anyone on approved leave or already checked
// in. Each send is guarded by a reminder row written after a successful
// enqueue.
func (s *Scheduler) runReminders(ctx context.Context) {
	now := time.Now().In(s.loc)
	today := atWallClock(now, "00:00:00")
	expected := atWallClock(now, s.checkInTime(ctx))
	upcomingFrom := expected.Add(-upcomingLead)

	if !now.After(upcomingFrom) {
		logger.Debug("too early for check-in reminders", zap.Time("expected", expected))
		return
	}

	staff, err := s.repos.Users.ListByRole(ctx, domain.RoleStaff)
	if err != nil {
		logger.Error("list staff failed", zap.Error(err))
		return
	}

	for _, user := range staff {
		if s.skipReminder(ctx, user, today) {
			continue
		}

		if now.Before(expected) {
			s.sendUpcomingReminder(ctx, user, today, expected)
		} else {
			s.sendLateReminder(ctx, user, today, expected, now)
		}

		time.Sleep(perRowDelay)
	}
}

// skipReminder filters staff who need no mail today: approved leave or an
// existing attendance row.
func (s *Scheduler) skipReminder(ctx context.Context, user *domain.User, today time.Time) bool {
	onLeave, err := s.repos.Leaves.HasApprovedOnDate(ctx, user.ID, today)
	if err != nil {
		logger.Error("leave lookup failed", zap.String("user_id", user.ID.String()), zap.Error(err))
		return true
	}
	if onLeave {
		return true
	}

	_, err = s.repos.Attendances.GetTodayByUser(ctx, user.ID, today)
	if err == nil {
		return true
	}
	if !errors.Is(err, domain.ErrNotFound) {
		logger.Error("attendance lookup failed", zap.String("user_id", user.ID.String()), zap.Error(err))
		return true
	}

	return false
}

func (s *Scheduler) alreadySent(ctx context.Context, userID uuid.UUID, kind domain.ReminderKind, today time.Time) bool {
	sent, err := s.repos.Reminders.SentSince(ctx, userID, kind, today)
	if err != nil {
		logger.Error("reminder lookup failed", zap.String("user_id", userID.String()), zap.Error(err))
		return true
	}
	return sent
}

func (s *Scheduler) sendUpcomingReminder(ctx context.Context, user *domain.User, today, expected time.Time) {
	if s.alreadySent(ctx, user.ID, domain.ReminderUpcoming, today) {
		return
	}

	subject := "Reminder: check-in time approaching"
	body := fmt.Sprintf(
		"<p>Dear %s,</p><p>Your expected check-in time is %s. Please check in on time.</p>",
		user.Name, expected.Format("15:04"))

	if !s.enqueueNotification(ctx, user.Email, subject, body) {
		return
	}

	s.recordReminder(ctx, user.ID, domain.ReminderUpcoming, 0)
}

func (s *Scheduler) sendLateReminder(ctx context.Context, user *domain.User, today, expected, now time.Time) {
	if s.alreadySent(ctx, user.ID, domain.ReminderLate, today) {
		return
	}

	minutesLate := int(now.Sub(expected).Minutes())

	subject := "You have not checked in today"
	body := fmt.Sprintf(
		"<p>Dear %s,</p><p>You have not checked in today. Expected check-in was %s; you are %d minutes late. Please check in immediately or contact HR.</p>",
		user.Name, expected.Format("15:04"), minutesLate)

	if !s.enqueueNotification(ctx, user.Email, subject, body) {
		return
	}

	if admin := s.cfg.Email.AdminEmail; admin != "" {
		adminSubject := fmt.Sprintf("Staff check-in alert - %s has not checked in", user.Name)
		adminBody := fmt.Sprintf(
			"<p>%s (%s) has not checked in today. Expected: %s, %d minutes late.</p>",
			user.Name, user.Email, expected.Format("15:04"), minutesLate)
		s.enqueueNotification(ctx, admin, adminSubject, adminBody)
	}

	s.recordReminder(ctx, user.ID, domain.ReminderLate, minutesLate)
}

// runAbsenceCheck notifies staff with neither an attendance record nor
// approved leave by end of day, once.
func (s *Scheduler) runAbsenceCheck(ctx context.Context) {
	now := time.Now().In(s.loc)
	today := atWallClock(now, "00:00:00")

	staff, err := s.repos.Users.ListByRole(ctx, domain.RoleStaff)
	if err != nil {
		logger.Error("list staff failed", zap.Error(err))
		return
	}

	for _, user := range staff {
		if s.skipReminder(ctx, user, today) {
			continue
		}
		if s.alreadySent(ctx, user.ID, domain.ReminderAbsent, today) {
			continue
		}

		subject := "Marked as absent - no check-in recorded today"
		body := fmt.Sprintf(
			"<p>Dear %s,</p><p>You have been marked as absent for %s: no check-in was recorded and no leave is approved. Contact HR if this is incorrect.</p>",
			user.Name, today.Format("2006-01-02"))

		if !s.enqueueNotification(ctx, user.Email, subject, body) {
			continue
		}

		if admin := s.cfg.Email.AdminEmail; admin != "" {
			adminSubject := fmt.Sprintf("Staff marked as absent - %s", user.Name)
			adminBody := fmt.Sprintf(
				"<p>%s (%s) has no check-in and no approved leave for %s.</p>",
				user.Name, user.Email, today.Format("2006-01-02"))
			s.enqueueNotification(ctx, admin, adminSubject, adminBody)
		}

		s.recordReminder(ctx, user.ID, domain.ReminderAbsent, 0)

		time.Sleep(perRowDelay)
	}
}

func (s *Scheduler) enqueueNotification(ctx context.Context, to, subject, body string) bool {
	t, err := task.NewSendNotificationEmailTask(to, subject, body)
	if err != nil {
		logger.Error("build notification task failed", zap.Error(err))
		return false
	}

	c := client.GetClient(ctx)
	if c == nil {
		logger.Error("queue client not configured")
		return false
	}

	if _, err := c.EnqueueContext(ctx, t); err != nil {
		logger.Error("enqueue notification failed", zap.String("to", to), zap.Error(err))
		return false
	}

	return true
}

func (s *Scheduler) recordReminder(ctx context.Context, userID uuid.UUID, kind domain.ReminderKind, minutesLate int) {
	id, err := uuid.NewV7()
	if err != nil {
		logger.Error("generate reminder id failed", zap.Error(err))
		return
	}

	reminder := &domain.CheckInReminder{
		ID:          id,
		UserID:      userID,
		Kind:        kind,
		MinutesLate: minutesLate,
		LastSent:    time.Now(),
	}

	if err := s.repos.Reminders.Create(ctx, reminder); err != nil {
		logger.Error("record reminder failed", zap.String("user_id", userID.String()), zap.Error(err))
	}
}
