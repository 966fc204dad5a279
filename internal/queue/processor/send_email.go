package processor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/attendly/backend/internal/queue/task"
	"github.com/attendly/backend/internal/worker"

	"github.com/hibiken/asynq"
)

type sendVerificationEmailProcessor struct {
	workers *worker.Workers
}

func NewSendVerificationEmailProcessor(workers *worker.Workers) *sendVerificationEmailProcessor {
	return &sendVerificationEmailProcessor{
		workers: workers,
	}
}

func (p *sendVerificationEmailProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var data task.SendVerificationEmail
	err := json.Unmarshal(t.Payload(), &data)
	if err != nil {
		return fmt.Errorf("process send verification email task json unmarshal failed: %w", err)
	}

	if err = p.workers.EmailSender.SendVerificationEmail(ctx, data.Email, data.VerificationCode); err != nil {
		return fmt.Errorf("send verification email failed: %w", err)
	}

	return nil
}

type sendNotificationEmailProcessor struct {
	workers *worker.Workers
}

func NewSendNotificationEmailProcessor(workers *worker.Workers) *sendNotificationEmailProcessor {
	return &sendNotificationEmailProcessor{
		workers: workers,
	}
}

func (p *sendNotificationEmailProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var data task.SendNotificationEmail
	err := json.Unmarshal(t.Payload(), &data)
	if err != nil {
		return fmt.Errorf("process send notification email task json unmarshal failed: %w", err)
	}

	if err = p.workers.EmailSender.SendNotificationEmail(ctx, data.Email, data.Subject, data.Body); err != nil {
		return fmt.Errorf("send notification email failed: %w", err)
	}

	return nil
}
