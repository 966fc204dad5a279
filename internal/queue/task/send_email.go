package task

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	SendVerificationEmailTaskName = "sendVerificationEmailTask"
	SendNotificationEmailTaskName = "sendNotificationEmailTask"
	EmailQueueName                = "emailQueue"
)

type SendVerificationEmail struct {
	Email            string `json:"email"`
	VerificationCode string `json:"verification_code"`
}

func NewSendVerificationEmailTask(email string, verificationCode string) (*asynq.Task, error) {
	var data SendVerificationEmail
	data.Email = email
	data.VerificationCode = verificationCode

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("json data marshal failed: %w", err)
	}

	return asynq.NewTask(
		SendVerificationEmailTaskName,
		payload,
		asynq.MaxRetry(5),
		asynq.Queue(EmailQueueName),
	), nil
}

// SendNotificationEmail carries fully rendered mail, used by the schedulers
// for reminder and absence notices.
type SendNotificationEmail struct {
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func NewSendNotificationEmailTask(email, subject, body string) (*asynq.Task, error) {
	var data SendNotificationEmail
	data.Email = email
	data.Subject = subject
	data.Body = body

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("json data marshal failed: %w", err)
	}

	return asynq.NewTask(
		SendNotificationEmailTaskName,
		payload,
		asynq.MaxRetry(5),
		asynq.Queue(EmailQueueName),
	), nil
}
