package worker

import (
	"context"

	"github.com/attendly/backend/internal/config"
	emailProvider "github.com/attendly/backend/pkg/email"
)

type Workers struct {
	EmailSender EmailSender
}

type Deps struct {
	EmailProvider emailProvider.Sender
	Config        *config.Config
}

type EmailSender interface {
	SendVerificationEmail(ctx context.Context, email string, verificationCode string) error
	SendNotificationEmail(ctx context.Context, email, subject, body string) error
}

func NewWorkers(deps Deps) *Workers {
	return &Workers{
		EmailSender: newEmailSender(deps.EmailProvider, deps.Config.Email),
	}
}
