package worker

import (
	"context"
	"testing"

	"github.com/attendly/backend/internal/config"
	"github.com/attendly/backend/pkg/email"
	mock_email "github.com/attendly/backend/pkg/email/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEmailSender_SendNotificationEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled config skips sending", func(t *testing.T) {
		provider := new(mock_email.EmailSender)
		sender := newEmailSender(provider, config.EmailConfig{Enabled: false})

		err := sender.SendNotificationEmail(ctx, "staff@example.com", "subject", "<p>body</p>")

		require.NoError(t, err)
		provider.AssertNotCalled(t, "Send", mock.Anything)
	})

	t.Run("sends rendered notification", func(t *testing.T) {
		provider := new(mock_email.EmailSender)
		sender := newEmailSender(provider, config.EmailConfig{Enabled: true})

		var sent email.SendEmailInput
		provider.On("Send", mock.AnythingOfType("email.SendEmailInput")).
			Run(func(args mock.Arguments) {
				sent = args.Get(0).(email.SendEmailInput)
			}).
			Return(nil)

		err := sender.SendNotificationEmail(ctx, "staff@example.com", "You have not checked in today", "<p>body</p>")

		require.NoError(t, err)
		assert.Equal(t, "staff@example.com", sent.To)
		assert.Equal(t, "You have not checked in today", sent.Subject)
		assert.Equal(t, "<p>body</p>", sent.Body)
	})
}
