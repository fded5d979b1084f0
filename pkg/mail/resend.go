package mail

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

type resendEmails interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// ResendSender delivers messages through the Resend HTTP API.
type ResendSender struct {
	emails resendEmails
	from   string
	log    zerolog.Logger
}

func NewResendSender(apiKey, from string, log zerolog.Logger) *ResendSender {
	client := resend.NewClient(apiKey)
	return newResendSender(client.Emails, from, log)
}

func newResendSender(emails resendEmails, from string, log zerolog.Logger) *ResendSender {
	return &ResendSender{emails: emails, from: from, log: log.With().Str("component", "mail.resend").Logger()}
}

func (s *ResendSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	resp, err := s.emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("resend: send %q: %w", msg.Subject, err)
	}
	s.log.Debug().Str("id", resp.Id).Str("subject", msg.Subject).Msg("email sent")
	return nil
}
