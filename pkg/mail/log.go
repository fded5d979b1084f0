package mail

import (
	"context"

	"github.com/rs/zerolog"
)

// LogSender only records that a message would have been sent.
// Used when no provider key is configured (local development).
type LogSender struct {
	log zerolog.Logger
}

func NewLogSender(log zerolog.Logger) *LogSender {
	return &LogSender{log: log.With().Str("component", "mail.log").Logger()}
}

func (s *LogSender) Send(_ context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	s.log.Info().Strs("to", msg.To).Str("subject", msg.Subject).Msg("email not sent: no provider configured")
	return nil
}
