package mailer

import (
	"context"

	"go.uber.org/zap"
)

// LogSender writes messages to the log instead of delivering them. It is
// used when no mail service is configured.
type LogSender struct {
	log *zap.Logger
}

func NewLogSender(log *zap.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, msg Message) error {
	if msg.To == "" {
		return ErrNoRecipient
	}
	s.log.Info("email (not delivered, no mail service configured)",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Int("body_bytes", len(msg.Body)),
	)
	return nil
}
