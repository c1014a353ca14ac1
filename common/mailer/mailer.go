package mailer

import (
	"context"

	"github.com/brickengine/publisher/common/logger"
)

// Mailer dispatches a single email. Implementations are best-effort: the
// submission workflow never blocks on or fails because of a send.
type Mailer interface {
	Send(ctx context.Context, to, subject, html string) error
}

// Nop is a disabled mailer used when no API key is configured
type Nop struct {
	log *logger.Logger
}

// NewNop creates a mailer that drops every message
func NewNop(log *logger.Logger) *Nop {
	return &Nop{log: log}
}

// Send logs and discards the message
func (n *Nop) Send(_ context.Context, to, subject, _ string) error {
	n.log.Debug("email disabled, dropping message", "to", to, "subject", subject)
	return nil
}
