package mail

import (
	"context"
	"log/slog"
)

// Log writes messages to the structured log instead of sending them.
type Log struct{}

// Send implements Mail.
func (Log) Send(ctx context.Context, msg Message) error {
	if len(msg.recipients()) == 0 {
		return ErrSMTPNoRecipients
	}
	slog.InfoContext(ctx, "mail not sent (log driver)", "to", msg.To, "subject", msg.Subject, "text", msg.TextBody)
	return nil
}

// Close implements io.Closer.
func (Log) Close() error { return nil }
