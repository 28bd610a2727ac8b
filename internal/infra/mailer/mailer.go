package mailer

import (
	"context"

	"go.uber.org/zap"
)

// Mailer is the outbound email collaborator. Delivery itself lives outside
// this service; the accounts flow only needs somewhere to hand messages off.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogMailer logs messages instead of delivering them. Used in dev and test
// environments where no relay is configured.
type LogMailer struct {
	from string
	log  *zap.Logger
}

func NewLogMailer(from string, log *zap.Logger) *LogMailer {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogMailer{from: from, log: log}
}

func (m *LogMailer) Send(_ context.Context, to, subject, body string) error {
	m.log.Info("outbound email",
		zap.String("from", m.from),
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}
