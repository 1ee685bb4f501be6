package service

import "go.uber.org/zap"

// Mailer is the outbound notification boundary. Implementations must not
// block callers; the core only ever fires and forgets.
type Mailer interface {
	Send(to, subject, body string)
}

// LogMailer is the default Mailer: it records the message instead of
// delivering it. Real delivery is wired in by the deployment.
type LogMailer struct{}

func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

func (m *LogMailer) Send(to, subject, body string) {
	zap.L().Info("mail (not delivered)",
		zap.String("to", to),
		zap.String("subject", subject),
	)
}
