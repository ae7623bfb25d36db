package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"github.com/quantifun/uxrp/internal/core/port"
	"github.com/quantifun/uxrp/internal/infra/logger"
)

// LogMailer records verification dispatches through structured logging
// instead of delivering them. Used in development and tests, where the raw
// token in the log is the delivery channel.
type LogMailer struct {
	logger *zap.Logger
}

// NewLogMailer constructs a logging-backed verification mailer.
func NewLogMailer(log *zap.Logger) *LogMailer {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogMailer{logger: log}
}

func (m *LogMailer) SendVerification(_ context.Context, email, token string) error {
	m.logger.Info("dispatch verification mail",
		zap.String("email", logger.MaskEmail(email)),
		zap.String("token", token),
	)
	return nil
}

// SMTPMailer delivers verification tokens over plain SMTP. Errors surface
// to the caller: a user who never receives the token cannot verify, so a
// failed dispatch fails the registration.
type SMTPMailer struct {
	addr   string
	from   string
	logger *zap.Logger
}

// NewSMTPMailer constructs an SMTP-backed verification mailer.
func NewSMTPMailer(addr, from string, log *zap.Logger) *SMTPMailer {
	if log == nil {
		log = zap.NewNop()
	}
	return &SMTPMailer{addr: addr, from: from, logger: log}
}

func (m *SMTPMailer) SendVerification(_ context.Context, email, token string) error {
	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", m.from),
		fmt.Sprintf("To: %s", email),
		"Subject: Verify your email address",
		"",
		"Use the token below to verify your email address:",
		"",
		token,
		"",
	}, "\r\n")

	if err := smtp.SendMail(m.addr, nil, m.from, []string{email}, []byte(msg)); err != nil {
		return fmt.Errorf("send verification mail: %w", err)
	}

	m.logger.Info("verification mail sent", zap.String("email", logger.MaskEmail(email)))
	return nil
}

var (
	_ port.VerificationMailer = (*LogMailer)(nil)
	_ port.VerificationMailer = (*SMTPMailer)(nil)
)
