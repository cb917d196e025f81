package services

import (
	"fmt"
	"net"
	"net/smtp"

	"review-backend/internal/config"

	"github.com/sirupsen/logrus"
)

const (
	mailSubject = "Your confirmation code"
	mailBody    = "Your confirmation code is %s"
)

// Mailer delivers confirmation codes out-of-band.
type Mailer interface {
	SendConfirmationCode(email, code string) error
}

// NewMailer returns an SMTP-backed mailer, or a logging stand-in when no
// SMTP host is configured (local development).
func NewMailer(cfg config.MailConfig, logger *logrus.Logger) Mailer {
	if cfg.SMTPHost == "" {
		return &logMailer{logger: logger}
	}
	return &smtpMailer{cfg: cfg, logger: logger}
}

type smtpMailer struct {
	cfg    config.MailConfig
	logger *logrus.Logger
}

func (m *smtpMailer) SendConfirmationCode(email, code string) error {
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n"+mailBody+"\r\n",
		m.cfg.From, email, mailSubject, code,
	))
	addr := net.JoinHostPort(m.cfg.SMTPHost, m.cfg.SMTPPort)
	if err := smtp.SendMail(addr, nil, m.cfg.From, []string{email}, msg); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}
	return nil
}

type logMailer struct {
	logger *logrus.Logger
}

func (m *logMailer) SendConfirmationCode(email, code string) error {
	m.logger.WithFields(logrus.Fields{
		"email": email,
		"code":  code,
	}).Info("SMTP not configured, logging confirmation code")
	return nil
}
