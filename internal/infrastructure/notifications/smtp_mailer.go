package notifications

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/deva-prakash-j/lurniq-api/domain"
)

// SMTPMailerImpl implements domain.MailerService over plain SMTP. Dispatch is
// asynchronous and best-effort: Send* methods return immediately and failures
// are logged, so a dead mail server never fails the triggering operation.
type SMTPMailerImpl struct {
	host              string
	port              int
	username          string
	password          string
	from              string
	fromName          string
	activationBaseURL string
	frontendBaseURL   string
}

// MailerConfig holds SMTP and link-building settings
type MailerConfig struct {
	Host              string
	Port              int
	Username          string
	Password          string
	From              string
	FromName          string
	ActivationBaseURL string
	FrontendBaseURL   string
}

// NewSMTPMailer creates a new SMTP mailer
func NewSMTPMailer(cfg MailerConfig) domain.MailerService {
	return &SMTPMailerImpl{
		host:              cfg.Host,
		port:              cfg.Port,
		username:          cfg.Username,
		password:          cfg.Password,
		from:              cfg.From,
		fromName:          cfg.FromName,
		activationBaseURL: cfg.ActivationBaseURL,
		frontendBaseURL:   cfg.FrontendBaseURL,
	}
}

// SendActivationEmail implements domain.MailerService
func (m *SMTPMailerImpl) SendActivationEmail(to, name, secret string) error {
	link := fmt.Sprintf("%s?token=%s", m.activationBaseURL, secret)
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nWelcome to Lurniq! Please activate your account within 24 hours:\r\n\r\n%s\r\n\r\nIf you did not create this account you can ignore this email.\r\n",
		name, link)
	m.dispatch(to, "Activate your Lurniq account", body)
	return nil
}

// SendPasswordResetEmail implements domain.MailerService
func (m *SMTPMailerImpl) SendPasswordResetEmail(to, name, secret string) error {
	link := fmt.Sprintf("%s/auth/reset-password?token=%s", m.frontendBaseURL, secret)
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nWe received a request to reset your password. The link below is valid for 1 hour:\r\n\r\n%s\r\n\r\nIf you did not request this, your account is still secure and you can ignore this email.\r\n",
		name, link)
	m.dispatch(to, "Reset your Lurniq password", body)
	return nil
}

// SendWelcomeEmail implements domain.MailerService
func (m *SMTPMailerImpl) SendWelcomeEmail(to, name string) error {
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nYour account is now active. Happy learning!\r\n\r\nThe Lurniq Team\r\n",
		name)
	m.dispatch(to, "Welcome to Lurniq", body)
	return nil
}

// dispatch sends in the background. With no host configured it logs instead,
// which keeps local development working without a mail server.
func (m *SMTPMailerImpl) dispatch(to, subject, body string) {
	if m.host == "" {
		log.Printf("[MOCK MAIL] To: %s, Subject: %s", to, subject)
		return
	}

	go func() {
		msg := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
			m.fromName, m.from, to, subject, body)

		addr := fmt.Sprintf("%s:%d", m.host, m.port)
		var auth smtp.Auth
		if m.username != "" {
			auth = smtp.PlainAuth("", m.username, m.password, m.host)
		}

		if err := smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg)); err != nil {
			log.Printf("mailer: failed to send %q to %s: %v", subject, to, err)
		}
	}()
}
