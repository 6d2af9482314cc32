package mailer

import (
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/upk-it/helpdesk/internal/config"
)

// Mailer sends transactional ticket notifications over SMTP. When SMTP_* is
// not configured it becomes a no-op (logged once at startup); send failures
// are the caller's to swallow, per the best-effort notification policy.
type Mailer struct {
	cfg     config.SMTPConfig
	baseURL string
	dialer  *gomail.Dialer
	logger  *zap.Logger
}

// New builds a Mailer from config.
func New(cfg config.SMTPConfig, baseURL string, logger *zap.Logger) *Mailer {
	m := &Mailer{cfg: cfg, baseURL: baseURL, logger: logger}
	if cfg.Enabled() {
		m.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	} else {
		logger.Info("SMTP not configured; ticket notifications disabled")
	}
	return m
}

// Enabled reports whether sending is configured.
func (m *Mailer) Enabled() bool {
	return m.dialer != nil
}

// SendTicketCreated notifies the requester that their ticket was registered.
func (m *Mailer) SendTicketCreated(to, number, title, requesterName, ticketID string) error {
	subject, html, plain := buildTicketCreatedMail(number, title, requesterName, m.detailURL(ticketID))
	return m.send(to, subject, html, plain)
}

// SendTicketUpdated notifies the requester about a status change, a
// reassignment or a comment.
func (m *Mailer) SendTicketUpdated(to, number, title, message, ticketID string) error {
	subject, html, plain := buildTicketUpdatedMail(number, title, message, m.detailURL(ticketID))
	return m.send(to, subject, html, plain)
}

// SendSLAAlert warns a resolver that a ticket is close to or past its due
// time. No caller wires this today; it exists for parity with the mail
// catalog.
func (m *Mailer) SendSLAAlert(to, number, title string, status SLAStatus, hoursLeft int, ticketID string) error {
	subject, html, plain := buildSLAAlertMail(number, title, status, hoursLeft, m.detailURL(ticketID))
	return m.send(to, subject, html, plain)
}

func (m *Mailer) detailURL(ticketID string) string {
	return fmt.Sprintf("%s/tickets/%s", m.baseURL, ticketID)
}

func (m *Mailer) send(to, subject, html, plain string) error {
	if m.dialer == nil {
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", plain)
	msg.AddAlternative("text/html", html)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
