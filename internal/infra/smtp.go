package infra

import (
	"fmt"
	"net/smtp"

	"github.com/Jaysins/inventory-mgt-backend/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer wraps SMTP configuration for sending supplier notifications.
type Mailer struct {
	host     string
	port     int
	user     string
	password string
	addr     string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

// SendOrderNotice emails a purchase order to the supplier, attaching the
// rendered order document when available.
func (m *Mailer) SendOrderNotice(to, subject, body, documentPath string) error {
	e := email.NewEmail()
	e.From = m.user
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	if documentPath != "" {
		if _, err := e.AttachFile(documentPath); err != nil {
			return fmt.Errorf("mailer: attach document: %w", err)
		}
	}

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	return e.Send(m.addr, auth)
}
