package infra

import (
	"bytes"
	"fmt"
	"net/smtp"

	"github.com/XxProLuks/SisLanch/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer wraps SMTP configuration for sending operational emails (low-stock
// alerts, competência exports).
type Mailer struct {
	host     string
	user     string
	password string
	addr     string
	from     string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		from:     cfg.SMTPFrom,
	}
}

// Send delivers a plain-text email with optional attachment content.
func (m *Mailer) Send(to []string, subject, body string, attachName string, attach []byte) error {
	e := email.NewEmail()
	e.From = m.from
	e.To = to
	e.Subject = subject
	e.Text = []byte(body)

	if len(attach) > 0 {
		if _, err := e.Attach(bytes.NewReader(attach), attachName, "text/csv"); err != nil {
			return fmt.Errorf("mailer: attach %s: %w", attachName, err)
		}
	}

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	return e.Send(m.addr, auth)
}
