package mailer

import (
	"gopkg.in/gomail.v2"

	"github.com/noah-isme/ministry-booking-api/pkg/config"
)

// Mailer delivers a single plain-text message.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends mail through a configured SMTP relay using gomail.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// New constructs an SMTPMailer from config.
func New(cfg config.SMTPConfig) *SMTPMailer {
	from := cfg.From
	if from == "" {
		from = "no-reply@portal.gov.np"
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   from,
	}
}

// Send delivers one message, dialing per call. Errors are returned to the
// caller; retry policy is the caller's concern.
func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return m.dialer.DialAndSend(msg)
}
