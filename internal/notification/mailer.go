package notification

import (
	"strconv"

	"gopkg.in/gomail.v2"

	"github.com/legalconnect/schedule-service/internal/config"
)

// Mailer sends one message to one recipient.
type Mailer interface {
	Send(to, subject, body string) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	port, _ := strconv.Atoi(cfg.SMTPPort)

	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, port, cfg.SMTPUser, cfg.SMTPPass),
		from:   cfg.MailFrom,
	}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	return m.dialer.DialAndSend(msg)
}
