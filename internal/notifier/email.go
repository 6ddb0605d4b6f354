package notifier

import "gopkg.in/gomail.v2"

// EmailSender: fallback channel untuk user tanpa chat id Telegram.
type EmailSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailSender(host string, port int, username, password, from string) *EmailSender {
	return &EmailSender{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (e *EmailSender) Send(to, judul, pesan string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", e.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", judul)
	m.SetBody("text/plain", pesan)
	return e.dialer.DialAndSend(m)
}
