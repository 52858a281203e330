package mail

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Sender delivers transactional mail. Handlers depend on this interface so
// tests can substitute a recording stub.
type Sender interface {
	SendOTP(to, subject, otp string) error
}

// SMTPMailer sends plain-text mail over SMTP with PLAIN auth.
type SMTPMailer struct {
	host string
	port string
	user string
	pass string
	from string
}

func NewSMTPMailer(host, port, user, pass, from string) *SMTPMailer {
	if from == "" {
		from = user
	}
	return &SMTPMailer{host: host, port: port, user: user, pass: pass, from: from}
}

func (m *SMTPMailer) SendOTP(to, subject, otp string) error {
	if m.host == "" || m.port == "" || m.user == "" || m.pass == "" {
		return fmt.Errorf("smtp not configured")
	}

	body := fmt.Sprintf("Your verification code is %s. It expires in 5 minutes.", otp)

	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: " + subject,
		"Content-Type: text/plain; charset=\"utf-8\"",
		"",
		body,
		"",
	}, "\r\n")

	auth := smtp.PlainAuth("", m.user, m.pass, m.host)
	return smtp.SendMail(m.host+":"+m.port, auth, m.from, []string{to}, []byte(msg))
}
