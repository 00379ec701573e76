package mailer

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"os"

	"runoot/logger"
)

// Mailer sends transactional email over SMTP with implicit TLS
type Mailer struct {
	smtpHost string
	smtpPort string
	username string
	password string
	from     string
}

func New() *Mailer {
	return &Mailer{
		smtpHost: os.Getenv("SMTP_HOST"),
		smtpPort: os.Getenv("SMTP_PORT"),
		username: os.Getenv("SMTP_USERNAME"),
		password: os.Getenv("SMTP_PASSWORD"),
		from:     os.Getenv("SMTP_FROM"),
	}
}

// Configured reports whether SMTP settings are present; sends on an
// unconfigured mailer fail fast instead of hanging on a dial.
func (m *Mailer) Configured() bool {
	return m.smtpHost != "" && m.smtpPort != ""
}

// Send delivers a single HTML email
func (m *Mailer) Send(to, subject, body string) error {
	if !m.Configured() {
		return fmt.Errorf("mailer is not configured")
	}

	from := m.from
	if from == "" {
		from = m.username
	}

	msg := []byte(
		fmt.Sprintf("From: %s\r\n", from) +
			fmt.Sprintf("To: %s\r\n", to) +
			fmt.Sprintf("Subject: %s\r\n", subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=\"utf-8\"\r\n" +
			"\r\n" +
			body,
	)

	serverAddr := m.smtpHost + ":" + m.smtpPort
	tlsConfig := &tls.Config{ServerName: m.smtpHost}

	conn, err := tls.Dial("tcp", serverAddr, tlsConfig)
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, m.smtpHost)
	if err != nil {
		return err
	}
	defer client.Quit()

	auth := smtp.PlainAuth("", m.username, m.password, m.smtpHost)
	if err := client.Auth(auth); err != nil {
		return err
	}

	if err := client.Mail(from); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}

// SendAsync delivers in a goroutine, logging the outcome. Used for emails
// that must never block or fail the triggering request.
func (m *Mailer) SendAsync(to, subject, body string) {
	go func() {
		if err := m.Send(to, subject, body); err != nil {
			logger.Error(fmt.Sprintf("failed to send email to %s", to), err)
			return
		}
		logger.Success(fmt.Sprintf("email sent to %s: %s", to, subject))
	}()
}
