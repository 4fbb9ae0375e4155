package email

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
)

// Sender delivers one-time codes to users. Delivery is best-effort: the auth
// flows never fail a request on a send error.
type Sender interface {
	SendOTP(to string, code string) error
}

// NoopSender is used when no SMTP configuration is present.
type NoopSender struct{}

func (NoopSender) SendOTP(to string, code string) error { return nil }

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPSender sends codes over SMTP, with implicit TLS on port 465 and
// STARTTLS elsewhere when the server offers it.
type SMTPSender struct {
	Cfg Config
}

func NewSMTPSender(cfg Config) *SMTPSender {
	return &SMTPSender{Cfg: cfg}
}

func (s *SMTPSender) SendOTP(to string, code string) error {
	subject := "Your login code"
	body := "Your one-time login code is: " + code + "\nThis code expires soon."
	message := buildMessage(s.Cfg.From, to, subject, body)

	addr := fmt.Sprintf("%s:%d", s.Cfg.Host, s.Cfg.Port)
	fromAddr := parseAddress(s.Cfg.From)
	auth := smtp.PlainAuth("", s.Cfg.Username, s.Cfg.Password, s.Cfg.Host)

	client, err := smtpClient(addr, s.Cfg.Host, s.Cfg.Port)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Auth(auth); err != nil {
		return err
	}
	if err := client.Mail(fromAddr); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	writer, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := writer.Write([]byte(message)); err != nil {
		_ = writer.Close()
		return err
	}
	return writer.Close()
}

func smtpClient(addr string, host string, port int) (*smtp.Client, error) {
	if port == 465 {
		conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: host})
		if err != nil {
			return nil, err
		}
		return smtp.NewClient(conn, host)
	}

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return nil, err
	}
	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
			_ = client.Close()
			return nil, err
		}
	}
	return client, nil
}

func buildMessage(from string, to string, subject string, body string) string {
	headers := []string{
		"From: " + from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}
	return strings.Join(headers, "\r\n")
}

func parseAddress(from string) string {
	start := strings.Index(from, "<")
	end := strings.Index(from, ">")
	if start >= 0 && end > start {
		return strings.TrimSpace(from[start+1 : end])
	}
	return strings.TrimSpace(from)
}
