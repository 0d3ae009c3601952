package email

import (
	"fmt"
	"net/smtp"
	"os"
)

type Service struct {
	host     string
	port     string
	user     string
	password string
	from     string
	to       string
}

func NewService() *Service {
	return &Service{
		host:     os.Getenv("SMTP_HOST"),
		port:     os.Getenv("SMTP_PORT"),
		user:     os.Getenv("SMTP_USER"),
		password: os.Getenv("SMTP_PASSWORD"),
		from:     os.Getenv("SMTP_FROM"),
		to:       os.Getenv("CONTACT_EMAIL"),
	}
}

// SendContactMessage forwards a contact-form submission to the workshop inbox.
func (e *Service) SendContactMessage(name, replyTo, message string) error {
	if e.host == "" {
		return fmt.Errorf("smtp not configured")
	}

	subject := fmt.Sprintf("Contact form: %s", name)
	body := fmt.Sprintf(`New contact form submission

Name: %s
Email: %s

%s
`, name, replyTo, message)

	msg := fmt.Sprintf("From: %s\r\n"+
		"To: %s\r\n"+
		"Reply-To: %s\r\n"+
		"Subject: %s\r\n"+
		"\r\n"+
		"%s\r\n", e.from, e.to, replyTo, subject, body)

	auth := smtp.PlainAuth("", e.user, e.password, e.host)
	addr := fmt.Sprintf("%s:%s", e.host, e.port)

	if err := smtp.SendMail(addr, auth, e.from, []string{e.to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send contact mail: %v", err)
	}
	return nil
}
