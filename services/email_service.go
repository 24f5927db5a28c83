// File: /services/email_service.go
package services

import (
	"fmt"
	"gopkg.in/gomail.v2"
	"rct-connect-api/config"
)

type EmailService struct {
	config *config.Config
	dialer *gomail.Dialer
}

func NewEmailService(cfg *config.Config) *EmailService {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)

	return &EmailService{
		config: cfg,
		dialer: dialer,
	}
}

// SendWelcomeEmail greets a freshly registered member.
func (es *EmailService) SendWelcomeEmail(email, name string) error {
	subject := "Welcome to RCT Connect!"
	body := fmt.Sprintf(`
		<h2>Hi %s,</h2>
		<p>Welcome to the club! Your account is ready.</p>
		<p>Browse upcoming events, join a run and say hello in the event chat.</p>
		<p>See you on the road,<br>The RCT Connect team</p>
	`, name)

	return es.send(email, subject, body)
}

// SendEventCancelledEmail notifies a participant that an event they joined
// was deleted.
func (es *EmailService) SendEventCancelledEmail(email, name, eventTitle, eventDate string) error {
	subject := fmt.Sprintf("Event cancelled: %s", eventTitle)
	body := fmt.Sprintf(`
		<h2>Hi %s,</h2>
		<p>The event <strong>%s</strong> scheduled for %s has been cancelled.</p>
		<p>Check the calendar for other upcoming runs.</p>
		<p>The RCT Connect team</p>
	`, name, eventTitle, eventDate)

	return es.send(email, subject, body)
}

func (es *EmailService) send(to, subject, body string) error {
	// Without SMTP credentials mail is disabled, not an error
	if es.config.SMTPUsername == "" {
		fmt.Printf("Email disabled, skipping mail to %s (%s)\n", to, subject)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", es.config.FromName, es.config.FromEmail))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := es.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	return nil
}
