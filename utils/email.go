// utils/email.go
package utils

import (
	"fmt"
	"log"

	"github.com/keighl/postmark"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer sends transactional email
type Mailer interface {
	SendEmail(toEmail, subject, htmlContent string) error
}

// EmailService composes account emails on top of a Mailer
type EmailService struct {
	mailer Mailer
}

// NewEmailService returns an EmailService delivering through mailer. A nil
// mailer disables email.
func NewEmailService(mailer Mailer) *EmailService {
	return &EmailService{mailer: mailer}
}

// Enabled reports whether a provider is configured
func (es *EmailService) Enabled() bool {
	return es != nil && es.mailer != nil
}

// SendWelcomeEmail greets a newly registered user
func (es *EmailService) SendWelcomeEmail(toEmail, name string) error {
	if !es.Enabled() {
		return nil
	}
	subject := "Welcome to the store"
	htmlContent := fmt.Sprintf(
		"<strong>Hi %s,</strong><br><br>Your account has been created. You can now log in and start adding products to your cart and watch list.",
		name,
	)
	if err := es.mailer.SendEmail(toEmail, subject, htmlContent); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}

// PostmarkMailer sends email using Postmark
type PostmarkMailer struct {
	client *postmark.Client
	sender string
}

// NewPostmarkMailer initializes a Postmark backed Mailer
func NewPostmarkMailer(apiToken, sender string) *PostmarkMailer {
	return &PostmarkMailer{
		client: postmark.NewClient(apiToken, ""),
		sender: sender,
	}
}

// SendEmail sends a basic email to the specified recipient
func (pm *PostmarkMailer) SendEmail(toEmail, subject, htmlContent string) error {
	_, err := pm.client.SendEmail(postmark.Email{
		From:     pm.sender,
		To:       toEmail,
		Subject:  subject,
		HtmlBody: htmlContent,
		TextBody: htmlContent,
	})
	if err != nil {
		return fmt.Errorf("postmark: %w", err)
	}
	log.Printf("Email sent to %s via postmark", toEmail)
	return nil
}

// SendgridMailer sends email using SendGrid
type SendgridMailer struct {
	client *sendgrid.Client
	sender string
}

// NewSendgridMailer initializes a SendGrid backed Mailer
func NewSendgridMailer(apiKey, sender string) *SendgridMailer {
	return &SendgridMailer{
		client: sendgrid.NewSendClient(apiKey),
		sender: sender,
	}
}

// SendEmail sends a basic email to the specified recipient
func (sm *SendgridMailer) SendEmail(toEmail, subject, htmlContent string) error {
	message := mail.NewSingleEmail(
		mail.NewEmail("", sm.sender),
		subject,
		mail.NewEmail("", toEmail),
		htmlContent,
		htmlContent,
	)
	resp, err := sm.client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid: unexpected status %d", resp.StatusCode)
	}
	log.Printf("Email sent to %s via sendgrid", toEmail)
	return nil
}
