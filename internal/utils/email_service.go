package utils

import (
	"fmt"
	"net/smtp"

	"TRIPMATE_BACK-END/internal/config"
)

// EmailService handles email sending operations
type EmailService struct {
	config *config.EmailConfig
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{
		config: cfg,
	}
}

// SendMemberJoined notifies an existing member that someone joined the trip
func (e *EmailService) SendMemberJoined(to, tripName, memberName string) error {
	subject := fmt.Sprintf("%s joined your trip", memberName)
	body := fmt.Sprintf(`
Hello,

%s just joined "%s" on TripMate.

Open the trip to see updated availability and votes.

Best regards,
TripMate Team
	`, memberName, tripName)

	return e.sendEmail(to, subject, body)
}

// SendTripStatusChanged notifies a member of a trip lifecycle change
// (confirmed, completed, archived).
func (e *EmailService) SendTripStatusChanged(to, tripName, status string) error {
	subject := fmt.Sprintf("Trip %q is now %s", tripName, status)
	body := fmt.Sprintf(`
Hello,

Your trip "%s" on TripMate was marked %s.

Open TripMate for details.

Best regards,
TripMate Team
	`, tripName, status)

	return e.sendEmail(to, subject, body)
}

// sendEmail sends an email using SMTP
func (e *EmailService) sendEmail(to, subject, body string) error {
	// Check if credentials are set
	if e.config.SMTPUsername == "" || e.config.SMTPPassword == "" {
		return fmt.Errorf("email credentials not configured")
	}

	// Setup authentication
	auth := smtp.PlainAuth("", e.config.SMTPUsername, e.config.SMTPPassword, e.config.SMTPHost)

	// Compose message
	fromEmail := e.config.FromEmail
	if fromEmail == "" {
		fromEmail = e.config.SMTPUsername
	}

	message := []byte(fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"\r\n"+
			"%s\r\n",
		e.config.FromName, fromEmail, to, subject, body))

	// Send email
	addr := e.config.SMTPHost + ":" + e.config.SMTPPort
	err := smtp.SendMail(addr, auth, fromEmail, []string{to}, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}
