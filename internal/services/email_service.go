package services

import "log"

// EmailService is the outbound notification sink. Delivery is simulated:
// messages are logged and never block or fail the caller.
type EmailService struct{}

// NewEmailService creates a new EmailService.
func NewEmailService() *EmailService {
	return &EmailService{}
}

// Send dispatches a notification to the recipient. Fire-and-forget: a missing
// recipient is logged and dropped.
func (s *EmailService) Send(to, subject, body string) {
	if to == "" {
		log.Printf("[Email] Dropped message with empty recipient: %s", subject)
		return
	}

	log.Printf("[Email] To: %s", to)
	log.Printf("[Email] Subject: %s", subject)
	log.Printf("[Email] Body: %s", body)
}
