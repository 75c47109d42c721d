package auth

import "go.uber.org/zap"

// Mailer delivers the email-verification link. Actual delivery is an
// external collaborator; the default implementation only logs the URL.
type Mailer interface {
	SendVerification(name, email, url string) error
}

type LogMailer struct{}

func (LogMailer) SendVerification(name, email, url string) error {
	zap.S().Infow("verification mail (log-only delivery)",
		"name", name, "email", email, "url", url)
	return nil
}
