package email

import (
	"fmt"
	"strings"
	"time"
)

const (
	TemplateVerification    = "verification"
	TemplateWelcome         = "welcome"
	TemplateSessionReminder = "session_reminder"

	SubjectVerification = "Welcome to DevCollab - Verify Your Email"
	SubjectWelcome      = "Your DevCollab account is ready"
)

// Mailer composes the application's mails on top of a Provider.
type Mailer struct {
	provider        Provider
	frontendURL     string
	verificationTTL time.Duration
}

func NewMailer(provider Provider, frontendURL string, verificationTTL time.Duration) *Mailer {
	return &Mailer{
		provider:        provider,
		frontendURL:     strings.TrimRight(frontendURL, "/"),
		verificationTTL: verificationTTL,
	}
}

// VerificationLink is the frontend page that posts token back to the API.
func (m *Mailer) VerificationLink(token string) string {
	return fmt.Sprintf("%s/verify-email?token=%s", m.frontendURL, token)
}

func (m *Mailer) SendVerification(to, username, token string) error {
	return m.provider.SendTemplate([]string{to}, SubjectVerification, TemplateVerification, TemplateData{
		"Username":         username,
		"VerificationLink": m.VerificationLink(token),
		"ExpiresIn":        m.verificationTTL.String(),
	})
}

func (m *Mailer) SendWelcome(to, username string) error {
	return m.provider.SendTemplate([]string{to}, SubjectWelcome, TemplateWelcome, TemplateData{
		"Username": username,
		"AppLink":  m.frontendURL,
	})
}

// SessionReminder carries what a reminder mail needs about one recipient.
type SessionReminder struct {
	To          string
	Username    string
	Partner     string
	SessionID   string
	Topic       string
	ScheduledAt time.Time
	Duration    int
}

func (m *Mailer) SendSessionReminder(r SessionReminder) error {
	subject := fmt.Sprintf("Reminder: %s starts soon", r.Topic)
	return m.provider.SendTemplate([]string{r.To}, subject, TemplateSessionReminder, TemplateData{
		"Username":    r.Username,
		"Partner":     r.Partner,
		"Topic":       r.Topic,
		"ScheduledAt": r.ScheduledAt.UTC().Format(time.RFC1123),
		"Duration":    r.Duration,
		"SessionLink": fmt.Sprintf("%s/sessions/%s", m.frontendURL, r.SessionID),
	})
}

// NewProvider picks SMTP when a host is configured and logging otherwise.
func NewProvider(cfg *SMTPConfig) (Provider, error) {
	renderer, err := NewDefaultTemplateManager()
	if err != nil {
		return nil, err
	}
	if cfg == nil || cfg.Host == "" {
		return NewLogProvider(renderer), nil
	}
	p := NewSMTPProvider(cfg, renderer)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
