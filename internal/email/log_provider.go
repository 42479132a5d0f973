package email

import (
	"github.com/laakri/DevCollab/internal/logger"
)

// LogProvider writes messages to the log instead of sending them.
// Used when no SMTP host is configured.
type LogProvider struct {
	renderer TemplateRenderer
}

func NewLogProvider(renderer TemplateRenderer) *LogProvider {
	return &LogProvider{renderer: renderer}
}

func (p *LogProvider) Send(email *Email) error {
	logger.Info("email (not sent, no SMTP configured)",
		"to", email.To,
		"subject", email.Subject,
		"body", email.Body,
	)
	return nil
}

func (p *LogProvider) SendTemplate(to []string, subject string, templateName string, data TemplateData) error {
	if p.renderer != nil {
		if _, err := p.renderer.Render(templateName, data); err != nil {
			return err
		}
	}
	logger.Info("templated email (not sent, no SMTP configured)",
		"to", to,
		"subject", subject,
		"template", templateName,
		"data", data,
	)
	return nil
}

func (p *LogProvider) Validate() error { return nil }
func (p *LogProvider) Close() error    { return nil }
