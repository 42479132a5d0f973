package email

// Provider delivers messages.
type Provider interface {
	Send(email *Email) error

	// SendTemplate renders templateName with data and sends the result as HTML.
	SendTemplate(to []string, subject string, templateName string, data TemplateData) error

	Validate() error
	Close() error
}

// TemplateRenderer renders named templates.
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
	AddTemplate(name string, template string) error
}
