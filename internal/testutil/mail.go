package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/laakri/DevCollab/internal/email"
)

// SentEmail is one message captured by RecordingProvider.
type SentEmail struct {
	To       []string
	Subject  string
	Template string
	Data     email.TemplateData
}

// RecordingProvider is an email.Provider that keeps every message in memory.
// Mails are sent from goroutines, so reads are synchronised.
type RecordingProvider struct {
	mu      sync.Mutex
	sent    []SentEmail
	failFor map[string]error
	Err     error
}

func NewRecordingProvider() *RecordingProvider {
	return &RecordingProvider{}
}

func (p *RecordingProvider) Send(e *email.Email) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.sent = append(p.sent, SentEmail{To: e.To, Subject: e.Subject})
	return nil
}

// FailFor makes every mail addressed to recipient fail with err.
// A nil err clears the failure.
func (p *RecordingProvider) FailFor(recipient string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failFor == nil {
		p.failFor = make(map[string]error)
	}
	if err == nil {
		delete(p.failFor, recipient)
		return
	}
	p.failFor[recipient] = err
}

func (p *RecordingProvider) SendTemplate(to []string, subject string, templateName string, data email.TemplateData) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	for _, addr := range to {
		if err, ok := p.failFor[addr]; ok {
			return err
		}
	}
	p.sent = append(p.sent, SentEmail{To: to, Subject: subject, Template: templateName, Data: data})
	return nil
}

func (p *RecordingProvider) Validate() error { return nil }
func (p *RecordingProvider) Close() error    { return nil }

func (p *RecordingProvider) Sent() []SentEmail {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]SentEmail, len(p.sent))
	copy(out, p.sent)
	return out
}

// Find returns the latest mail built from template for recipient.
func (p *RecordingProvider) Find(template, recipient string) (SentEmail, bool) {
	sent := p.Sent()
	for i := len(sent) - 1; i >= 0; i-- {
		if sent[i].Template != template {
			continue
		}
		for _, to := range sent[i].To {
			if to == recipient {
				return sent[i], true
			}
		}
	}
	return SentEmail{}, false
}

// WaitFor blocks until a matching mail arrives or fails the test.
func (p *RecordingProvider) WaitFor(t *testing.T, template, recipient string) SentEmail {
	t.Helper()

	var found SentEmail
	require.Eventually(t, func() bool {
		var ok bool
		found, ok = p.Find(template, recipient)
		return ok
	}, 2*time.Second, 10*time.Millisecond, "no %q mail for %s", template, recipient)
	return found
}

// Count returns how many mails used template.
func (p *RecordingProvider) Count(template string) int {
	n := 0
	for _, s := range p.Sent() {
		if s.Template == template {
			n++
		}
	}
	return n
}
