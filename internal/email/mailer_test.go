package email_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laakri/DevCollab/internal/email"
	"github.com/laakri/DevCollab/internal/testutil"
)

func TestMailer_Verification(t *testing.T) {
	rec := testutil.NewRecordingProvider()
	m := email.NewMailer(rec, "http://localhost:3000/", 24*time.Hour)

	assert.Equal(t, "http://localhost:3000/verify-email?token=tok", m.VerificationLink("tok"))

	require.NoError(t, m.SendVerification("a@x.com", "ada", "tok"))
	sent, ok := rec.Find(email.TemplateVerification, "a@x.com")
	require.True(t, ok)
	assert.Equal(t, email.SubjectVerification, sent.Subject)
	assert.Equal(t, "ada", sent.Data["Username"])
	assert.Equal(t, "http://localhost:3000/verify-email?token=tok", sent.Data["VerificationLink"])
}

func TestMailer_SessionReminderRendersWithBuiltinTemplate(t *testing.T) {
	tm, err := email.NewDefaultTemplateManager()
	require.NoError(t, err)
	rec := testutil.NewRecordingProvider()
	m := email.NewMailer(rec, "http://localhost:3000", time.Hour)

	require.NoError(t, m.SendSessionReminder(email.SessionReminder{
		To:          "a@x.com",
		Username:    "ada",
		Partner:     "grace",
		SessionID:   "s-1",
		Topic:       "Go generics",
		ScheduledAt: time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC),
		Duration:    45,
	}))

	sent, ok := rec.Find(email.TemplateSessionReminder, "a@x.com")
	require.True(t, ok)
	assert.Contains(t, sent.Subject, "Go generics")
	assert.Equal(t, "http://localhost:3000/sessions/s-1", sent.Data["SessionLink"])

	body, err := tm.Render(sent.Template, sent.Data)
	require.NoError(t, err)
	assert.Contains(t, body, "grace")
}
