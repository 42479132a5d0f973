package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laakri/DevCollab/internal/models"
	"github.com/laakri/DevCollab/internal/services/dto"
	"github.com/laakri/DevCollab/internal/testutil"
	"github.com/laakri/DevCollab/pkg/apperrors"
)

func TestSessionService_Create(t *testing.T) {
	env := newTestEnv(t)
	a := testutil.CreateUser(t, env.db, "a@x.com", "a")
	b := testutil.CreateUser(t, env.db, "b@x.com", "b")
	c := testutil.CreateUser(t, env.db, "c@x.com", "c")

	at := time.Date(2030, 1, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	session, err := env.sessions.Create(env.db, actorFor(a), &dto.CreateSessionRequest{
		ScheduledAt:   at,
		Duration:      45,
		Topic:         " Go generics ",
		ParticipantID: b.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, a.ID, session.HostID, "host defaults to the caller")
	assert.Equal(t, models.SessionStatusScheduled, session.Status)
	assert.Equal(t, "Go generics", session.Topic)
	assert.True(t, session.ScheduledAt.Equal(at))
	require.NotNil(t, session.Host)
	require.NotNil(t, session.Participant)
	assert.Equal(t, "b", session.Participant.Username)
	assert.Empty(t, session.Participant.Email, "showEmail is off by default")

	// a participant may book with an explicit host
	_, err = env.sessions.Create(env.db, actorFor(b), &dto.CreateSessionRequest{
		ScheduledAt: at, Duration: 30, Topic: "t", HostID: a.ID, ParticipantID: b.ID,
	})
	require.NoError(t, err)

	_, err = env.sessions.Create(env.db, actorFor(c), &dto.CreateSessionRequest{
		ScheduledAt: at, Duration: 30, Topic: "t", HostID: a.ID, ParticipantID: b.ID,
	})
	assert.ErrorIs(t, err, apperrors.ErrSessionCreateForbidden)

	_, err = env.sessions.Create(env.db, actorFor(a), &dto.CreateSessionRequest{
		ScheduledAt: at, Duration: 30, Topic: "t", ParticipantID: a.ID,
	})
	assert.ErrorIs(t, err, apperrors.ErrSelfSession)

	missing := "00000000-0000-0000-0000-000000000000"
	_, err = env.sessions.Create(env.db, actorFor(a), &dto.CreateSessionRequest{
		ScheduledAt: at, Duration: 30, Topic: "t", ParticipantID: missing,
	})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
	assert.Contains(t, appErr.Message, "Participant with ID "+missing)
}

func TestSessionService_UpdateRules(t *testing.T) {
	env := newTestEnv(t)
	host := testutil.CreateUser(t, env.db, "h@x.com", "host")
	guest := testutil.CreateUser(t, env.db, "g@x.com", "guest")
	stranger := testutil.CreateUser(t, env.db, "s@x.com", "stranger")
	admin := testutil.CreateUser(t, env.db, "root@x.com", "root", testutil.AsAdmin())
	session := testutil.CreateSession(t, env.db, host.ID, guest.ID, time.Now().Add(time.Hour))

	_, err := env.sessions.Update(env.db, session.ID, actorFor(stranger), &dto.UpdateSessionRequest{Topic: ptr("mine now")})
	assert.ErrorIs(t, err, apperrors.ErrNotSessionMember)

	updated, err := env.sessions.Update(env.db, session.ID, actorFor(guest), &dto.UpdateSessionRequest{
		Status: ptr(string(models.SessionStatusInProgress)),
	})
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusInProgress, updated.Status)

	_, err = env.sessions.Update(env.db, session.ID, actorFor(host), &dto.UpdateSessionRequest{
		Status: ptr(string(models.SessionStatusScheduled)),
	})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidStatus, appErr.Code)
	assert.Equal(t, "Cannot change session status from IN_PROGRESS to SCHEDULED", appErr.Message)

	updated, err = env.sessions.Update(env.db, session.ID, actorFor(admin), &dto.UpdateSessionRequest{
		Status:   ptr(string(models.SessionStatusCompleted)),
		Duration: ptr(90),
	})
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusCompleted, updated.Status)

	stored, err := env.sessions.FindOne(env.db, session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusCompleted, stored.Status)
	assert.Equal(t, 90, stored.Duration)
}

func TestSessionService_RescheduleResetsReminder(t *testing.T) {
	env := newTestEnv(t)
	host := testutil.CreateUser(t, env.db, "h@x.com", "host")
	guest := testutil.CreateUser(t, env.db, "g@x.com", "guest")
	start := time.Now().UTC().Add(30 * time.Minute).Truncate(time.Second)
	session := testutil.CreateSession(t, env.db, host.ID, guest.ID, start)

	sentAt := time.Now().UTC()
	require.NoError(t, env.db.Model(session).Updates(map[string]any{
		"reminder_sent_at":        sentAt,
		"host_reminded_at":        sentAt,
		"participant_reminded_at": sentAt,
	}).Error)

	updated, err := env.sessions.Update(env.db, session.ID, actorFor(host), &dto.UpdateSessionRequest{
		ScheduledAt: ptr(start.Add(24 * time.Hour)),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.ReminderSentAt)

	stored, err := env.sessions.FindOne(env.db, session.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.ReminderSentAt)
	assert.Nil(t, stored.HostRemindedAt)
	assert.Nil(t, stored.ParticipantRemindedAt)
}

func TestSessionService_DeleteIsHostOnly(t *testing.T) {
	env := newTestEnv(t)
	host := testutil.CreateUser(t, env.db, "h@x.com", "host")
	guest := testutil.CreateUser(t, env.db, "g@x.com", "guest")
	session := testutil.CreateSession(t, env.db, host.ID, guest.ID, time.Now().Add(time.Hour))

	assert.ErrorIs(t, env.sessions.Delete(env.db, session.ID, actorFor(guest)), apperrors.ErrNotSessionHost)
	require.NoError(t, env.sessions.Delete(env.db, session.ID, actorFor(host)))
	assert.ErrorIs(t, env.sessions.Delete(env.db, session.ID, actorFor(host)), apperrors.ErrSessionNotFound(session.ID))
}

func TestSessionService_Filters(t *testing.T) {
	env := newTestEnv(t)
	a := testutil.CreateUser(t, env.db, "a@x.com", "a")
	b := testutil.CreateUser(t, env.db, "b@x.com", "b")
	testutil.CreateSession(t, env.db, a.ID, b.ID, time.Now().Add(time.Hour))
	testutil.CreateSession(t, env.db, b.ID, a.ID, time.Now().Add(2*time.Hour))

	_, err := env.sessions.FindByStatus(env.db, "DONE")
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidStatus, appErr.Code)

	scheduled, err := env.sessions.FindByStatus(env.db, string(models.SessionStatusScheduled))
	require.NoError(t, err)
	assert.Len(t, scheduled, 2)

	hosted, err := env.sessions.FindByHost(env.db, a.ID)
	require.NoError(t, err)
	assert.Len(t, hosted, 1)

	joined, err := env.sessions.FindByParticipant(env.db, a.ID)
	require.NoError(t, err)
	assert.Len(t, joined, 1)

	all, err := env.sessions.FindAll(env.db)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
