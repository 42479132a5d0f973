package workers

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/laakri/DevCollab/internal/email"
	"github.com/laakri/DevCollab/internal/logger"
	"github.com/laakri/DevCollab/internal/models"
	"github.com/laakri/DevCollab/internal/repositories"
)

const reminderWorkerName = "session_reminder"

// SessionReminderWorker mails both members of a scheduled session shortly
// before it starts. Each session is reminded at most once per start time.
type SessionReminderWorker struct {
	db          *gorm.DB
	sessionRepo repositories.SessionRepository
	mailer      *email.Mailer
	interval    time.Duration
	window      time.Duration
	now         func() time.Time
}

func NewSessionReminderWorker(
	db *gorm.DB,
	sessionRepo repositories.SessionRepository,
	mailer *email.Mailer,
	interval, window time.Duration,
) *SessionReminderWorker {
	return &SessionReminderWorker{
		db:          db,
		sessionRepo: sessionRepo,
		mailer:      mailer,
		interval:    interval,
		window:      window,
		now:         time.Now,
	}
}

// Start runs the worker in the background until ctx is cancelled.
func (w *SessionReminderWorker) Start(ctx context.Context) {
	go w.loop(ctx)
}

func (w *SessionReminderWorker) loop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logger.Info("Session reminder worker started", "interval", w.interval, "window", w.window)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Session reminder worker stopped")
			return
		case <-ticker.C:
			if _, err := w.RunOnce(ctx); err != nil {
				logger.WorkerLog(reminderWorkerName, "run", err)
			}
		}
	}
}

// RunOnce sends the reminders that are due now and returns how many
// sessions were stamped.
func (w *SessionReminderWorker) RunOnce(ctx context.Context) (int, error) {
	db := w.db.WithContext(ctx)
	from := w.now().UTC()
	to := from.Add(w.window)

	sessions, err := w.sessionRepo.FindDueForReminder(db, from, to)
	if err != nil {
		return 0, err
	}

	reminded := 0
	for i := range sessions {
		if ctx.Err() != nil {
			return reminded, ctx.Err()
		}

		session := &sessions[i]
		if !w.remind(db, session) {
			continue
		}

		if err := w.sessionRepo.MarkReminderSent(db, session.ID, w.now().UTC()); err != nil {
			logger.WorkerLog(reminderWorkerName, "mark_sent", err, "session_id", session.ID)
			continue
		}
		reminded++
	}

	if reminded > 0 {
		logger.Info("Session reminders sent", "sessions", reminded)
	}
	return reminded, nil
}

type reminderTarget struct {
	member     repositories.ReminderMember
	recipient  *models.User
	partner    *models.User
	remindedAt *time.Time
}

// remind mails each member who wants reminders and has not been reminded
// yet, stamping every delivery. It reports false while any member is still
// owed a reminder, so only that member is retried on the next tick.
func (w *SessionReminderWorker) remind(db *gorm.DB, session *models.Session) bool {
	done := true
	targets := []reminderTarget{
		{repositories.ReminderHost, session.Host, session.Participant, session.HostRemindedAt},
		{repositories.ReminderParticipant, session.Participant, session.Host, session.ParticipantRemindedAt},
	}

	for _, target := range targets {
		recipient, partner := target.recipient, target.partner
		if target.remindedAt != nil || recipient == nil || partner == nil {
			continue
		}
		if !recipient.NotificationPreferences.Data().SessionReminders {
			continue
		}

		err := w.mailer.SendSessionReminder(email.SessionReminder{
			To:          recipient.Email,
			Username:    recipient.Username,
			Partner:     partner.Username,
			SessionID:   session.ID,
			Topic:       session.Topic,
			ScheduledAt: session.ScheduledAt,
			Duration:    session.Duration,
		})
		if err != nil {
			logger.WorkerLog(reminderWorkerName, "send", err, "session_id", session.ID, "to", recipient.Email)
			done = false
			continue
		}

		if err := w.sessionRepo.MarkMemberReminded(db, session.ID, target.member, w.now().UTC()); err != nil {
			logger.WorkerLog(reminderWorkerName, "mark_member", err, "session_id", session.ID, "to", recipient.Email)
			done = false
		}
	}
	return done
}
