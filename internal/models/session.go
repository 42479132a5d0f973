package models

import "time"

// Session is a scheduled one-to-one meeting between a host and a participant.
type Session struct {
	BaseModel
	ScheduledAt time.Time     `gorm:"not null;index" json:"scheduledAt"`
	Duration    int           `gorm:"not null" json:"duration"`
	Status      SessionStatus `gorm:"type:varchar(20);not null;default:'SCHEDULED';index" json:"status"`
	Topic       string        `gorm:"not null" json:"topic"`
	Description string        `gorm:"type:text" json:"description"`

	HostID        string `gorm:"size:36;not null;index" json:"hostId"`
	Host          *User  `gorm:"foreignKey:HostID;constraint:OnDelete:CASCADE" json:"host,omitempty"`
	ParticipantID string `gorm:"size:36;not null;index" json:"participantId"`
	Participant   *User  `gorm:"foreignKey:ParticipantID;constraint:OnDelete:CASCADE" json:"participant,omitempty"`

	ReminderSentAt *time.Time `json:"reminderSentAt,omitempty"`

	// Per-member delivery stamps; ReminderSentAt is set once both are settled.
	HostRemindedAt        *time.Time `json:"-"`
	ParticipantRemindedAt *time.Time `json:"-"`
}

// ResetReminders forgets every reminder stamp, e.g. after a reschedule.
func (s *Session) ResetReminders() {
	s.ReminderSentAt = nil
	s.HostRemindedAt = nil
	s.ParticipantRemindedAt = nil
}

// GetUserID returns the host, who owns the session.
func (s *Session) GetUserID() string {
	return s.HostID
}

// Involves reports whether userID is the host or the participant.
func (s *Session) Involves(userID string) bool {
	return s.HostID == userID || s.ParticipantID == userID
}
