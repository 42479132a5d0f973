package dto

import "time"

type CreateSessionRequest struct {
	ScheduledAt   time.Time `json:"scheduledAt" validate:"required"`
	Duration      int       `json:"duration" validate:"required,gt=0,max=1440"`
	Topic         string    `json:"topic" validate:"required,max=200"`
	Description   string    `json:"description" validate:"max=5000"`
	HostID        string    `json:"hostId" validate:"omitempty,uuid"`
	ParticipantID string    `json:"participantId" validate:"required,uuid"`
}

type UpdateSessionRequest struct {
	ScheduledAt *time.Time `json:"scheduledAt"`
	Duration    *int       `json:"duration" validate:"omitempty,gt=0,max=1440"`
	Topic       *string    `json:"topic" validate:"omitempty,min=1,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=5000"`
	Status      *string    `json:"status" validate:"omitempty,is-session-status"`
}

// SessionStatusQuery is bound from GET /sessions/status.
type SessionStatusQuery struct {
	Status string `form:"status" validate:"required,is-session-status"`
}
