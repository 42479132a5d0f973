package models

type UserRole string
type SessionStatus string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"

	SessionStatusScheduled  SessionStatus = "SCHEDULED"
	SessionStatusInProgress SessionStatus = "IN_PROGRESS"
	SessionStatusCompleted  SessionStatus = "COMPLETED"
	SessionStatusCancelled  SessionStatus = "CANCELLED"
)

var sessionTransitions = map[SessionStatus][]SessionStatus{
	SessionStatusScheduled:  {SessionStatusInProgress, SessionStatusCancelled},
	SessionStatusInProgress: {SessionStatusCompleted, SessionStatusCancelled},
	SessionStatusCompleted:  nil,
	SessionStatusCancelled:  nil,
}

func (s SessionStatus) IsValid() bool {
	_, ok := sessionTransitions[s]
	return ok
}

// CanTransitionTo reports whether a session may move from s to next.
// Staying in the same state is always allowed.
func (s SessionStatus) CanTransitionTo(next SessionStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range sessionTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s SessionStatus) IsTerminal() bool {
	return s.IsValid() && len(sessionTransitions[s]) == 0
}
