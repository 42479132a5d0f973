package services

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/laakri/DevCollab/internal/models"
	"github.com/laakri/DevCollab/internal/policy"
	"github.com/laakri/DevCollab/internal/repositories"
	"github.com/laakri/DevCollab/internal/services/dto"
	"github.com/laakri/DevCollab/pkg/apperrors"
)

type SessionService interface {
	Create(db *gorm.DB, actor policy.Actor, req *dto.CreateSessionRequest) (*models.Session, error)
	FindAll(db *gorm.DB) ([]models.Session, error)
	FindOne(db *gorm.DB, id string) (*models.Session, error)
	FindByStatus(db *gorm.DB, status string) ([]models.Session, error)
	FindByHost(db *gorm.DB, hostID string) ([]models.Session, error)
	FindByParticipant(db *gorm.DB, participantID string) ([]models.Session, error)
	Update(db *gorm.DB, id string, actor policy.Actor, req *dto.UpdateSessionRequest) (*models.Session, error)
	Delete(db *gorm.DB, id string, actor policy.Actor) error
}

type SessionServiceImpl struct {
	sessionRepo repositories.SessionRepository
	userRepo    repositories.UserRepository
	policy      policy.Policy
}

// NewSessionService lets either member update a session and only the host
// delete it. Admins may do both.
func NewSessionService(
	sessionRepo repositories.SessionRepository,
	userRepo repositories.UserRepository,
) SessionService {
	return &SessionServiceImpl{
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
		policy:      policy.NewAdminBypassPolicy(policy.NewMembershipPolicy()),
	}
}

func (s *SessionServiceImpl) Create(db *gorm.DB, actor policy.Actor, req *dto.CreateSessionRequest) (*models.Session, error) {
	hostID := req.HostID
	if hostID == "" {
		hostID = actor.UserID
	}

	if hostID == req.ParticipantID {
		return nil, apperrors.ErrSelfSession
	}
	if actor.UserID != hostID && actor.UserID != req.ParticipantID {
		return nil, apperrors.ErrSessionCreateForbidden
	}

	members, err := s.userRepo.FindByIDs(db, []string{hostID, req.ParticipantID})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := requireMembers(members, hostID, req.ParticipantID); err != nil {
		return nil, err
	}

	session := &models.Session{
		ScheduledAt:   req.ScheduledAt.UTC(),
		Duration:      req.Duration,
		Status:        models.SessionStatusScheduled,
		Topic:         strings.TrimSpace(req.Topic),
		Description:   strings.TrimSpace(req.Description),
		HostID:        hostID,
		ParticipantID: req.ParticipantID,
	}

	if err := s.sessionRepo.Create(db, session); err != nil {
		return nil, apperrors.InternalError(err)
	}

	created, err := s.sessionRepo.FindByID(db, session.ID)
	if err != nil {
		return nil, handleSessionError(err, session.ID)
	}
	return publicSession(created), nil
}

func (s *SessionServiceImpl) FindAll(db *gorm.DB) ([]models.Session, error) {
	sessions, err := s.sessionRepo.FindAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return publicSessions(sessions), nil
}

func (s *SessionServiceImpl) FindOne(db *gorm.DB, id string) (*models.Session, error) {
	session, err := s.sessionRepo.FindByID(db, id)
	if err != nil {
		return nil, handleSessionError(err, id)
	}
	return publicSession(session), nil
}

func (s *SessionServiceImpl) FindByStatus(db *gorm.DB, status string) ([]models.Session, error) {
	st := models.SessionStatus(status)
	if !st.IsValid() {
		return nil, apperrors.ErrInvalidStatus("session", fmt.Sprintf("Unknown session status %q", status))
	}

	sessions, err := s.sessionRepo.FindByStatus(db, st)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return publicSessions(sessions), nil
}

func (s *SessionServiceImpl) FindByHost(db *gorm.DB, hostID string) ([]models.Session, error) {
	sessions, err := s.sessionRepo.FindByHost(db, hostID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return publicSessions(sessions), nil
}

func (s *SessionServiceImpl) FindByParticipant(db *gorm.DB, participantID string) ([]models.Session, error) {
	sessions, err := s.sessionRepo.FindByParticipant(db, participantID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return publicSessions(sessions), nil
}

func (s *SessionServiceImpl) Update(db *gorm.DB, id string, actor policy.Actor, req *dto.UpdateSessionRequest) (*models.Session, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	session, err := s.sessionRepo.FindByID(tx, id)
	if err != nil {
		return nil, handleSessionError(err, id)
	}

	if !s.policy.Can(actor, policy.ActionUpdate, session) {
		return nil, apperrors.ErrNotSessionMember
	}

	if req.Status != nil {
		next := models.SessionStatus(*req.Status)
		if !session.Status.CanTransitionTo(next) {
			return nil, apperrors.ErrInvalidStatus("session",
				fmt.Sprintf("Cannot change session status from %s to %s", session.Status, next))
		}
		session.Status = next
	}

	if req.ScheduledAt != nil {
		at := req.ScheduledAt.UTC()
		if !at.Equal(session.ScheduledAt) {
			session.ScheduledAt = at
			// a new start time needs a new reminder
			session.ResetReminders()
		}
	}
	if req.Duration != nil {
		session.Duration = *req.Duration
	}
	if req.Topic != nil {
		session.Topic = strings.TrimSpace(*req.Topic)
	}
	applyString(&session.Description, req.Description)

	if err := s.sessionRepo.Update(tx, session); err != nil {
		return nil, handleSessionError(err, id)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return publicSession(session), nil
}

func (s *SessionServiceImpl) Delete(db *gorm.DB, id string, actor policy.Actor) error {
	session, err := s.sessionRepo.FindByID(db, id)
	if err != nil {
		return handleSessionError(err, id)
	}

	if !s.policy.Can(actor, policy.ActionDelete, session) {
		return apperrors.ErrNotSessionHost
	}

	if err := s.sessionRepo.Delete(db, id); err != nil {
		return handleSessionError(err, id)
	}
	return nil
}

func requireMembers(found []models.User, hostID, participantID string) error {
	var hostFound, participantFound bool
	for i := range found {
		switch found[i].ID {
		case hostID:
			hostFound = true
		case participantID:
			participantFound = true
		}
	}
	if !hostFound {
		return apperrors.NewNotFoundError("user", fmt.Sprintf("Host with ID %s not found", hostID))
	}
	if !participantFound {
		return apperrors.NewNotFoundError("user", fmt.Sprintf("Participant with ID %s not found", participantID))
	}
	return nil
}


func publicSession(session *models.Session) *models.Session {
	session.Host.HideUnsharedFields()
	session.Participant.HideUnsharedFields()
	return session
}

func publicSessions(sessions []models.Session) []models.Session {
	for i := range sessions {
		publicSession(&sessions[i])
	}
	return sessions
}
