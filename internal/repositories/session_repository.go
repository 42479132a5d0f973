package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/laakri/DevCollab/internal/models"

	"gorm.io/gorm"
)

var ErrSessionNotFound = errors.New("session not found")

// ReminderMember names the column that records one member's reminder.
type ReminderMember string

const (
	ReminderHost        ReminderMember = "host_reminded_at"
	ReminderParticipant ReminderMember = "participant_reminded_at"
)

type SessionRepository interface {
	Create(db *gorm.DB, session *models.Session) error
	FindByID(db *gorm.DB, id string) (*models.Session, error)
	FindAll(db *gorm.DB) ([]models.Session, error)
	FindByStatus(db *gorm.DB, status models.SessionStatus) ([]models.Session, error)
	FindByHost(db *gorm.DB, hostID string) ([]models.Session, error)
	FindByParticipant(db *gorm.DB, participantID string) ([]models.Session, error)
	Update(db *gorm.DB, session *models.Session) error
	Delete(db *gorm.DB, id string) error

	// FindDueForReminder returns scheduled sessions starting in [from, to)
	// that have not been reminded yet.
	FindDueForReminder(db *gorm.DB, from, to time.Time) ([]models.Session, error)
	MarkReminderSent(db *gorm.DB, id string, at time.Time) error
	// MarkMemberReminded records a delivered reminder for one member.
	MarkMemberReminded(db *gorm.DB, id string, member ReminderMember, at time.Time) error
}

type sessionRepository struct{}

func NewSessionRepository() SessionRepository {
	return &sessionRepository{}
}

func (r *sessionRepository) Create(db *gorm.DB, session *models.Session) error {
	return db.Create(session).Error
}

func (r *sessionRepository) FindByID(db *gorm.DB, id string) (*models.Session, error) {
	var session models.Session
	if err := withMembers(db).First(&session, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) FindAll(db *gorm.DB) ([]models.Session, error) {
	var sessions []models.Session
	err := bySchedule(db).Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepository) FindByStatus(db *gorm.DB, status models.SessionStatus) ([]models.Session, error) {
	var sessions []models.Session
	err := bySchedule(db).Where("status = ?", status).Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepository) FindByHost(db *gorm.DB, hostID string) ([]models.Session, error) {
	var sessions []models.Session
	err := bySchedule(db).Where("host_id = ?", hostID).Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepository) FindByParticipant(db *gorm.DB, participantID string) ([]models.Session, error) {
	var sessions []models.Session
	err := bySchedule(db).Where("participant_id = ?", participantID).Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepository) Update(db *gorm.DB, session *models.Session) error {
	result := db.Model(session).
		Select("scheduled_at", "duration", "status", "topic", "description", "reminder_sent_at", "host_reminded_at", "participant_reminded_at", "updated_at").
		Updates(session)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (r *sessionRepository) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Session{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (r *sessionRepository) FindDueForReminder(db *gorm.DB, from, to time.Time) ([]models.Session, error) {
	var sessions []models.Session
	err := bySchedule(db).
		Where("status = ?", models.SessionStatusScheduled).
		Where("reminder_sent_at IS NULL").
		Where("scheduled_at >= ? AND scheduled_at < ?", from, to).
		Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepository) MarkReminderSent(db *gorm.DB, id string, at time.Time) error {
	result := db.Model(&models.Session{}).
		Where("id = ? AND reminder_sent_at IS NULL", id).
		Update("reminder_sent_at", at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func withMembers(db *gorm.DB) *gorm.DB {
	return db.Preload("Host").Preload("Participant")
}

func bySchedule(db *gorm.DB) *gorm.DB {
	return withMembers(db).Order("scheduled_at ASC")
}

func (r *sessionRepository) MarkMemberReminded(db *gorm.DB, id string, member ReminderMember, at time.Time) error {
	switch member {
	case ReminderHost, ReminderParticipant:
	default:
		return fmt.Errorf("unknown reminder member %q", member)
	}

	result := db.Model(&models.Session{}).
		Where("id = ? AND "+string(member)+" IS NULL", id).
		Update(string(member), at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}
