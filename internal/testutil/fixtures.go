package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/laakri/DevCollab/internal/models"
)

const DefaultPassword = "Secret123"

// CreateUser inserts a verified user whose password is DefaultPassword.
// Hashing uses the minimum bcrypt cost to keep tests fast.
func CreateUser(t *testing.T, db *gorm.DB, email, username string, opts ...func(*models.User)) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.NewUser(email, username, string(hash))
	user.IsEmailVerified = true
	for _, opt := range opts {
		opt(user)
	}

	require.NoError(t, db.Create(user).Error)
	return user
}

func WithSkills(skills ...string) func(*models.User) {
	return func(u *models.User) { u.Skills = skills }
}

func WithInterests(interests ...string) func(*models.User) {
	return func(u *models.User) { u.Interests = interests }
}

func Unverified() func(*models.User) {
	return func(u *models.User) { u.IsEmailVerified = false }
}

func AsAdmin() func(*models.User) {
	return func(u *models.User) { u.Role = models.UserRoleAdmin }
}

// CreatePost inserts a post owned by userID at the given creation time.
func CreatePost(t *testing.T, db *gorm.DB, userID string, createdAt time.Time, teaching, learning []string) *models.LearningPost {
	t.Helper()

	post := &models.LearningPost{
		Content:           "post by " + userID,
		TeachingInterests: teaching,
		LearningInterests: learning,
		UserID:            userID,
	}
	post.CreatedAt = createdAt.UTC()
	require.NoError(t, db.Create(post).Error)
	return post
}

// CreateSession inserts a SCHEDULED session.
func CreateSession(t *testing.T, db *gorm.DB, hostID, participantID string, at time.Time) *models.Session {
	t.Helper()

	session := &models.Session{
		ScheduledAt:   at.UTC(),
		Duration:      60,
		Status:        models.SessionStatusScheduled,
		Topic:         "Pairing on Go",
		HostID:        hostID,
		ParticipantID: participantID,
	}
	require.NoError(t, db.Create(session).Error)
	return session
}
