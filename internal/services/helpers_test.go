package services_test

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/laakri/DevCollab/internal/auth"
	"github.com/laakri/DevCollab/internal/email"
	"github.com/laakri/DevCollab/internal/repositories"
	"github.com/laakri/DevCollab/internal/services"
	"github.com/laakri/DevCollab/internal/testutil"
)

const testSecret = "test-secret-with-enough-entropy"

type testEnv struct {
	db       *gorm.DB
	tokens   *auth.TokenManager
	mail     *testutil.RecordingProvider
	auth     services.AuthService
	users    services.UserService
	posts    services.LearningPostService
	sessions services.SessionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	tokens, err := auth.NewTokenManager(testSecret, time.Hour, 24*time.Hour)
	require.NoError(t, err)

	mail := testutil.NewRecordingProvider()
	mailer := email.NewMailer(mail, "http://localhost:3000", 24*time.Hour)

	userRepo := repositories.NewUserRepository()
	postRepo := repositories.NewLearningPostRepository()
	sessionRepo := repositories.NewSessionRepository()

	return &testEnv{
		db:       testutil.NewTestDB(t),
		tokens:   tokens,
		mail:     mail,
		auth:     services.NewAuthService(userRepo, tokens, mailer),
		users:    services.NewUserService(userRepo),
		posts:    services.NewLearningPostService(postRepo, userRepo),
		sessions: services.NewSessionService(sessionRepo, userRepo),
	}
}

// tokenFromLink pulls the token query parameter out of a mailed link.
func tokenFromLink(t *testing.T, sent testutil.SentEmail) string {
	t.Helper()

	link, ok := sent.Data["VerificationLink"].(string)
	require.True(t, ok, "mail has no verification link")
	u, err := url.Parse(link)
	require.NoError(t, err)
	token := u.Query().Get("token")
	require.NotEmpty(t, token)
	return token
}

func ptr[T any](v T) *T {
	return &v
}

const (
	testWait = 2 * time.Second
	testTick = 10 * time.Millisecond
)
