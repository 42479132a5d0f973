package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laakri/DevCollab/internal/email"
	"github.com/laakri/DevCollab/internal/models"
	"github.com/laakri/DevCollab/internal/services/dto"
	"github.com/laakri/DevCollab/internal/testutil"
	"github.com/laakri/DevCollab/pkg/apperrors"
)

func registerRequest(emailAddr, username string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Email:     emailAddr,
		Username:  username,
		Password:  testutil.DefaultPassword,
		FullName:  "  Ada Lovelace ",
		Skills:    []string{" Go ", "SQL", "Go"},
		Interests: []string{"Rust"},
	}
}

func TestAuthService_RegisterVerifyLogin(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.auth.Register(env.db, registerRequest("A@X.com ", "a"))
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)

	claims, err := env.tokens.ParseAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "a", claims.Username)
	assert.Equal(t, string(models.UserRoleUser), claims.Role)

	var stored models.User
	require.NoError(t, env.db.First(&stored, "id = ?", claims.UserID()).Error)
	assert.Equal(t, "a@x.com", stored.Email)
	assert.Equal(t, "Ada Lovelace", stored.FullName)
	assert.Equal(t, models.StringArray{"Go", "SQL"}, stored.Skills)
	assert.False(t, stored.IsEmailVerified)
	assert.NotEqual(t, testutil.DefaultPassword, stored.PasswordHash)

	_, err = env.auth.Login(env.db, &dto.LoginRequest{Email: "a@x.com", Password: testutil.DefaultPassword})
	assert.ErrorIs(t, err, apperrors.ErrEmailNotVerified)

	sent := env.mail.WaitFor(t, email.TemplateVerification, "a@x.com")
	assert.Equal(t, email.SubjectVerification, sent.Subject)
	token := tokenFromLink(t, sent)

	require.NoError(t, env.auth.VerifyEmail(env.db, token))
	env.mail.WaitFor(t, email.TemplateWelcome, "a@x.com")

	login, err := env.auth.Login(env.db, &dto.LoginRequest{Email: "a@x.com", Password: testutil.DefaultPassword})
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)
}

func TestAuthService_VerificationTokenIsSingleUse(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Register(env.db, registerRequest("a@x.com", "a"))
	require.NoError(t, err)
	token := tokenFromLink(t, env.mail.WaitFor(t, email.TemplateVerification, "a@x.com"))

	require.NoError(t, env.auth.VerifyEmail(env.db, token))
	assert.ErrorIs(t, env.auth.VerifyEmail(env.db, token), apperrors.ErrInvalidVerificationToken)
}

func TestAuthService_VerifyRejectsOtherTokens(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.auth.Register(env.db, registerRequest("a@x.com", "a"))
	require.NoError(t, err)

	// an access token is not a verification token
	assert.ErrorIs(t, env.auth.VerifyEmail(env.db, resp.AccessToken), apperrors.ErrInvalidVerificationToken)
	assert.ErrorIs(t, env.auth.VerifyEmail(env.db, "garbage"), apperrors.ErrInvalidVerificationToken)
}

func TestAuthService_RegisterDuplicates(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Register(env.db, registerRequest("a@x.com", "a"))
	require.NoError(t, err)

	_, err = env.auth.Register(env.db, registerRequest("A@x.com", "b"))
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)

	_, err = env.auth.Register(env.db, registerRequest("b@x.com", "a"))
	assert.ErrorIs(t, err, apperrors.ErrUsernameTaken)

	var count int64
	require.NoError(t, env.db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAuthService_RegisterRejectsShortPassword(t *testing.T) {
	env := newTestEnv(t)

	req := registerRequest("a@x.com", "a")
	req.Password = "short"
	_, err := env.auth.Register(env.db, req)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
}

func TestAuthService_LoginFailuresLookAlike(t *testing.T) {
	env := newTestEnv(t)
	testutil.CreateUser(t, env.db, "a@x.com", "a")

	_, err := env.auth.Login(env.db, &dto.LoginRequest{Email: "a@x.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = env.auth.Login(env.db, &dto.LoginRequest{Email: "nobody@x.com", Password: testutil.DefaultPassword})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthService_ResendVerificationInvalidatesOldLink(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.auth.Register(env.db, registerRequest("a@x.com", "a"))
	require.NoError(t, err)
	first := tokenFromLink(t, env.mail.WaitFor(t, email.TemplateVerification, "a@x.com"))

	claims, err := env.tokens.ParseAccessToken(resp.AccessToken)
	require.NoError(t, err)
	require.NoError(t, env.auth.ResendVerification(env.db, claims.UserID()))

	require.Eventually(t, func() bool {
		return env.mail.Count(email.TemplateVerification) == 2
	}, testWait, testTick)
	second := tokenFromLink(t, env.mail.WaitFor(t, email.TemplateVerification, "a@x.com"))
	require.NotEqual(t, first, second)

	assert.ErrorIs(t, env.auth.VerifyEmail(env.db, first), apperrors.ErrInvalidVerificationToken)
	require.NoError(t, env.auth.VerifyEmail(env.db, second))

	err = env.auth.ResendVerification(env.db, claims.UserID())
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyVerified)
}
