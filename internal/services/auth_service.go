package services

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/laakri/DevCollab/internal/auth"
	"github.com/laakri/DevCollab/internal/email"
	"github.com/laakri/DevCollab/internal/logger"
	"github.com/laakri/DevCollab/internal/models"
	"github.com/laakri/DevCollab/internal/repositories"
	"github.com/laakri/DevCollab/internal/services/dto"
	"github.com/laakri/DevCollab/pkg/apperrors"
)

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.TokenResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.TokenResponse, error)
	VerifyEmail(db *gorm.DB, token string) error
	ResendVerification(db *gorm.DB, userID string) error
}

type AuthServiceImpl struct {
	userRepo repositories.UserRepository
	tokens   *auth.TokenManager
	mailer   *email.Mailer
}

func NewAuthService(
	userRepo repositories.UserRepository,
	tokens *auth.TokenManager,
	mailer *email.Mailer,
) AuthService {
	return &AuthServiceImpl{
		userRepo: userRepo,
		tokens:   tokens,
		mailer:   mailer,
	}
}

// Register creates an unverified account and returns a token for it.
// The verification mail is sent in the background.
func (s *AuthServiceImpl) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ValidationError(map[string]string{"password": err.Error()})
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := models.NewUser(normalizeEmail(req.Email), strings.TrimSpace(req.Username), hash)
	user.ID = uuid.NewString()
	user.FullName = strings.TrimSpace(req.FullName)
	user.Skills = models.NormalizeTags(req.Skills)
	user.Interests = models.NormalizeTags(req.Interests)

	verificationToken, tokenID, err := s.tokens.GenerateVerificationToken(user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	user.VerificationTokenID = tokenID

	if err := s.userRepo.Create(db, user); err != nil {
		return nil, handleUserError(err)
	}

	accessToken, err := s.tokens.GenerateAccessToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.sendVerificationEmail(user.Email, user.Username, verificationToken)

	return &dto.TokenResponse{AccessToken: accessToken}, nil
}

func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.FindByEmail(db, normalizeEmail(req.Email))
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsEmailVerified {
		return nil, apperrors.ErrEmailNotVerified
	}

	accessToken, err := s.tokens.GenerateAccessToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.TokenResponse{AccessToken: accessToken}, nil
}

// VerifyEmail accepts only the most recently issued verification token,
// and only once.
func (s *AuthServiceImpl) VerifyEmail(db *gorm.DB, token string) error {
	claims, err := s.tokens.ParseVerificationToken(token)
	if err != nil {
		return apperrors.ErrInvalidVerificationToken.WithError(err)
	}

	user, err := s.userRepo.FindByID(db, claims.UserID())
	if err != nil {
		return handleUserError(err)
	}

	if err := s.userRepo.ConsumeVerificationToken(db, user.ID, claims.ID); err != nil {
		if apperrors.Is(err, repositories.ErrVerificationTokenNotLive) {
			return apperrors.ErrInvalidVerificationToken
		}
		return apperrors.InternalError(err)
	}

	s.sendWelcomeEmail(user.Email, user.Username)
	return nil
}

// ResendVerification replaces the stored token id, so earlier links stop working.
func (s *AuthServiceImpl) ResendVerification(db *gorm.DB, userID string) error {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return handleUserError(err)
	}
	if user.IsEmailVerified {
		return apperrors.ErrEmailAlreadyVerified
	}

	token, tokenID, err := s.tokens.GenerateVerificationToken(user.ID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.SetVerificationTokenID(db, user.ID, tokenID); err != nil {
		return handleUserError(err)
	}

	s.sendVerificationEmail(user.Email, user.Username, token)
	return nil
}

func (s *AuthServiceImpl) sendVerificationEmail(to, username, token string) {
	if s.mailer == nil {
		return
	}

	go func() {
		if err := s.mailer.SendVerification(to, username, token); err != nil {
			logger.Error("Failed to send verification email", "to", to, "error", err)
		}
	}()
}

func (s *AuthServiceImpl) sendWelcomeEmail(to, username string) {
	if s.mailer == nil {
		return
	}

	go func() {
		if err := s.mailer.SendWelcome(to, username); err != nil {
			logger.Error("Failed to send welcome email", "to", to, "error", err)
		}
	}()
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}
