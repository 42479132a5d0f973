package services

import (
	"github.com/laakri/DevCollab/internal/auth"
	"github.com/laakri/DevCollab/internal/email"
)

// ServiceContainer holds every service, built once at startup.
type ServiceContainer struct {
	AuthService         AuthService
	UserService         UserService
	LearningPostService LearningPostService
	SessionService      SessionService

	Tokens *auth.TokenManager
	Mailer *email.Mailer
}
