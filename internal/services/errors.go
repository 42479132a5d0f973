package services

import (
	"github.com/laakri/DevCollab/internal/repositories"
	"github.com/laakri/DevCollab/pkg/apperrors"
)

// handleUserError maps user repository errors to API errors.
func handleUserError(err error) error {
	switch {
	case apperrors.Is(err, repositories.ErrUserNotFound):
		return apperrors.ErrUserNotFound
	case apperrors.Is(err, repositories.ErrEmailTaken):
		return apperrors.ErrEmailAlreadyExists
	case apperrors.Is(err, repositories.ErrUsernameTaken):
		return apperrors.ErrUsernameTaken
	}
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	return apperrors.InternalError(err)
}

func handleLearningPostError(err error, id string) error {
	if apperrors.Is(err, repositories.ErrLearningPostNotFound) {
		return apperrors.ErrLearningPostNotFound(id)
	}
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	return apperrors.InternalError(err)
}

func handleSessionError(err error, id string) error {
	if apperrors.Is(err, repositories.ErrSessionNotFound) {
		return apperrors.ErrSessionNotFound(id)
	}
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	return apperrors.InternalError(err)
}
