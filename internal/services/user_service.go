package services

import (
	"strings"

	"gorm.io/gorm"

	"github.com/laakri/DevCollab/internal/models"
	"github.com/laakri/DevCollab/internal/repositories"
	"github.com/laakri/DevCollab/internal/services/dto"
	"github.com/laakri/DevCollab/pkg/apperrors"
)

type UserService interface {
	GetProfile(db *gorm.DB, userID string) (*models.User, error)
	UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*models.User, error)
	GetSettings(db *gorm.DB, userID string) (*models.UserSettings, error)
	UpdateSettings(db *gorm.DB, userID string, req *dto.UpdateSettingsRequest) (*models.UserSettings, error)
}

type UserServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

func (s *UserServiceImpl) GetProfile(db *gorm.DB, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, handleUserError(err)
	}
	return user, nil
}

func (s *UserServiceImpl) UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*models.User, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	user, err := s.userRepo.FindByID(tx, userID)
	if err != nil {
		return nil, handleUserError(err)
	}

	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if username != user.Username {
			taken, err := s.userRepo.UsernameTaken(tx, username, user.ID)
			if err != nil {
				return nil, apperrors.InternalError(err)
			}
			if taken {
				return nil, apperrors.ErrUsernameTaken
			}
			user.Username = username
		}
	}

	applyString(&user.FullName, req.FullName)
	applyString(&user.Bio, req.Bio)
	applyString(&user.Company, req.Company)
	applyString(&user.Location, req.Location)
	applyString(&user.Education, req.Education)
	applyString(&user.GithubURL, req.GithubURL)
	applyString(&user.LinkedinURL, req.LinkedinURL)
	applyString(&user.TwitterURL, req.TwitterURL)
	if req.Skills != nil {
		user.Skills = models.NormalizeTags(req.Skills)
	}
	if req.Interests != nil {
		user.Interests = models.NormalizeTags(req.Interests)
	}

	if err := s.userRepo.UpdateProfile(tx, user); err != nil {
		return nil, handleUserError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

func (s *UserServiceImpl) GetSettings(db *gorm.DB, userID string) (*models.UserSettings, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, handleUserError(err)
	}
	settings := user.Settings()
	return &settings, nil
}

// UpdateSettings merges each supplied key onto the stored settings.
func (s *UserServiceImpl) UpdateSettings(db *gorm.DB, userID string, req *dto.UpdateSettingsRequest) (*models.UserSettings, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	user, err := s.userRepo.FindByID(tx, userID)
	if err != nil {
		return nil, handleUserError(err)
	}

	merged := user.Settings().Apply(req.Patch())
	user.SetSettings(merged)

	if err := s.userRepo.UpdateSettings(tx, user); err != nil {
		return nil, handleUserError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &merged, nil
}

func applyString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
