package repositories

import (
	"errors"

	"github.com/laakri/DevCollab/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound             = errors.New("user not found")
	ErrEmailTaken               = errors.New("email already in use")
	ErrUsernameTaken            = errors.New("username already taken")
	ErrVerificationTokenNotLive = errors.New("verification token is not current")
)

var profileColumns = []string{
	"full_name", "username", "bio", "company", "location", "education",
	"github_url", "linkedin_url", "twitter_url", "skills", "interests", "updated_at",
}

var settingsColumns = []string{
	"notification_preferences", "appearance_settings", "privacy_settings", "updated_at",
}

// UserRepository persists users. Every method takes the *gorm.DB to run
// on, which may be a transaction.
type UserRepository interface {
	// Create inserts user, failing with ErrEmailTaken or ErrUsernameTaken.
	Create(db *gorm.DB, user *models.User) error

	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	FindByIDs(db *gorm.DB, ids []string) ([]models.User, error)

	// UsernameTaken reports whether another user (not excludeID) holds username.
	UsernameTaken(db *gorm.DB, username, excludeID string) (bool, error)

	UpdateProfile(db *gorm.DB, user *models.User) error
	UpdateSettings(db *gorm.DB, user *models.User) error

	SetVerificationTokenID(db *gorm.DB, userID, tokenID string) error

	// ConsumeVerificationToken marks the user verified if tokenID is the
	// current token and clears it, so a token works at most once.
	ConsumeVerificationToken(db *gorm.DB, userID, tokenID string) error
}

type userRepository struct{}

func NewUserRepository() UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(db *gorm.DB, user *models.User) error {
	if err := r.checkTaken(db, user); err != nil {
		return err
	}

	// The savepoint keeps an outer transaction usable after a unique
	// violation, so the colliding column can be looked up again.
	err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(user).Error
	})
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return err
	}

	// lost a race against a concurrent registration
	if takenErr := r.checkTaken(db, user); takenErr != nil {
		return takenErr
	}
	return ErrEmailTaken
}

// checkTaken returns ErrEmailTaken or ErrUsernameTaken if another row
// already holds the user's email or username.
func (r *userRepository) checkTaken(db *gorm.DB, user *models.User) error {
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrEmailTaken
	}

	if err := db.Model(&models.User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrUsernameTaken
	}
	return nil
}

func (r *userRepository) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByIDs(db *gorm.DB, ids []string) ([]models.User, error) {
	var users []models.User
	if len(ids) == 0 {
		return users, nil
	}
	err := db.Where("id IN ?", ids).Find(&users).Error
	return users, err
}

func (r *userRepository) UsernameTaken(db *gorm.DB, username, excludeID string) (bool, error) {
	var count int64
	err := db.Model(&models.User{}).
		Where("username = ? AND id <> ?", username, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepository) UpdateProfile(db *gorm.DB, user *models.User) error {
	result := db.Model(user).Select(profileColumns).Updates(user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrUsernameTaken
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) UpdateSettings(db *gorm.DB, user *models.User) error {
	result := db.Model(user).Select(settingsColumns).Updates(user)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) SetVerificationTokenID(db *gorm.DB, userID, tokenID string) error {
	result := db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("verification_token_id", tokenID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) ConsumeVerificationToken(db *gorm.DB, userID, tokenID string) error {
	if tokenID == "" {
		return ErrVerificationTokenNotLive
	}
	result := db.Model(&models.User{}).
		Where("id = ? AND verification_token_id = ?", userID, tokenID).
		Updates(map[string]interface{}{
			"is_email_verified":     true,
			"verification_token_id": "",
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVerificationTokenNotLive
	}
	return nil
}
