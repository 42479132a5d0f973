package repositories

import (
	"errors"

	"github.com/laakri/DevCollab/internal/models"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

var ErrLearningPostNotFound = errors.New("learning post not found")

type LearningPostRepository interface {
	Create(db *gorm.DB, post *models.LearningPost) error
	FindByID(db *gorm.DB, id string) (*models.LearningPost, error)

	// FindAll, FindByUser, FindByInterests and FindMatches return posts
	// newest first with their owner preloaded.
	FindAll(db *gorm.DB) ([]models.LearningPost, error)
	FindByUser(db *gorm.DB, userID string) ([]models.LearningPost, error)
	FindByInterests(db *gorm.DB, interests []string) ([]models.LearningPost, error)
	FindMatches(db *gorm.DB, user *models.User) ([]models.LearningPost, error)

	Update(db *gorm.DB, post *models.LearningPost) error
	Delete(db *gorm.DB, id string) error
}

type learningPostRepository struct{}

func NewLearningPostRepository() LearningPostRepository {
	return &learningPostRepository{}
}

func (r *learningPostRepository) Create(db *gorm.DB, post *models.LearningPost) error {
	return db.Create(post).Error
}

func (r *learningPostRepository) FindByID(db *gorm.DB, id string) (*models.LearningPost, error) {
	var post models.LearningPost
	if err := db.Preload("User").First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLearningPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *learningPostRepository) FindAll(db *gorm.DB) ([]models.LearningPost, error) {
	var posts []models.LearningPost
	err := newestFirst(db).Find(&posts).Error
	return posts, err
}

func (r *learningPostRepository) FindByUser(db *gorm.DB, userID string) ([]models.LearningPost, error) {
	var posts []models.LearningPost
	err := newestFirst(db).Where("user_id = ?", userID).Find(&posts).Error
	return posts, err
}

func (r *learningPostRepository) FindByInterests(db *gorm.DB, interests []string) ([]models.LearningPost, error) {
	posts := []models.LearningPost{}
	if len(interests) == 0 {
		return posts, nil
	}

	if isPostgres(db) {
		err := newestFirst(db).
			Where("(teaching_interests && ? OR learning_interests && ?)", pq.Array(interests), pq.Array(interests)).
			Find(&posts).Error
		return posts, err
	}

	// Dialects without array operators: filter in memory.
	var all []models.LearningPost
	if err := newestFirst(db).Find(&all).Error; err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].MatchesInterests(interests) {
			posts = append(posts, all[i])
		}
	}
	return posts, nil
}

func (r *learningPostRepository) FindMatches(db *gorm.DB, user *models.User) ([]models.LearningPost, error) {
	posts := []models.LearningPost{}
	if len(user.Interests) == 0 && len(user.Skills) == 0 {
		return posts, nil
	}

	if isPostgres(db) {
		err := newestFirst(db).
			Where("user_id <> ?", user.ID).
			Where("(teaching_interests && ? OR learning_interests && ?)",
				pq.Array([]string(user.Interests)), pq.Array([]string(user.Skills))).
			Find(&posts).Error
		return posts, err
	}

	var candidates []models.LearningPost
	if err := newestFirst(db).Where("user_id <> ?", user.ID).Find(&candidates).Error; err != nil {
		return nil, err
	}
	for i := range candidates {
		if candidates[i].MatchesUser(user) {
			posts = append(posts, candidates[i])
		}
	}
	return posts, nil
}

func (r *learningPostRepository) Update(db *gorm.DB, post *models.LearningPost) error {
	result := db.Model(post).
		Select("content", "teaching_interests", "learning_interests", "availability", "preferred_languages", "updated_at").
		Updates(post)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLearningPostNotFound
	}
	return nil
}

func (r *learningPostRepository) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.LearningPost{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLearningPostNotFound
	}
	return nil
}

func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Preload("User").Order("created_at DESC").Order("id DESC")
}

func isPostgres(db *gorm.DB) bool {
	return db.Dialector.Name() == "postgres"
}
