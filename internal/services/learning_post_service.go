package services

import (
	"strings"

	"gorm.io/gorm"

	"github.com/laakri/DevCollab/internal/models"
	"github.com/laakri/DevCollab/internal/policy"
	"github.com/laakri/DevCollab/internal/repositories"
	"github.com/laakri/DevCollab/internal/services/dto"
	"github.com/laakri/DevCollab/pkg/apperrors"
)

type LearningPostService interface {
	Create(db *gorm.DB, userID string, req *dto.CreateLearningPostRequest) (*models.LearningPost, error)
	FindAll(db *gorm.DB) ([]models.LearningPost, error)
	FindByInterests(db *gorm.DB, interests []string) ([]models.LearningPost, error)
	FindByUser(db *gorm.DB, userID string) ([]models.LearningPost, error)
	FindMatches(db *gorm.DB, userID string) ([]models.LearningPost, error)
	FindOne(db *gorm.DB, id string) (*models.LearningPost, error)
	Update(db *gorm.DB, id string, actor policy.Actor, req *dto.UpdateLearningPostRequest) (*models.LearningPost, error)
	Delete(db *gorm.DB, id string, actor policy.Actor) error
}

type LearningPostServiceImpl struct {
	postRepo repositories.LearningPostRepository
	userRepo repositories.UserRepository
	policy   policy.Policy
}

// NewLearningPostService only lets a post's author change or delete it.
func NewLearningPostService(
	postRepo repositories.LearningPostRepository,
	userRepo repositories.UserRepository,
) LearningPostService {
	return &LearningPostServiceImpl{
		postRepo: postRepo,
		userRepo: userRepo,
		policy:   policy.NewOwnershipPolicy(),
	}
}

func (s *LearningPostServiceImpl) Create(db *gorm.DB, userID string, req *dto.CreateLearningPostRequest) (*models.LearningPost, error) {
	if _, err := s.userRepo.FindByID(db, userID); err != nil {
		return nil, handleUserError(err)
	}

	post := &models.LearningPost{
		Content:            strings.TrimSpace(req.Content),
		TeachingInterests:  models.NormalizeTags(req.TeachingInterests),
		LearningInterests:  models.NormalizeTags(req.LearningInterests),
		Availability:       strings.TrimSpace(req.Availability),
		PreferredLanguages: strings.TrimSpace(req.PreferredLanguages),
		UserID:             userID,
	}

	if err := s.postRepo.Create(db, post); err != nil {
		return nil, apperrors.InternalError(err)
	}

	created, err := s.postRepo.FindByID(db, post.ID)
	if err != nil {
		return nil, handleLearningPostError(err, post.ID)
	}
	return publicPost(created), nil
}

func (s *LearningPostServiceImpl) FindAll(db *gorm.DB) ([]models.LearningPost, error) {
	posts, err := s.postRepo.FindAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return publicPosts(posts), nil
}

// FindByInterests returns posts that teach or seek any of interests.
func (s *LearningPostServiceImpl) FindByInterests(db *gorm.DB, interests []string) ([]models.LearningPost, error) {
	posts, err := s.postRepo.FindByInterests(db, models.NormalizeTags(interests))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return publicPosts(posts), nil
}

func (s *LearningPostServiceImpl) FindByUser(db *gorm.DB, userID string) ([]models.LearningPost, error) {
	posts, err := s.postRepo.FindByUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return publicPosts(posts), nil
}

// FindMatches returns other users' posts that teach what userID wants to
// learn or seek what userID can teach.
func (s *LearningPostServiceImpl) FindMatches(db *gorm.DB, userID string) ([]models.LearningPost, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, handleUserError(err)
	}

	posts, err := s.postRepo.FindMatches(db, user)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return publicPosts(posts), nil
}

func (s *LearningPostServiceImpl) FindOne(db *gorm.DB, id string) (*models.LearningPost, error) {
	post, err := s.postRepo.FindByID(db, id)
	if err != nil {
		return nil, handleLearningPostError(err, id)
	}
	return publicPost(post), nil
}

func (s *LearningPostServiceImpl) Update(db *gorm.DB, id string, actor policy.Actor, req *dto.UpdateLearningPostRequest) (*models.LearningPost, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	post, err := s.postRepo.FindByID(tx, id)
	if err != nil {
		return nil, handleLearningPostError(err, id)
	}

	if !s.policy.Can(actor, policy.ActionUpdate, post) {
		return nil, apperrors.ErrNotPostOwnerUpdate
	}

	if req.Content != nil {
		post.Content = strings.TrimSpace(*req.Content)
	}
	if req.TeachingInterests != nil {
		post.TeachingInterests = models.NormalizeTags(req.TeachingInterests)
	}
	if req.LearningInterests != nil {
		post.LearningInterests = models.NormalizeTags(req.LearningInterests)
	}
	applyString(&post.Availability, req.Availability)
	applyString(&post.PreferredLanguages, req.PreferredLanguages)

	if err := s.postRepo.Update(tx, post); err != nil {
		return nil, handleLearningPostError(err, id)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return publicPost(post), nil
}

func (s *LearningPostServiceImpl) Delete(db *gorm.DB, id string, actor policy.Actor) error {
	post, err := s.postRepo.FindByID(db, id)
	if err != nil {
		return handleLearningPostError(err, id)
	}

	if !s.policy.Can(actor, policy.ActionDelete, post) {
		return apperrors.ErrNotPostOwnerDelete
	}

	if err := s.postRepo.Delete(db, id); err != nil {
		return handleLearningPostError(err, id)
	}
	return nil
}

// publicPost hides author fields the author has not chosen to share.
func publicPost(post *models.LearningPost) *models.LearningPost {
	post.User.HideUnsharedFields()
	return post
}

func publicPosts(posts []models.LearningPost) []models.LearningPost {
	for i := range posts {
		publicPost(&posts[i])
	}
	return posts
}
