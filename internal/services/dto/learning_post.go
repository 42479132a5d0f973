package dto

// CreateLearningPostRequest uses the same naming as the stored post:
// teachingInterests are what the author can teach, learningInterests
// what the author wants to learn.
type CreateLearningPostRequest struct {
	Content            string   `json:"content" validate:"required,max=5000"`
	TeachingInterests  []string `json:"teachingInterests" validate:"max=50,tags"`
	LearningInterests  []string `json:"learningInterests" validate:"max=50,tags"`
	Availability       string   `json:"availability" validate:"max=200"`
	PreferredLanguages string   `json:"preferredLanguages" validate:"max=200"`
}

type UpdateLearningPostRequest struct {
	Content            *string  `json:"content" validate:"omitempty,min=1,max=5000"`
	TeachingInterests  []string `json:"teachingInterests" validate:"omitempty,max=50,tags"`
	LearningInterests  []string `json:"learningInterests" validate:"omitempty,max=50,tags"`
	Availability       *string  `json:"availability" validate:"omitempty,max=200"`
	PreferredLanguages *string  `json:"preferredLanguages" validate:"omitempty,max=200"`
}

// LearningPostQuery is bound from GET /learning-posts.
type LearningPostQuery struct {
	Interests string `form:"interests"`
}
