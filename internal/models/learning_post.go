package models

// LearningPost advertises what its author can teach and wants to learn.
type LearningPost struct {
	BaseModel
	Content            string      `gorm:"type:text;not null" json:"content"`
	TeachingInterests  StringArray `gorm:"not null" json:"teachingInterests"`
	LearningInterests  StringArray `gorm:"not null" json:"learningInterests"`
	Availability       string      `json:"availability,omitempty"`
	PreferredLanguages string      `json:"preferredLanguages,omitempty"`

	UserID string `gorm:"size:36;not null;index" json:"userId"`
	User   *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

// GetUserID makes posts usable with policy.Ownable.
func (p *LearningPost) GetUserID() string {
	return p.UserID
}

// MatchesInterests reports whether the post teaches or seeks any of tags.
func (p *LearningPost) MatchesInterests(tags []string) bool {
	return p.TeachingInterests.Overlaps(tags) || p.LearningInterests.Overlaps(tags)
}

// MatchesUser reports whether the post teaches something u wants to learn
// or seeks something u can teach.
func (p *LearningPost) MatchesUser(u *User) bool {
	return p.TeachingInterests.Overlaps(u.Interests) || p.LearningInterests.Overlaps(u.Skills)
}
