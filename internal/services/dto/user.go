package dto

import "github.com/laakri/DevCollab/internal/models"

// UpdateProfileRequest is a partial update. Nil fields are left as they are.
// It has no Role field, so a "role" key in the body is ignored.
type UpdateProfileRequest struct {
	FullName    *string  `json:"fullName" validate:"omitempty,max=100"`
	Username    *string  `json:"username" validate:"omitempty,min=1,max=30,username"`
	Bio         *string  `json:"bio" validate:"omitempty,max=2000"`
	Company     *string  `json:"company" validate:"omitempty,max=100"`
	Location    *string  `json:"location" validate:"omitempty,max=100"`
	Education   *string  `json:"education" validate:"omitempty,max=200"`
	GithubURL   *string  `json:"githubUrl" validate:"omitempty,http_url"`
	LinkedinURL *string  `json:"linkedinUrl" validate:"omitempty,http_url"`
	TwitterURL  *string  `json:"twitterUrl" validate:"omitempty,http_url"`
	Skills      []string `json:"skills" validate:"omitempty,max=50,tags"`
	Interests   []string `json:"interests" validate:"omitempty,max=50,tags"`
}

// UpdateSettingsRequest carries any subset of the three settings groups.
type UpdateSettingsRequest struct {
	NotificationPreferences *models.NotificationPreferencesPatch `json:"notificationPreferences"`
	AppearanceSettings      *models.AppearanceSettingsPatch      `json:"appearanceSettings"`
	PrivacySettings         *models.PrivacySettingsPatch         `json:"privacySettings"`
}

func (r *UpdateSettingsRequest) Patch() *models.UserSettingsPatch {
	return &models.UserSettingsPatch{
		NotificationPreferences: r.NotificationPreferences,
		AppearanceSettings:      r.AppearanceSettings,
		PrivacySettings:         r.PrivacySettings,
	}
}
