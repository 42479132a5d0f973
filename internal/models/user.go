package models

import (
	"gorm.io/datatypes"
)

// User is both the credential record and the public profile.
// PasswordHash and VerificationTokenID never leave the server.
type User struct {
	BaseModel
	Email           string      `gorm:"size:254;uniqueIndex;not null" json:"email,omitempty"`
	Username        string      `gorm:"size:30;uniqueIndex;not null" json:"username"`
	PasswordHash    string      `gorm:"not null" json:"-"`
	FullName        string      `json:"fullName"`
	Skills          StringArray `gorm:"not null" json:"skills"`
	Interests       StringArray `gorm:"not null" json:"interests"`
	IsEmailVerified bool        `gorm:"not null;default:false" json:"isEmailVerified"`
	Role            UserRole    `gorm:"type:varchar(20);not null;default:'user'" json:"role"`

	Bio         string `gorm:"type:text" json:"bio"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Education   string `json:"education"`
	GithubURL   string `json:"githubUrl"`
	LinkedinURL string `json:"linkedinUrl"`
	TwitterURL  string `json:"twitterUrl"`

	NotificationPreferences datatypes.JSONType[NotificationPreferences] `gorm:"not null" json:"notificationPreferences"`
	AppearanceSettings      datatypes.JSONType[AppearanceSettings]      `gorm:"not null" json:"appearanceSettings"`
	PrivacySettings         datatypes.JSONType[PrivacySettings]         `gorm:"not null" json:"privacySettings"`

	VerificationTokenID string `gorm:"type:varchar(64)" json:"-"`
}

// NewUser returns an unverified user with default settings. The caller
// supplies an already hashed password.
func NewUser(email, username, passwordHash string) *User {
	u := &User{
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
		Skills:       StringArray{},
		Interests:    StringArray{},
		Role:         UserRoleUser,
	}
	u.SetSettings(DefaultUserSettings())
	return u
}

// HideUnsharedFields blanks what the user keeps from other users before the
// record is embedded in someone else's response.
func (u *User) HideUnsharedFields() {
	if u == nil {
		return
	}
	if !u.PrivacySettings.Data().ShowEmail {
		u.Email = ""
	}
}

func (u *User) Settings() UserSettings {
	return UserSettings{
		NotificationPreferences: u.NotificationPreferences.Data(),
		AppearanceSettings:      u.AppearanceSettings.Data(),
		PrivacySettings:         u.PrivacySettings.Data(),
	}
}

func (u *User) SetSettings(s UserSettings) {
	u.NotificationPreferences = datatypes.NewJSONType(s.NotificationPreferences)
	u.AppearanceSettings = datatypes.NewJSONType(s.AppearanceSettings)
	u.PrivacySettings = datatypes.NewJSONType(s.PrivacySettings)
}

func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}
