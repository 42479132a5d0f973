package models

// NotificationPreferences controls which mails and reminders a user gets.
type NotificationPreferences struct {
	LearningReminders bool `json:"learningReminders"`
	CommunityActivity bool `json:"communityActivity"`
	DirectMessages    bool `json:"directMessages"`
	ProjectInvites    bool `json:"projectInvites"`
	SessionReminders  bool `json:"sessionReminders"`
}

type AppearanceSettings struct {
	Theme           string `json:"theme"`
	FontSize        string `json:"fontSize"`
	CodeEditorTheme string `json:"codeEditorTheme"`
}

type PrivacySettings struct {
	PublicProfile        bool `json:"publicProfile"`
	ShowEmail            bool `json:"showEmail"`
	ShowLearningProgress bool `json:"showLearningProgress"`
	ShowOnlineStatus     bool `json:"showOnlineStatus"`
	AllowAnalytics       bool `json:"allowAnalytics"`
	AllowPersonalization bool `json:"allowPersonalization"`
}

// UserSettings is the full settings document returned by the API.
type UserSettings struct {
	NotificationPreferences NotificationPreferences `json:"notificationPreferences"`
	AppearanceSettings      AppearanceSettings      `json:"appearanceSettings"`
	PrivacySettings         PrivacySettings         `json:"privacySettings"`
}

func DefaultNotificationPreferences() NotificationPreferences {
	return NotificationPreferences{
		LearningReminders: true,
		CommunityActivity: true,
		DirectMessages:    true,
		ProjectInvites:    true,
		SessionReminders:  true,
	}
}

func DefaultAppearanceSettings() AppearanceSettings {
	return AppearanceSettings{
		Theme:           "system",
		FontSize:        "medium",
		CodeEditorTheme: "github",
	}
}

func DefaultPrivacySettings() PrivacySettings {
	return PrivacySettings{
		PublicProfile:        true,
		ShowEmail:            false,
		ShowLearningProgress: true,
		ShowOnlineStatus:     true,
		AllowAnalytics:       true,
		AllowPersonalization: true,
	}
}

func DefaultUserSettings() UserSettings {
	return UserSettings{
		NotificationPreferences: DefaultNotificationPreferences(),
		AppearanceSettings:      DefaultAppearanceSettings(),
		PrivacySettings:         DefaultPrivacySettings(),
	}
}

// ============================================================================
// Partial updates. A nil field means "keep the stored value".
// ============================================================================

type NotificationPreferencesPatch struct {
	LearningReminders *bool `json:"learningReminders"`
	CommunityActivity *bool `json:"communityActivity"`
	DirectMessages    *bool `json:"directMessages"`
	ProjectInvites    *bool `json:"projectInvites"`
	SessionReminders  *bool `json:"sessionReminders"`
}

type AppearanceSettingsPatch struct {
	Theme           *string `json:"theme" validate:"omitempty,oneof=light dark system"`
	FontSize        *string `json:"fontSize" validate:"omitempty,oneof=small medium large"`
	CodeEditorTheme *string `json:"codeEditorTheme" validate:"omitempty,min=1,max=50"`
}

type PrivacySettingsPatch struct {
	PublicProfile        *bool `json:"publicProfile"`
	ShowEmail            *bool `json:"showEmail"`
	ShowLearningProgress *bool `json:"showLearningProgress"`
	ShowOnlineStatus     *bool `json:"showOnlineStatus"`
	AllowAnalytics       *bool `json:"allowAnalytics"`
	AllowPersonalization *bool `json:"allowPersonalization"`
}

type UserSettingsPatch struct {
	NotificationPreferences *NotificationPreferencesPatch `json:"notificationPreferences"`
	AppearanceSettings      *AppearanceSettingsPatch      `json:"appearanceSettings"`
	PrivacySettings         *PrivacySettingsPatch         `json:"privacySettings"`
}

func (p NotificationPreferences) Apply(patch *NotificationPreferencesPatch) NotificationPreferences {
	if patch == nil {
		return p
	}
	mergeBool(&p.LearningReminders, patch.LearningReminders)
	mergeBool(&p.CommunityActivity, patch.CommunityActivity)
	mergeBool(&p.DirectMessages, patch.DirectMessages)
	mergeBool(&p.ProjectInvites, patch.ProjectInvites)
	mergeBool(&p.SessionReminders, patch.SessionReminders)
	return p
}

func (s AppearanceSettings) Apply(patch *AppearanceSettingsPatch) AppearanceSettings {
	if patch == nil {
		return s
	}
	mergeString(&s.Theme, patch.Theme)
	mergeString(&s.FontSize, patch.FontSize)
	mergeString(&s.CodeEditorTheme, patch.CodeEditorTheme)
	return s
}

func (s PrivacySettings) Apply(patch *PrivacySettingsPatch) PrivacySettings {
	if patch == nil {
		return s
	}
	mergeBool(&s.PublicProfile, patch.PublicProfile)
	mergeBool(&s.ShowEmail, patch.ShowEmail)
	mergeBool(&s.ShowLearningProgress, patch.ShowLearningProgress)
	mergeBool(&s.ShowOnlineStatus, patch.ShowOnlineStatus)
	mergeBool(&s.AllowAnalytics, patch.AllowAnalytics)
	mergeBool(&s.AllowPersonalization, patch.AllowPersonalization)
	return s
}

// Apply merges every supplied group onto s.
func (s UserSettings) Apply(patch *UserSettingsPatch) UserSettings {
	if patch == nil {
		return s
	}
	return UserSettings{
		NotificationPreferences: s.NotificationPreferences.Apply(patch.NotificationPreferences),
		AppearanceSettings:      s.AppearanceSettings.Apply(patch.AppearanceSettings),
		PrivacySettings:         s.PrivacySettings.Apply(patch.PrivacySettings),
	}
}

func mergeBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func mergeString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
