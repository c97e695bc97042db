package models

// NotificationSettings toggles per-channel notifications.
type NotificationSettings struct {
	NewMatches  bool `json:"newMatches"`
	NewMessages bool `json:"newMessages"`
	Events      bool `json:"events"`
	Marketing   bool `json:"marketing"`
}

// PrivacySettings controls what other users can see.
type PrivacySettings struct {
	ShowOnlineStatus  bool `json:"showOnlineStatus"`
	ShowLastSeen      bool `json:"showLastSeen"`
	AllowProfileViews bool `json:"allowProfileViews"`
}

// Settings is the per-device application settings blob.
type Settings struct {
	Theme         string               `json:"theme"`
	Notifications NotificationSettings `json:"notifications"`
	Privacy       PrivacySettings      `json:"privacy"`
	Preferences   Preferences          `json:"preferences"`
}

// DefaultSettings returns the settings written on first run.
func DefaultSettings() Settings {
	return Settings{
		Theme: "light",
		Notifications: NotificationSettings{
			NewMatches:  true,
			NewMessages: true,
			Events:      true,
			Marketing:   false,
		},
		Privacy: PrivacySettings{
			ShowOnlineStatus:  true,
			ShowLastSeen:      true,
			AllowProfileViews: true,
		},
		Preferences: DefaultPreferences(),
	}
}
