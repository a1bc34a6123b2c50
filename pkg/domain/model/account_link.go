package model

// Site settings keys holding the linked Google account. They are never
// exposed through the settings API.
const (
	SettingGoogleRefreshToken = "google_refresh_token"
	SettingGoogleConnected    = "google_connected"
)

// AccountLink is the singleton state of the linked Google account.
type AccountLink struct {
	RefreshToken string
	Connected    bool
}

// IsLinked reports whether automation can use this link.
func (x *AccountLink) IsLinked() bool {
	return x != nil && x.Connected && x.RefreshToken != ""
}

// AccountLinkFromSettings reads the link from raw settings values.
// Missing keys yield an unlinked state.
func AccountLinkFromSettings(values map[string]string) *AccountLink {
	return &AccountLink{
		RefreshToken: values[SettingGoogleRefreshToken],
		Connected:    values[SettingGoogleConnected] == "true",
	}
}

// Settings returns the values written when linking.
func (x *AccountLink) Settings() map[string]string {
	return map[string]string{
		SettingGoogleRefreshToken: x.RefreshToken,
		SettingGoogleConnected:    "true",
	}
}

// AccountLinkKeys are the settings keys removed on unlink.
func AccountLinkKeys() []string {
	return []string{SettingGoogleRefreshToken, SettingGoogleConnected}
}
