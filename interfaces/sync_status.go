package interfaces

// SyncStatus is the state shared by the list and detail synchronization machines
type SyncStatus string

const (
	SyncStatusIdle    SyncStatus = "idle"
	SyncStatusLoading SyncStatus = "loading"
	SyncStatusSuccess SyncStatus = "success"
	SyncStatusError   SyncStatus = "error"
	SyncStatusOffline SyncStatus = "offline"
)

func (s SyncStatus) String() string {
	return string(s)
}

// IsFailure reports whether the status is a hard failure (error or offline)
func (s SyncStatus) IsFailure() bool {
	return s == SyncStatusError || s == SyncStatusOffline
}

// ThemeMode is the persisted UI theme preference
type ThemeMode string

const (
	ThemeModeLight ThemeMode = "light"
	ThemeModeDark  ThemeMode = "dark"
)

// Valid reports whether the mode is one of the accepted values
func (m ThemeMode) Valid() bool {
	return m == ThemeModeLight || m == ThemeModeDark
}

// Toggled returns the opposite mode
func (m ThemeMode) Toggled() ThemeMode {
	if m == ThemeModeDark {
		return ThemeModeLight
	}
	return ThemeModeDark
}
