package interfaces

import "fmt"

// Advisory messages shown next to cached data after a failed refresh
const (
	AdvisoryOffline     = "Offline Mode: Displaying last known data."
	AdvisoryAuthFailed  = "Authentication Failed (401). Displaying cached data."
	AdvisoryListStale   = "Update failed. Displaying last known data."
	AdvisoryDetailStale = "Update failed. Using cached data."
)

// FailureStatus is the status published when a fetch fails with nothing cached
func FailureStatus(err error) SyncStatus {
	if ClassifyError(err) == ErrorKindNetwork {
		return SyncStatusOffline
	}
	return SyncStatusError
}

// FailureMessage is the hard error shown when a fetch fails with nothing cached
func FailureMessage(err error) string {
	switch ClassifyError(err) {
	case ErrorKindAuth:
		return "Authentication Failed (401). Please check your API key."
	case ErrorKindRateLimited:
		return "Rate limit exceeded (429). Please retry in a minute."
	case ErrorKindServer:
		return "Server error. Please retry later."
	case ErrorKindNetwork:
		return "You are offline. Please check your connection and retry."
	default:
		if err == nil {
			return "Failed to load any data. Please retry."
		}
		return fmt.Sprintf("Failed to load any data: %v", err)
	}
}
