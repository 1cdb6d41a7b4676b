package session

// Storage keys. All values are plain strings or JSON, mirroring what the
// browser client kept in local storage.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUser         = "user"
	KeyDarkMode     = "dark_mode"
	KeyLanguage     = "language"
)

// Store is durable string key-value storage for session state and
// preferences.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	// Delete removes all given keys in a single persisted write, so a
	// session wipe is atomic on disk.
	Delete(keys ...string) error
}
