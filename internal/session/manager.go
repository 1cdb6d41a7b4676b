package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/timur/tennis-hub/internal/domain"
)

// AuthAPI is the slice of the API client the Manager needs for credential
// lifecycle transitions.
type AuthAPI interface {
	ObtainToken(ctx context.Context, username, password string) (access, refresh string, err error)
	Register(ctx context.Context, input domain.RegisterInput) error
	FetchProfile(ctx context.Context) (*domain.Profile, error)
}

// Manager mediates all credential lifecycle transitions and exposes the
// current auth state. All mutation of the persisted session goes through it.
type Manager struct {
	store Store
	api   AuthAPI
	log   zerolog.Logger

	mu      sync.RWMutex
	current Session
}

func NewManager(store Store, api AuthAPI, log zerolog.Logger) *Manager {
	return &Manager{
		store: store,
		api:   api,
		log:   log,
	}
}

// Restore rebuilds the in-memory session from durable storage. No network
// call is made and no error is possible: anything missing or malformed
// leaves the client logged out.
func (m *Manager) Restore() {
	access, okAccess := m.store.Get(KeyAccessToken)
	refresh, okRefresh := m.store.Get(KeyRefreshToken)
	rawUser, okUser := m.store.Get(KeyUser)
	if !okAccess || !okRefresh || !okUser {
		return
	}

	var user domain.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil || user.Username == "" {
		m.log.Warn().Msg("[session.Restore] malformed persisted user, starting logged out")
		return
	}

	m.mu.Lock()
	m.current = Session{AccessToken: access, RefreshToken: refresh, User: user}
	m.mu.Unlock()
	m.log.Debug().Str("username", user.Username).Msg("[session.Restore] session restored")
}

// Login exchanges credentials for a token pair and establishes a session.
// If the follow-up profile fetch fails or returns no profile, the session is
// still established with a minimal user record built from the submitted
// username; partial success never rolls back.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	access, refresh, err := m.api.ObtainToken(ctx, username, password)
	if err != nil {
		m.log.Debug().Err(err).Str("username", username).Msg("[session.Login] credential exchange failed")
		return err
	}

	// Persist tokens before the profile fetch so it runs authenticated.
	if err := m.store.Set(KeyAccessToken, access); err != nil {
		return fmt.Errorf("persist access token: %w", err)
	}
	if err := m.store.Set(KeyRefreshToken, refresh); err != nil {
		return fmt.Errorf("persist refresh token: %w", err)
	}
	m.mu.Lock()
	m.current = Session{AccessToken: access, RefreshToken: refresh}
	m.mu.Unlock()

	user := domain.MinimalUser(username)
	profile, err := m.api.FetchProfile(ctx)
	switch {
	case err != nil:
		m.log.Warn().Err(err).Msg("[session.Login] profile fetch failed, using minimal user")
	case profile == nil:
		m.log.Warn().Msg("[session.Login] no profile returned, using minimal user")
	default:
		user = profile.User
	}

	if err := m.storeUser(user); err != nil {
		return err
	}
	m.log.Info().Str("username", user.Username).Msg("[session.Login] logged in")
	return nil
}

// Register submits the registration payload and, on success, immediately
// logs in with the submitted credentials; registration alone does not grant
// a session. The inner login result is propagated verbatim.
func (m *Manager) Register(ctx context.Context, input domain.RegisterInput) error {
	if err := m.api.Register(ctx, input); err != nil {
		m.log.Debug().Err(err).Str("username", input.Username).Msg("[session.Register] registration failed")
		return err
	}
	return m.Login(ctx, input.Username, input.Password)
}

// Logout wipes the session unconditionally. It is idempotent and never
// fails; a storage error only degrades durability and is logged.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.current = Session{}
	m.mu.Unlock()

	if err := m.store.Delete(KeyAccessToken, KeyRefreshToken, KeyUser); err != nil {
		m.log.Warn().Err(err).Msg("[session.Logout] failed to clear persisted session")
	}
}

// Current returns a copy of the session and whether it is authenticated.
func (m *Manager) Current() (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current, m.current.Authenticated()
}

// StoreUser replaces the cached user record, keeping tokens intact. Used
// after a profile update.
func (m *Manager) StoreUser(user domain.User) error {
	return m.storeUser(user)
}

func (m *Manager) storeUser(user domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := m.store.Set(KeyUser, string(raw)); err != nil {
		return fmt.Errorf("persist user: %w", err)
	}

	m.mu.Lock()
	m.current.User = user
	m.mu.Unlock()
	return nil
}

// AccessToken implements the token source consumed by the HTTP transport.
func (m *Manager) AccessToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.AccessToken
}

func (m *Manager) RefreshToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.RefreshToken
}

// StoreAccessToken replaces the access token in place after a silent
// refresh. The refresh token and user record are untouched.
func (m *Manager) StoreAccessToken(access string) {
	m.mu.Lock()
	m.current.AccessToken = access
	m.mu.Unlock()

	if err := m.store.Set(KeyAccessToken, access); err != nil {
		m.log.Warn().Err(err).Msg("[session.StoreAccessToken] failed to persist refreshed token")
	}
}

// Invalidate wipes the session after an irrecoverable refresh failure.
func (m *Manager) Invalidate() {
	m.log.Info().Msg("[session.Invalidate] refresh failed, clearing session")
	m.Logout()
}

// DarkMode reports the persisted dark-mode preference.
func (m *Manager) DarkMode() bool {
	v, _ := m.store.Get(KeyDarkMode)
	return v == "true"
}

func (m *Manager) SetDarkMode(on bool) error {
	return m.store.Set(KeyDarkMode, fmt.Sprintf("%t", on))
}

// Language returns the persisted language code, defaulting to "en".
func (m *Manager) Language() string {
	if v, ok := m.store.Get(KeyLanguage); ok && v != "" {
		return v
	}
	return "en"
}

func (m *Manager) SetLanguage(code string) error {
	return m.store.Set(KeyLanguage, code)
}
