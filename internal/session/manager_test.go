package session_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timur/tennis-hub/internal/api"
	"github.com/timur/tennis-hub/internal/domain"
	"github.com/timur/tennis-hub/internal/session"
	"github.com/timur/tennis-hub/internal/testutil"
)

func newTestManager(t *testing.T) (*testutil.FakeBackend, *session.Manager, *session.FileStore) {
	t.Helper()

	backend := testutil.NewFakeBackend(t)
	store, err := session.NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)

	client := api.New(backend.URL())
	manager := session.NewManager(store, client, zerolog.Nop())
	client.InstallAuth(manager, nil)
	return backend, manager, store
}

func TestManager_Restore(t *testing.T) {
	tests := []struct {
		name         string
		seed         map[string]string
		wantLoggedIn bool
	}{
		{
			name: "full session restores",
			seed: map[string]string{
				session.KeyAccessToken:  "access",
				session.KeyRefreshToken: "refresh",
				session.KeyUser:         `{"username":"iga","first_name":"Iga"}`,
			},
			wantLoggedIn: true,
		},
		{
			name:         "empty store stays logged out",
			seed:         nil,
			wantLoggedIn: false,
		},
		{
			name: "missing refresh token stays logged out",
			seed: map[string]string{
				session.KeyAccessToken: "access",
				session.KeyUser:        `{"username":"iga"}`,
			},
			wantLoggedIn: false,
		},
		{
			name: "missing user record stays logged out",
			seed: map[string]string{
				session.KeyAccessToken:  "access",
				session.KeyRefreshToken: "refresh",
			},
			wantLoggedIn: false,
		},
		{
			name: "malformed user JSON stays logged out",
			seed: map[string]string{
				session.KeyAccessToken:  "access",
				session.KeyRefreshToken: "refresh",
				session.KeyUser:         `{"username":`,
			},
			wantLoggedIn: false,
		},
		{
			name: "user without username stays logged out",
			seed: map[string]string{
				session.KeyAccessToken:  "access",
				session.KeyRefreshToken: "refresh",
				session.KeyUser:         `{"email":"a@b.c"}`,
			},
			wantLoggedIn: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, manager, store := newTestManager(t)
			for k, v := range tt.seed {
				require.NoError(t, store.Set(k, v))
			}

			manager.Restore()

			_, ok := manager.Current()
			assert.Equal(t, tt.wantLoggedIn, ok)
		})
	}
}

func TestManager_LoginFetchesProfile(t *testing.T) {
	backend, manager, _ := newTestManager(t)
	backend.AddUser("iga", "topspin")
	backend.Profile = testutil.TestProfile("iga")

	require.NoError(t, manager.Login(context.Background(), "iga", "topspin"))

	current, ok := manager.Current()
	require.True(t, ok)
	assert.Equal(t, "iga", current.User.Username)
	assert.Equal(t, "Iga", current.User.FirstName)
	assert.Equal(t, "iga@example.com", current.User.Email)
	assert.NotEmpty(t, current.AccessToken)
	assert.NotEmpty(t, current.RefreshToken)
}

func TestManager_LoginFallsBackToMinimalUser(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*testutil.FakeBackend)
	}{
		{
			name:  "profile endpoint fails",
			setup: func(b *testutil.FakeBackend) { b.ProfileBroken = true },
		},
		{
			name:  "no profile on record",
			setup: func(b *testutil.FakeBackend) { b.Profile = nil },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend, manager, _ := newTestManager(t)
			backend.AddUser("carlos", "dropshot")
			tt.setup(backend)

			require.NoError(t, manager.Login(context.Background(), "carlos", "dropshot"))

			current, ok := manager.Current()
			require.True(t, ok, "login must still authenticate")
			assert.Equal(t, "carlos", current.User.Username)
			assert.Empty(t, current.User.FirstName)
			assert.Empty(t, current.User.LastName)
			assert.Empty(t, current.User.Email)
		})
	}
}

func TestManager_LoginBadCredentials(t *testing.T) {
	backend, manager, _ := newTestManager(t)
	backend.AddUser("iga", "topspin")

	err := manager.Login(context.Background(), "iga", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No active account found with the given credentials")

	_, ok := manager.Current()
	assert.False(t, ok)
}

func TestManager_RegisterLogsIn(t *testing.T) {
	backend, manager, _ := newTestManager(t)

	input := domain.RegisterInput{
		Username:  "aryna",
		Password:  "powergame",
		Email:     "aryna@example.com",
		FirstName: "Aryna",
	}
	require.NoError(t, manager.Register(context.Background(), input))

	current, ok := manager.Current()
	require.True(t, ok, "registration must establish a session via login")
	assert.Equal(t, "aryna", current.User.Username)
	assert.Equal(t, 1, backend.RequestCount("POST /api/register/"))
	assert.Equal(t, 1, backend.RequestCount("POST /api/token/"))
}

func TestManager_RegisterDuplicateUsername(t *testing.T) {
	backend, manager, _ := newTestManager(t)
	backend.AddUser("iga", "topspin")

	err := manager.Register(context.Background(), domain.RegisterInput{
		Username: "iga",
		Password: "other",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "A user with that username already exists.")
	// The inner login must not run after a failed registration.
	assert.Zero(t, backend.RequestCount("POST /api/token/"))
}

func TestManager_LogoutRoundTrip(t *testing.T) {
	backend, manager, store := newTestManager(t)
	backend.AddUser("iga", "topspin")
	backend.Profile = testutil.TestProfile("iga")
	require.NoError(t, manager.Login(context.Background(), "iga", "topspin"))

	manager.Logout()

	_, ok := manager.Current()
	assert.False(t, ok)

	// Restore after logout must come up logged out.
	fresh := session.NewManager(store, nil, zerolog.Nop())
	fresh.Restore()
	_, ok = fresh.Current()
	assert.False(t, ok)

	// Logging out twice is the same as once.
	manager.Logout()
	_, ok = manager.Current()
	assert.False(t, ok)
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(30 * time.Minute).Truncate(time.Second)
	token := testutil.SignedToken(t, exp)

	got, ok := session.TokenExpiry(token)
	require.True(t, ok)
	assert.True(t, got.Equal(exp), "got %s want %s", got, exp)

	_, ok = session.TokenExpiry("not-a-jwt")
	assert.False(t, ok)

	_, ok = session.TokenExpiry("")
	assert.False(t, ok)
}
