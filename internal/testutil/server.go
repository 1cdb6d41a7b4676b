package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/timur/tennis-hub/internal/domain"
)

// FakeBackend is an in-memory stand-in for the tennis REST API. It issues
// and validates bearer tokens, serves seeded fixtures, counts requests per
// route, and lets individual tests override any route to inject failures.
type FakeBackend struct {
	Server *httptest.Server

	mu           sync.Mutex
	users        map[string]string // username -> password
	validAccess  map[string]bool
	refreshToken string
	refreshValid bool
	tokenSeq     int
	requests     map[string]int
	overrides    map[string]http.HandlerFunc

	Profile        *domain.Profile
	ProfileBroken  bool // 500 on GET /profile/
	NewsItems      []domain.News
	ATPPlayers     []domain.Player
	WTAPlayers     []domain.Player
	TournamentList []domain.Tournament
	ChatEntries    []domain.ChatEntry
}

func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()

	b := &FakeBackend{
		users:        make(map[string]string),
		validAccess:  make(map[string]bool),
		refreshValid: true,
		requests:     make(map[string]int),
		overrides:    make(map[string]http.HandlerFunc),
	}

	r := chi.NewRouter()
	r.Use(b.count)
	r.Route("/api", func(r chi.Router) {
		r.Post("/token/", b.handleToken)
		r.Post("/token/refresh/", b.handleRefresh)
		r.Post("/register/", b.handleRegister)

		r.Group(func(r chi.Router) {
			r.Use(b.requireAuth)
			r.Get("/profile/", b.handleProfile)
			r.Put("/profile/", b.handleProfileUpdate)
			r.Get("/news/", b.listJSON(&b.NewsItems))
			r.Get("/news/featured/", b.handleFeaturedNews)
			r.Get("/news/search", b.handleNewsSearch)
			r.Get("/news/{id}/", b.handleNewsDetail)
			r.Post("/news/{id}/increment_views/", b.handleIncrementViews)
			r.Get("/players/atp/", b.listJSON(&b.ATPPlayers))
			r.Get("/players/wta/", b.listJSON(&b.WTAPlayers))
			r.Get("/players/atp/search", b.handlePlayerSearch(&b.ATPPlayers))
			r.Get("/players/wta/search", b.handlePlayerSearch(&b.WTAPlayers))
			r.Get("/players/top_players/", b.handleTopPlayers)
			r.Get("/players/{id}/", b.handlePlayerDetail)
			r.Get("/tournaments/", b.listJSON(&b.TournamentList))
			r.Get("/tournaments/{id}/", b.handleTournamentDetail)
			r.Post("/chat/", b.handleChatSend)
			r.Get("/chat/", b.listJSON(&b.ChatEntries))
		})
	})

	b.Server = httptest.NewServer(r)
	t.Cleanup(b.Server.Close)
	return b
}

func (b *FakeBackend) URL() string {
	return b.Server.URL
}

// AddUser seeds an account the token endpoint will accept.
func (b *FakeBackend) AddUser(username, password string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.users[username] = password
}

// Override replaces the handler for "METHOD /path" for this test.
func (b *FakeBackend) Override(route string, h http.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.overrides[route] = h
}

// RequestCount reports how many times "METHOD /path" was hit.
func (b *FakeBackend) RequestCount(route string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.requests[route]
}

// ExpireAccess invalidates every issued access token while keeping the
// refresh token good, so the next authenticated request 401s once.
func (b *FakeBackend) ExpireAccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.validAccess = make(map[string]bool)
}

// RevokeRefresh makes the refresh endpoint fail from now on.
func (b *FakeBackend) RevokeRefresh() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refreshValid = false
}

// IssueTokens mints a valid token pair out of band, for tests that want an
// authenticated client without running the login flow.
func (b *FakeBackend) IssueTokens() (access, refresh string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.issueLocked()
}

func (b *FakeBackend) issueLocked() (access, refresh string) {
	b.tokenSeq++
	access = fmt.Sprintf("access-%d", b.tokenSeq)
	b.validAccess[access] = true
	if b.refreshToken == "" {
		b.refreshToken = fmt.Sprintf("refresh-%d", b.tokenSeq)
	}
	return access, b.refreshToken
}

// Middleware

func (b *FakeBackend) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.Method + " " + r.URL.Path
		b.mu.Lock()
		b.requests[route]++
		override := b.overrides[route]
		b.mu.Unlock()

		if override != nil {
			override(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *FakeBackend) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")

		b.mu.Lock()
		ok := header != "" && b.validAccess[token]
		b.mu.Unlock()

		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"detail": "Given token not valid for any token type",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Handlers

func (b *FakeBackend) handleToken(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	b.mu.Lock()
	password, exists := b.users[body.Username]
	if !exists || password != body.Password {
		b.mu.Unlock()
		writeJSON(w, http.StatusUnauthorized, map[string]string{
			"detail": "No active account found with the given credentials",
		})
		return
	}
	access, refresh := b.issueLocked()
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"access": access, "refresh": refresh})
}

func (b *FakeBackend) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Refresh string `json:"refresh"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	b.mu.Lock()
	if !b.refreshValid || body.Refresh != b.refreshToken || b.refreshToken == "" {
		b.mu.Unlock()
		writeJSON(w, http.StatusUnauthorized, map[string]string{
			"detail": "Token is invalid or expired",
			"code":   "token_not_valid",
		})
		return
	}
	access, _ := b.issueLocked()
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"access": access})
}

func (b *FakeBackend) handleRegister(w http.ResponseWriter, r *http.Request) {
	var input domain.RegisterInput
	_ = json.NewDecoder(r.Body).Decode(&input)

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.users[input.Username]; exists {
		writeJSON(w, http.StatusBadRequest, map[string][]string{
			"username": {"A user with that username already exists."},
		})
		return
	}
	if input.Username == "" || input.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string][]string{
			"non_field_errors": {"username and password are required"},
		})
		return
	}
	b.users[input.Username] = input.Password
	writeJSON(w, http.StatusCreated, map[string]any{
		"user": domain.User{Username: input.Username, Email: input.Email,
			FirstName: input.FirstName, LastName: input.LastName},
	})
}

func (b *FakeBackend) handleProfile(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	broken, profile := b.ProfileBroken, b.Profile
	b.mu.Unlock()

	if broken {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "profile backend down"})
		return
	}
	if profile == nil {
		writeJSON(w, http.StatusOK, []domain.Profile{})
		return
	}
	writeJSON(w, http.StatusOK, []domain.Profile{*profile})
}

func (b *FakeBackend) handleProfileUpdate(w http.ResponseWriter, r *http.Request) {
	var update domain.ProfileUpdate
	_ = json.NewDecoder(r.Body).Decode(&update)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Profile == nil {
		b.Profile = &domain.Profile{Language: "en"}
	}
	if update.FirstName != nil {
		b.Profile.User.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		b.Profile.User.LastName = *update.LastName
	}
	if update.Email != nil {
		b.Profile.User.Email = *update.Email
	}
	if update.Language != nil {
		b.Profile.Language = *update.Language
	}
	if update.NotificationsEnabled != nil {
		b.Profile.NotificationsEnabled = *update.NotificationsEnabled
	}
	writeJSON(w, http.StatusOK, *b.Profile)
}

func (b *FakeBackend) handleFeaturedNews(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	items := b.NewsItems
	b.mu.Unlock()
	if len(items) > 5 {
		items = items[:5]
	}
	writeJSON(w, http.StatusOK, items)
}

func (b *FakeBackend) handleNewsSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.ToLower(r.URL.Query().Get("q"))
	b.mu.Lock()
	defer b.mu.Unlock()

	matches := []domain.News{}
	for _, item := range b.NewsItems {
		if strings.Contains(strings.ToLower(item.Title), q) {
			matches = append(matches, item)
		}
	}
	writeJSON(w, http.StatusOK, matches)
}

func (b *FakeBackend) handleNewsDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, item := range b.NewsItems {
		if item.ID.String() == id {
			writeJSON(w, http.StatusOK, item)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
}

func (b *FakeBackend) handleIncrementViews(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.NewsItems {
		if b.NewsItems[i].ID.String() == id {
			b.NewsItems[i].Views++
			writeJSON(w, http.StatusOK, map[string]int{"views": b.NewsItems[i].Views})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
}

func (b *FakeBackend) handlePlayerSearch(pool *[]domain.Player) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := strings.ToLower(r.URL.Query().Get("q"))
		b.mu.Lock()
		defer b.mu.Unlock()

		matches := []domain.Player{}
		for _, p := range *pool {
			if strings.Contains(strings.ToLower(p.Name), q) {
				matches = append(matches, p)
			}
		}
		writeJSON(w, http.StatusOK, matches)
	}
}

func (b *FakeBackend) handleTopPlayers(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	top := domain.TopPlayers{ATP: b.ATPPlayers, WTA: b.WTAPlayers}
	if len(top.ATP) > 10 {
		top.ATP = top.ATP[:10]
	}
	if len(top.WTA) > 10 {
		top.WTA = top.WTA[:10]
	}
	writeJSON(w, http.StatusOK, top)
}

func (b *FakeBackend) handlePlayerDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, pool := range [][]domain.Player{b.ATPPlayers, b.WTAPlayers} {
		for _, p := range pool {
			if p.ID.String() == id {
				writeJSON(w, http.StatusOK, p)
				return
			}
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
}

func (b *FakeBackend) handleTournamentDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, t := range b.TournamentList {
		if t.ID.String() == id {
			writeJSON(w, http.StatusOK, t)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
}

func (b *FakeBackend) handleChatSend(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Message string `json:"message"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	if body.Message == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Message is required"})
		return
	}

	response := "Tennis bot: " + body.Message
	b.mu.Lock()
	b.ChatEntries = append([]domain.ChatEntry{{
		ID: len(b.ChatEntries) + 1, Message: body.Message,
		Response: response, CreatedAt: time.Now().UTC(),
	}}, b.ChatEntries...)
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"response": response})
}

func (b *FakeBackend) listJSON(items any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		writeJSON(w, http.StatusOK, items)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// SignedToken mints an HS256 JWT with the given expiry, for tests that
// exercise client-side expiry introspection.
func SignedToken(t *testing.T, exp time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "tester",
		"exp": exp.Unix(),
		"iat": time.Now().Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}
