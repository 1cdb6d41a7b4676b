package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/timur/tennis-hub/internal/domain"
)

// Client handles HTTP communication with the tennis backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates an API client rooted at baseURL + "/api". Authentication is
// attached separately with InstallAuth, mirroring how the client is built
// before any session exists.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/") + "/api",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// InstallAuth wraps the client's transport so every request carries the
// current bearer token and a 401 triggers one refresh-and-retry. onExpired
// runs after an irrecoverable refresh failure, once the session is cleared.
func (c *Client) InstallAuth(tokens TokenSource, onExpired func()) {
	base := c.httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c.httpClient.Transport = &authTransport{
		base:       base,
		tokens:     tokens,
		refreshURL: c.baseURL + "/token/refresh/",
		bare:       &http.Client{Timeout: c.httpClient.Timeout},
		onExpired:  onExpired,
		log:        c.log,
	}
}

// Auth

func (c *Client) ObtainToken(ctx context.Context, username, password string) (access, refresh string, err error) {
	body := map[string]string{"username": username, "password": password}
	var out struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	if err := c.post(ctx, "/token/", body, &out); err != nil {
		return "", "", err
	}
	return out.Access, out.Refresh, nil
}

// Register creates the account. The response carries a token pair, but the
// session flow always performs a regular login afterwards, so it is
// discarded here.
func (c *Client) Register(ctx context.Context, input domain.RegisterInput) error {
	return c.post(ctx, "/register/", input, nil)
}

// Profile

// FetchProfile returns the caller's profile, or nil when the backend has
// none. The endpoint answers with a single-element list.
func (c *Client) FetchProfile(ctx context.Context) (*domain.Profile, error) {
	var profiles []domain.Profile
	if err := c.get(ctx, "/profile/", &profiles); err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, nil
	}
	return &profiles[0], nil
}

func (c *Client) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.Profile, error) {
	var profile domain.Profile
	if err := c.put(ctx, "/profile/", update, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// News

func (c *Client) News(ctx context.Context) ([]domain.News, error) {
	var items []domain.News
	return items, c.get(ctx, "/news/", &items)
}

func (c *Client) FeaturedNews(ctx context.Context) ([]domain.News, error) {
	var items []domain.News
	return items, c.get(ctx, "/news/featured/", &items)
}

func (c *Client) NewsDetail(ctx context.Context, id uuid.UUID) (*domain.News, error) {
	var item domain.News
	if err := c.get(ctx, "/news/"+id.String()+"/", &item); err != nil {
		if IsStatus(err, http.StatusNotFound) {
			return nil, domain.ErrNewsNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (c *Client) SearchNews(ctx context.Context, query string) ([]domain.News, error) {
	var items []domain.News
	return items, c.get(ctx, "/news/search?q="+url.QueryEscape(query), &items)
}

// IncrementNewsViews bumps the view counter and returns the new count.
func (c *Client) IncrementNewsViews(ctx context.Context, id uuid.UUID) (int, error) {
	var out struct {
		Views int `json:"views"`
	}
	err := c.post(ctx, "/news/"+id.String()+"/increment_views/", nil, &out)
	return out.Views, err
}

// Players

func (c *Client) ATPPlayers(ctx context.Context) ([]domain.Player, error) {
	var players []domain.Player
	return players, c.get(ctx, "/players/atp/", &players)
}

func (c *Client) WTAPlayers(ctx context.Context) ([]domain.Player, error) {
	var players []domain.Player
	return players, c.get(ctx, "/players/wta/", &players)
}

func (c *Client) TopPlayers(ctx context.Context) (*domain.TopPlayers, error) {
	var top domain.TopPlayers
	if err := c.get(ctx, "/players/top_players/", &top); err != nil {
		return nil, err
	}
	return &top, nil
}

func (c *Client) PlayerDetail(ctx context.Context, id uuid.UUID) (*domain.Player, error) {
	var player domain.Player
	if err := c.get(ctx, "/players/"+id.String()+"/", &player); err != nil {
		if IsStatus(err, http.StatusNotFound) {
			return nil, domain.ErrPlayerNotFound
		}
		return nil, err
	}
	return &player, nil
}

func (c *Client) SearchATP(ctx context.Context, query string) ([]domain.Player, error) {
	var players []domain.Player
	return players, c.get(ctx, "/players/atp/search?q="+url.QueryEscape(query), &players)
}

func (c *Client) SearchWTA(ctx context.Context, query string) ([]domain.Player, error) {
	var players []domain.Player
	return players, c.get(ctx, "/players/wta/search?q="+url.QueryEscape(query), &players)
}

// Tournaments

func (c *Client) Tournaments(ctx context.Context) ([]domain.Tournament, error) {
	var tournaments []domain.Tournament
	return tournaments, c.get(ctx, "/tournaments/", &tournaments)
}

func (c *Client) TournamentDetail(ctx context.Context, id uuid.UUID) (*domain.Tournament, error) {
	var tournament domain.Tournament
	if err := c.get(ctx, "/tournaments/"+id.String()+"/", &tournament); err != nil {
		if IsStatus(err, http.StatusNotFound) {
			return nil, domain.ErrTournamentNotFound
		}
		return nil, err
	}
	return &tournament, nil
}

// Chat

func (c *Client) SendChat(ctx context.Context, message string) (string, error) {
	body := map[string]string{"message": message}
	var out struct {
		Response string `json:"response"`
	}
	if err := c.post(ctx, "/chat/", body, &out); err != nil {
		return "", err
	}
	return out.Response, nil
}

func (c *Client) ChatHistory(ctx context.Context) ([]domain.ChatEntry, error) {
	var entries []domain.ChatEntry
	return entries, c.get(ctx, "/chat/", &entries)
}

// HTTP helpers

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var bodyReader *bytes.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	var req *http.Request
	var err error
	if bodyReader != nil {
		// bytes.Reader bodies get GetBody set, so the auth transport can
		// replay the request after a token refresh.
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	}
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := newAPIError(resp)
		c.log.Debug().Int("status", apiErr.StatusCode).Str("path", path).Msg("[api.do] request failed")
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}
