package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/timur/tennis-hub/internal/domain"
	"golang.org/x/sync/singleflight"
)

// TokenSource is the session view the transport needs: read both tokens,
// write back a refreshed access token, and wipe everything when refresh
// is no longer possible.
type TokenSource interface {
	AccessToken() string
	RefreshToken() string
	StoreAccessToken(access string)
	Invalidate()
}

// authTransport injects the bearer token into outgoing requests and
// recovers from access-token expiry: the first 401 on a request triggers a
// token refresh and a single resend. The resend's response is returned
// as-is, so a request can never be retried more than once.
type authTransport struct {
	base       http.RoundTripper
	tokens     TokenSource
	refreshURL string
	// bare performs the refresh call itself, outside this transport.
	bare      *http.Client
	group     singleflight.Group
	onExpired func()
	log       zerolog.Logger
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	attempt := req
	if access := t.tokens.AccessToken(); access != "" {
		attempt = req.Clone(req.Context())
		attempt.Header.Set("Authorization", "Bearer "+access)
	}

	resp, err := t.base.RoundTrip(attempt)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized || t.tokens.RefreshToken() == "" {
		return resp, nil
	}

	t.log.Debug().Str("url", req.URL.Path).Msg("[api.authTransport] 401, refreshing access token")
	access, refreshErr := t.refreshAccessToken(req)
	if refreshErr != nil {
		resp.Body.Close()
		t.tokens.Invalidate()
		if t.onExpired != nil {
			t.onExpired()
		}
		return nil, fmt.Errorf("token refresh: %w", errors.Join(domain.ErrSessionExpired, refreshErr))
	}
	resp.Body.Close()

	retry := req.Clone(req.Context())
	retry.Header.Set("Authorization", "Bearer "+access)
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("replay request body: %w", err)
		}
		retry.Body = body
	}
	return t.base.RoundTrip(retry)
}

// refreshAccessToken exchanges the refresh token for a new access token.
// Concurrent 401s coalesce into one outstanding refresh call; every waiter
// gets the same new token or the same failure.
func (t *authTransport) refreshAccessToken(req *http.Request) (string, error) {
	v, err, _ := t.group.Do("refresh", func() (any, error) {
		access, err := t.postRefresh(req)
		if err != nil {
			return nil, err
		}
		t.tokens.StoreAccessToken(access)
		return access, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (t *authTransport) postRefresh(orig *http.Request) (string, error) {
	payload, err := json.Marshal(map[string]string{"refresh": t.tokens.RefreshToken()})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(orig.Context(), http.MethodPost, t.refreshURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.bare.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", newAPIError(resp)
	}

	var out struct {
		Access string `json:"access"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode refresh response: %w", err)
	}
	if out.Access == "" {
		return "", fmt.Errorf("refresh response missing access token")
	}
	return out.Access, nil
}
