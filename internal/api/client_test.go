package api_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timur/tennis-hub/internal/api"
	"github.com/timur/tennis-hub/internal/domain"
	"github.com/timur/tennis-hub/internal/testutil"
)

func TestAPIError_MessagePrecedence(t *testing.T) {
	tests := []struct {
		name string
		err  api.APIError
		want string
	}{
		{
			name: "detail wins over everything",
			err: api.APIError{
				Detail:         "No active account found with the given credentials",
				NonFieldErrors: []string{"secondary"},
				Fields:         map[string][]string{"username": {"taken"}},
				Raw:            `{"detail":"..."}`,
			},
			want: "No active account found with the given credentials",
		},
		{
			name: "first non-field error next",
			err: api.APIError{
				NonFieldErrors: []string{"Unable to log in.", "second"},
				Fields:         map[string][]string{"username": {"taken"}},
			},
			want: "Unable to log in.",
		},
		{
			name: "field errors flattened in order",
			err: api.APIError{
				Fields: map[string][]string{
					"username": {"A user with that username already exists."},
					"email":    {"Enter a valid email address."},
				},
			},
			want: "email: Enter a valid email address., username: A user with that username already exists.",
		},
		{
			name: "raw payload as fallback",
			err:  api.APIError{StatusCode: http.StatusBadGateway, Raw: "upstream exploded"},
			want: "upstream exploded",
		},
		{
			name: "status text when body is empty",
			err:  api.APIError{StatusCode: http.StatusServiceUnavailable},
			want: "Service Unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Message())
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestClient_NewsEndpoints(t *testing.T) {
	backend, client, _ := newAuthenticatedClient(t, nil)
	first := testutil.NewNewsBuilder().WithTitle("Alcaraz takes Wimbledon").WithViews(7).Build()
	second := testutil.NewNewsBuilder().WithTitle("Swiatek returns to clay").Build()
	backend.NewsItems = []domain.News{first, second}

	ctx := context.Background()

	items, err := client.News(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	matches, err := client.SearchNews(ctx, "wimbledon")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, first.ID, matches[0].ID)

	item, err := client.NewsDetail(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alcaraz takes Wimbledon", item.Title)

	views, err := client.IncrementNewsViews(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, views)

	_, err = client.NewsDetail(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNewsNotFound)
}

func TestClient_PlayerEndpoints(t *testing.T) {
	backend, client, _ := newAuthenticatedClient(t, nil)
	sinner := testutil.NewPlayerBuilder().WithName("Jannik Sinner").WithRank(1).Build()
	swiatek := testutil.NewPlayerBuilder().WithName("Iga Swiatek").WithTour(domain.TourWTA).WithRank(2).Build()
	backend.ATPPlayers = []domain.Player{sinner}
	backend.WTAPlayers = []domain.Player{swiatek}

	ctx := context.Background()

	atp, err := client.ATPPlayers(ctx)
	require.NoError(t, err)
	require.Len(t, atp, 1)
	assert.Equal(t, "Jannik Sinner", atp[0].Name)

	wta, err := client.WTAPlayers(ctx)
	require.NoError(t, err)
	require.Len(t, wta, 1)

	top, err := client.TopPlayers(ctx)
	require.NoError(t, err)
	assert.Len(t, top.ATP, 1)
	assert.Len(t, top.WTA, 1)

	matches, err := client.SearchWTA(ctx, "swiatek")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, swiatek.ID, matches[0].ID)

	player, err := client.PlayerDetail(ctx, sinner.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TourATP, player.Tour)

	_, err = client.PlayerDetail(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrPlayerNotFound)
}

func TestClient_TournamentEndpoints(t *testing.T) {
	backend, client, _ := newAuthenticatedClient(t, nil)
	open := testutil.NewTournamentBuilder().WithName("Australian Open").Build()
	backend.TournamentList = []domain.Tournament{open}

	ctx := context.Background()

	tournaments, err := client.Tournaments(ctx)
	require.NoError(t, err)
	require.Len(t, tournaments, 1)

	tournament, err := client.TournamentDetail(ctx, open.ID)
	require.NoError(t, err)
	assert.Equal(t, "Australian Open", tournament.Name)
	assert.Equal(t, 14, tournament.DurationDays())

	_, err = client.TournamentDetail(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrTournamentNotFound)
}

func TestClient_Chat(t *testing.T) {
	_, client, _ := newAuthenticatedClient(t, nil)
	ctx := context.Background()

	response, err := client.SendChat(ctx, "best backhand?")
	require.NoError(t, err)
	assert.Equal(t, "Tennis bot: best backhand?", response)

	history, err := client.ChatHistory(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "best backhand?", history[0].Message)
}

func TestClient_ProfileUpdate(t *testing.T) {
	backend, client, _ := newAuthenticatedClient(t, nil)
	backend.Profile = testutil.TestProfile("iga")

	lang := "pl"
	first := "Iga"
	updated, err := client.UpdateProfile(context.Background(), domain.ProfileUpdate{
		Language:  &lang,
		FirstName: &first,
	})
	require.NoError(t, err)
	assert.Equal(t, "pl", updated.Language)
	assert.Equal(t, "Iga", updated.User.FirstName)
}

func TestClient_FetchProfileEmpty(t *testing.T) {
	backend, client, _ := newAuthenticatedClient(t, nil)
	backend.Profile = nil

	profile, err := client.FetchProfile(context.Background())
	require.NoError(t, err)
	assert.Nil(t, profile)
}
