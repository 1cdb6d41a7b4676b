package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/timur/tennis-hub/internal/domain"
)

func TestPlayer_WinRate(t *testing.T) {
	tests := []struct {
		name   string
		wins   int
		losses int
		want   float64
	}{
		{name: "no matches played", wins: 0, losses: 0, want: 0},
		{name: "all wins", wins: 10, losses: 0, want: 100},
		{name: "even record", wins: 25, losses: 25, want: 50},
		{name: "uneven record", wins: 3, losses: 1, want: 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := domain.Player{Wins: tt.wins, Losses: tt.losses}
			assert.InDelta(t, tt.want, p.WinRate(), 0.001)
			assert.Equal(t, tt.wins+tt.losses, p.TotalMatches())
		})
	}
}

func TestPlayer_SurfacePreference(t *testing.T) {
	tests := []struct {
		name              string
		hard, clay, grass int
		want              domain.Surface
	}{
		{name: "no surface wins", want: domain.Surface("")},
		{name: "clay specialist", hard: 10, clay: 60, grass: 5, want: domain.SurfaceClay},
		{name: "hard court favorite", hard: 40, clay: 12, grass: 9, want: domain.SurfaceHard},
		{name: "grass wins only", grass: 2, want: domain.SurfaceGrass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := domain.Player{HardWins: tt.hard, ClayWins: tt.clay, GrassWins: tt.grass}
			assert.Equal(t, tt.want, p.SurfacePreference())
		})
	}
}

func TestPlayer_SurfaceShare(t *testing.T) {
	p := domain.Player{HardWins: 50, ClayWins: 30, GrassWins: 20}

	assert.InDelta(t, 50.0, p.SurfaceShare(domain.SurfaceHard), 0.001)
	assert.InDelta(t, 30.0, p.SurfaceShare(domain.SurfaceClay), 0.001)
	assert.InDelta(t, 20.0, p.SurfaceShare(domain.SurfaceGrass), 0.001)

	none := domain.Player{}
	assert.Zero(t, none.SurfaceShare(domain.SurfaceHard))
}

func TestTournament_DurationDays(t *testing.T) {
	tournament := domain.Tournament{
		StartDate: domain.NewDate(2025, time.January, 13),
		EndDate:   domain.NewDate(2025, time.January, 26),
	}
	assert.Equal(t, 14, tournament.DurationDays())

	oneDay := domain.Tournament{
		StartDate: domain.NewDate(2025, time.March, 1),
		EndDate:   domain.NewDate(2025, time.March, 1),
	}
	assert.Equal(t, 1, oneDay.DurationDays())

	assert.Zero(t, domain.Tournament{}.DurationDays())
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := domain.NewDate(2025, time.June, 8)

	raw, err := d.MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, `"2025-06-08"`, string(raw))

	var parsed domain.Date
	assert.NoError(t, parsed.UnmarshalJSON(raw))
	assert.True(t, parsed.Equal(d.Time))

	var null domain.Date
	assert.NoError(t, null.UnmarshalJSON([]byte("null")))
	assert.True(t, null.IsZero())

	var bad domain.Date
	assert.Error(t, bad.UnmarshalJSON([]byte(`"not-a-date"`)))
}
