package testutil

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/timur/tennis-hub/internal/domain"
)

// PlayerBuilder creates test players with a builder pattern
type PlayerBuilder struct {
	player domain.Player
}

func NewPlayerBuilder() *PlayerBuilder {
	return &PlayerBuilder{
		player: domain.Player{
			ID:      uuid.New(),
			Name:    fmt.Sprintf("Player %s", uuid.New().String()[:8]),
			Country: "Spain",
			Rank:    1,
			Points:  9000,
			Tour:    domain.TourATP,
		},
	}
}

func (b *PlayerBuilder) WithName(name string) *PlayerBuilder {
	b.player.Name = name
	return b
}

func (b *PlayerBuilder) WithTour(tour domain.Tour) *PlayerBuilder {
	b.player.Tour = tour
	return b
}

func (b *PlayerBuilder) WithRank(rank int) *PlayerBuilder {
	b.player.Rank = rank
	return b
}

func (b *PlayerBuilder) WithRecord(wins, losses int) *PlayerBuilder {
	b.player.Wins = wins
	b.player.Losses = losses
	return b
}

func (b *PlayerBuilder) WithSurfaceWins(hard, clay, grass int) *PlayerBuilder {
	b.player.HardWins = hard
	b.player.ClayWins = clay
	b.player.GrassWins = grass
	return b
}

func (b *PlayerBuilder) Build() domain.Player {
	return b.player
}

// NewsBuilder creates test news items
type NewsBuilder struct {
	item domain.News
}

func NewNewsBuilder() *NewsBuilder {
	return &NewsBuilder{
		item: domain.News{
			ID:            uuid.New(),
			Title:         fmt.Sprintf("Headline %s", uuid.New().String()[:8]),
			Summary:       "summary",
			Content:       "content",
			Category:      "Tournament",
			Author:        "Staff",
			PublishedDate: domain.NewDate(2025, time.June, 1),
		},
	}
}

func (b *NewsBuilder) WithTitle(title string) *NewsBuilder {
	b.item.Title = title
	return b
}

func (b *NewsBuilder) WithViews(views int) *NewsBuilder {
	b.item.Views = views
	return b
}

func (b *NewsBuilder) Build() domain.News {
	return b.item
}

// TournamentBuilder creates test tournaments
type TournamentBuilder struct {
	tournament domain.Tournament
}

func NewTournamentBuilder() *TournamentBuilder {
	return &TournamentBuilder{
		tournament: domain.Tournament{
			ID:         uuid.New(),
			Name:       fmt.Sprintf("Open %s", uuid.New().String()[:8]),
			Location:   "Melbourne",
			StartDate:  domain.NewDate(2025, time.January, 13),
			EndDate:    domain.NewDate(2025, time.January, 26),
			Surface:    domain.SurfaceHard,
			Category:   "Grand Slam",
			PrizeMoney: "75000000.00",
		},
	}
}

func (b *TournamentBuilder) WithName(name string) *TournamentBuilder {
	b.tournament.Name = name
	return b
}

func (b *TournamentBuilder) WithDates(start, end domain.Date) *TournamentBuilder {
	b.tournament.StartDate = start
	b.tournament.EndDate = end
	return b
}

func (b *TournamentBuilder) Build() domain.Tournament {
	return b.tournament
}

// TestProfile returns a full profile for the given username.
func TestProfile(username string) *domain.Profile {
	return &domain.Profile{
		ID: 1,
		User: domain.User{
			ID:        1,
			Username:  username,
			Email:     username + "@example.com",
			FirstName: "Iga",
			LastName:  "Swiatek",
		},
		Language:             "en",
		NotificationsEnabled: true,
	}
}
