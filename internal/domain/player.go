package domain

import (
	"time"

	"github.com/google/uuid"
)

type Tour string

const (
	TourATP Tour = "ATP"
	TourWTA Tour = "WTA"
)

type Surface string

const (
	SurfaceHard  Surface = "Hard"
	SurfaceClay  Surface = "Clay"
	SurfaceGrass Surface = "Grass"
)

type Player struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Country           string    `json:"country"`
	Rank              int       `json:"rank"`
	Points            int       `json:"points"`
	Tour              Tour      `json:"gender"`
	Age               int       `json:"age"`
	Coach             string    `json:"coach"`
	Wins              int       `json:"wins"`
	Losses            int       `json:"losses"`
	TournamentsPlayed int       `json:"tournaments_played"`
	ImageURL          string    `json:"image_url"`
	Biography         string    `json:"biography"`

	HeightCM         int    `json:"height"`
	WeightKG         int    `json:"weight"`
	Plays            string `json:"plays"`
	TurnedPro        int    `json:"turned_pro"`
	CareerPrizeMoney string `json:"career_prize_money"`

	AceCount             int     `json:"ace_count"`
	DoubleFaults         int     `json:"double_faults"`
	BreakPointsSaved     float64 `json:"break_points_saved"`
	FirstServePercentage float64 `json:"first_serve_percentage"`

	HardWins  int `json:"hard_wins"`
	ClayWins  int `json:"clay_wins"`
	GrassWins int `json:"grass_wins"`

	BestRanking     int `json:"best_ranking"`
	WeeksAtNo1      int `json:"weeks_at_no1"`
	GrandSlamTitles int `json:"grand_slam_titles"`
	MastersTitles   int `json:"masters_titles"`
	ATPFinalsTitles int `json:"atp_finals_titles"`

	Strengths          string `json:"strengths"`
	Weaknesses         string `json:"weaknesses"`
	FavoriteTournament string `json:"favorite_tournament"`
	CareerHighlights   string `json:"career_highlights"`

	CreatedAt time.Time `json:"created_at"`
}

func (p Player) TotalMatches() int {
	return p.Wins + p.Losses
}

// WinRate is the career win percentage, 0 when no matches are recorded.
func (p Player) WinRate() float64 {
	total := p.TotalMatches()
	if total == 0 {
		return 0
	}
	return float64(p.Wins) / float64(total) * 100
}

// SurfacePreference is the surface with the most recorded wins. Returns ""
// when the player has no surface wins at all.
func (p Player) SurfacePreference() Surface {
	best := Surface("")
	bestWins := 0
	for _, s := range []struct {
		surface Surface
		wins    int
	}{
		{SurfaceHard, p.HardWins},
		{SurfaceClay, p.ClayWins},
		{SurfaceGrass, p.GrassWins},
	} {
		if s.wins > bestWins {
			best = s.surface
			bestWins = s.wins
		}
	}
	return best
}

// SurfaceShare is the fraction of the player's surface wins taken on the
// given surface, as a percentage.
func (p Player) SurfaceShare(s Surface) float64 {
	total := p.HardWins + p.ClayWins + p.GrassWins
	if total == 0 {
		return 0
	}
	var wins int
	switch s {
	case SurfaceHard:
		wins = p.HardWins
	case SurfaceClay:
		wins = p.ClayWins
	case SurfaceGrass:
		wins = p.GrassWins
	}
	return float64(wins) / float64(total) * 100
}

// TopPlayers is the GET /players/top_players/ response shape.
type TopPlayers struct {
	ATP []Player `json:"atp_top"`
	WTA []Player `json:"wta_top"`
}
