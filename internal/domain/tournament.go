package domain

import "github.com/google/uuid"

type Tournament struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Location     string     `json:"location"`
	StartDate    Date       `json:"start_date"`
	EndDate      Date       `json:"end_date"`
	Surface      Surface    `json:"surface"`
	PrizeMoney   string     `json:"prize_money"`
	Category     string     `json:"category"`
	Winner       *uuid.UUID `json:"winner"`
	ImageURL     string     `json:"image_url"`
	Description  string     `json:"description"`
	Capacity     int        `json:"capacity"`
	TotalMatches int        `json:"total_matches"`
}

// DurationDays counts both endpoint days, matching how the API reports it.
func (t Tournament) DurationDays() int {
	if t.StartDate.IsZero() || t.EndDate.IsZero() {
		return 0
	}
	return int(t.EndDate.Sub(t.StartDate.Time).Hours()/24) + 1
}
