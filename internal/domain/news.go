package domain

import (
	"time"

	"github.com/google/uuid"
)

type News struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Summary       string    `json:"summary"`
	ImageURL      string    `json:"image_url"`
	Category      string    `json:"category"`
	Author        string    `json:"author"`
	PublishedDate Date      `json:"published_date"`
	Views         int       `json:"views"`
	CreatedAt     time.Time `json:"created_at"`
}
