package domain

import "time"

// ChatEntry is one exchange with the AI assistant, as returned by GET /chat/.
type ChatEntry struct {
	ID        int       `json:"id"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"created_at"`
}
