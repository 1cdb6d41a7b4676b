package domain

import "github.com/google/uuid"

type User struct {
	ID        int    `json:"id,omitempty"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// MinimalUser builds the fallback record used when the profile fetch after a
// successful credential exchange yields nothing.
func MinimalUser(username string) User {
	return User{Username: username}
}

func (u User) FullName() string {
	switch {
	case u.FirstName == "" && u.LastName == "":
		return u.Username
	case u.LastName == "":
		return u.FirstName
	case u.FirstName == "":
		return u.LastName
	default:
		return u.FirstName + " " + u.LastName
	}
}

type Profile struct {
	ID                   int         `json:"id"`
	User                 User        `json:"user"`
	Language             string      `json:"language"`
	NotificationsEnabled bool        `json:"notifications_enabled"`
	FavoritePlayers      []uuid.UUID `json:"favorite_players"`
}

// ProfileUpdate is the PUT /profile/ payload. Omitted fields are left
// untouched by the backend.
type ProfileUpdate struct {
	FirstName            *string `json:"first_name,omitempty"`
	LastName             *string `json:"last_name,omitempty"`
	Email                *string `json:"email,omitempty"`
	Language             *string `json:"language,omitempty"`
	NotificationsEnabled *bool   `json:"notifications_enabled,omitempty"`
}

type RegisterInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
