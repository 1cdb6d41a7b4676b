package domain

import "errors"

// Session errors
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrSessionExpired   = errors.New("session expired")
)

// Lookup errors
var (
	ErrPlayerNotFound     = errors.New("player not found")
	ErrNewsNotFound       = errors.New("news item not found")
	ErrTournamentNotFound = errors.New("tournament not found")
)
