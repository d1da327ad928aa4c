package model

import "time"

// User owns watchlists and holdings.
type User struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	PrimaryWatchlistID string    `json:"primaryWatchlistId,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
}

// Watchlist groups a user's holdings. Exactly one watchlist per user is primary;
// newly reconciled holdings are placed there.
type Watchlist struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	IsPrimary bool      `json:"isPrimary"`
	CreatedAt time.Time `json:"createdAt"`
}
