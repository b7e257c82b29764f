package entity

import "time"

type Player struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// PlayerStats holds the per-player counters the statistics store keeps.
type PlayerStats struct {
	PlayerID string `json:"player_id"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
	Draws    int    `json:"draws"`
	Moves    int    `json:"moves"`
}
