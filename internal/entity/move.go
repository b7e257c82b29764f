package entity

import "time"

// Move is an immutable record of one applied turn. Sequence equals the number
// of moves that came before it in the game.
type Move struct {
	ID        string    `json:"id"`
	GameID    string    `json:"game_id"`
	PlayerID  string    `json:"player_id"`
	Row       int       `json:"row"`
	Col       int       `json:"col"`
	Sequence  int       `json:"sequence"`
	CreatedAt time.Time `json:"created_at"`
}
