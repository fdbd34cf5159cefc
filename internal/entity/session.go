package entity

import "time"

// Session - one player's game together with how they chose to view its history.
type Session struct {
	ID         string    `json:"id"`
	State      GameState `json:"state"`
	Descending bool      `json:"descending"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
