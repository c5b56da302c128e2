package models

import (
	"time"

	"github.com/uptrace/bun"
)

// League is a private leaderboard over a subset of users.
type League struct {
	bun.BaseModel `bun:"table:leagues,alias:l"`

	ID        string    `bun:"id,pk" json:"id"`
	Name      string    `bun:"name,notnull,unique" json:"name"`
	OwnerID   string    `bun:"owner_id,notnull" json:"ownerId"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"createdAt"`
}

// LeagueMember links a user to a league.
type LeagueMember struct {
	bun.BaseModel `bun:"table:league_members,alias:lm"`

	LeagueID string    `bun:"league_id,pk" json:"leagueId"`
	UserID   string    `bun:"user_id,pk" json:"userId"`
	JoinedAt time.Time `bun:"joined_at,notnull" json:"joinedAt"`
}
