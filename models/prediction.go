package models

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/padraicbc/gridpredict/scoring"
)

// Prediction is a user's picks for one GP. One row per (user, gp); the last
// write wins.
type Prediction struct {
	bun.BaseModel `bun:"table:predictions,alias:p"`

	UserID string `bun:"user_id,pk" json:"userId"`
	GpID   int    `bun:"gp_id,pk" json:"gpId"`
	Picks
	SubmittedAt time.Time `bun:"submitted_at,notnull" json:"submittedAt"`
}

func (p Prediction) Scoring() scoring.Prediction {
	return scoring.Prediction{
		UserID:      p.UserID,
		GpID:        p.GpID,
		Picks:       p.Picks.Scoring(),
		SubmittedAt: p.SubmittedAt,
	}
}
