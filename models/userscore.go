package models

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/padraicbc/gridpredict/scoring"
)

// UserScore caches one user's GpScore for a published GP. It is rewritten
// every time the GP's official result is published.
type UserScore struct {
	bun.BaseModel `bun:"table:user_scores,alias:us"`

	UserID      string            `bun:"user_id,pk" json:"userId"`
	GpID        int               `bun:"gp_id,pk" json:"gpId"`
	GpName      string            `bun:"gp_name,notnull" json:"gpName"`
	TotalPoints int               `bun:"total_points,notnull" json:"totalPoints"`
	Breakdown   scoring.Breakdown `bun:"breakdown,type:jsonb,notnull" json:"breakdown"`
	UpdatedAt   time.Time         `bun:"updated_at,notnull" json:"updatedAt"`
}

// NewUserScore builds the cache row for a computed score.
func NewUserScore(userID string, s scoring.GpScore, at time.Time) UserScore {
	return UserScore{
		UserID:      userID,
		GpID:        s.GpID,
		GpName:      s.GpName,
		TotalPoints: s.TotalPoints,
		Breakdown:   s.Breakdown,
		UpdatedAt:   at,
	}
}
