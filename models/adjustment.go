package models

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/padraicbc/gridpredict/scoring"
)

// PointAdjustment is a manual correction applied to a user's season total.
type PointAdjustment struct {
	bun.BaseModel `bun:"table:point_adjustments,alias:pa"`

	ID        string    `bun:"id,pk" json:"id"`
	UserID    string    `bun:"user_id,notnull" json:"userId"`
	Points    int       `bun:"points,notnull" json:"points"`
	Reason    string    `bun:"reason,notnull" json:"reason"`
	AdminID   string    `bun:"admin_id,notnull" json:"adminId"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"timestamp"`
}

func (a PointAdjustment) Scoring() scoring.PointAdjustment {
	return scoring.PointAdjustment{
		ID:        a.ID,
		UserID:    a.UserID,
		Points:    a.Points,
		Reason:    a.Reason,
		AdminID:   a.AdminID,
		Timestamp: a.CreatedAt,
	}
}
