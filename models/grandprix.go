package models

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/padraicbc/gridpredict/scoring"
)

// GrandPrix is one race weekend on the calendar. Events maps session names
// ("quali", "race", and for sprint weekends "sprintQuali", "sprint") to
// their scheduled start.
type GrandPrix struct {
	bun.BaseModel `bun:"table:grand_prix,alias:gp"`

	ID        int                           `bun:"id,pk" json:"id" validate:"required,gt=0"`
	Season    int                           `bun:"season,notnull" json:"season" validate:"required,gte=1950"`
	Round     int                           `bun:"round,notnull" json:"round" validate:"required,gt=0"`
	Name      string                        `bun:"name,notnull" json:"name" validate:"required,max=128"`
	HasSprint bool                          `bun:"has_sprint,notnull" json:"hasSprint"`
	Events    map[scoring.Session]time.Time `bun:"events,type:jsonb,notnull" json:"events" validate:"required"`
}

func (gp GrandPrix) Scoring() scoring.GrandPrix {
	return scoring.GrandPrix{
		ID:        gp.ID,
		Name:      gp.Name,
		HasSprint: gp.HasSprint,
		Events:    gp.Events,
	}
}
