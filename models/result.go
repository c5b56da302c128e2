package models

import (
	"slices"
	"time"

	"github.com/uptrace/bun"

	"github.com/padraicbc/gridpredict/scoring"
)

// SessionGroup is a unit of publication for an official result.
type SessionGroup string

const (
	GroupQuali  SessionGroup = "quali"
	GroupSprint SessionGroup = "sprint"
	GroupRace   SessionGroup = "race"
)

// ManualOverride records who hand-edited a result field and why. Audit only.
type ManualOverride struct {
	EditorName string `json:"editorName" validate:"required,max=128"`
	Reason     string `json:"reason" validate:"required,max=512"`
}

// DraftResult is an admin's work-in-progress result. Nothing is scored from
// it until it is published.
type DraftResult struct {
	bun.BaseModel `bun:"table:draft_results,alias:dr"`

	GpID int `bun:"gp_id,pk" json:"gpId"`
	Picks
	UpdatedBy string    `bun:"updated_by,notnull" json:"updatedBy"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updatedAt"`
}

// OfficialResult is the published outcome of a GP. PublishedSessions lists
// which session groups have been released; fields of unpublished groups
// stay empty.
type OfficialResult struct {
	bun.BaseModel `bun:"table:official_results,alias:res"`

	GpID int `bun:"gp_id,pk" json:"gpId"`
	Picks
	PublishedAt       time.Time                 `bun:"published_at,notnull" json:"publishedAt"`
	PublishedSessions []SessionGroup            `bun:"published_sessions,type:jsonb,notnull" json:"publishedSessions"`
	ManualOverrides   map[string]ManualOverride `bun:"manual_overrides,type:jsonb" json:"manualOverrides,omitempty"`
}

func (r OfficialResult) Scoring() scoring.Result {
	return scoring.Result{GpID: r.GpID, Picks: r.Picks.Scoring()}
}

// Publish copies the draft's fields for each group onto r, records the
// groups as published and merges overrides. Groups not listed keep their
// previously published values.
func (r *OfficialResult) Publish(draft Picks, groups []SessionGroup, overrides map[string]ManualOverride, at time.Time) {
	for _, g := range groups {
		switch g {
		case GroupQuali:
			r.Pole = draft.Pole
		case GroupSprint:
			r.SprintPole = draft.SprintPole
			r.SprintPodium = slices.Clone(draft.SprintPodium)
		case GroupRace:
			r.RacePodium = slices.Clone(draft.RacePodium)
			r.FastestLap = draft.FastestLap
			r.DriverOfTheDay = draft.DriverOfTheDay
		default:
			continue
		}
		if !slices.Contains(r.PublishedSessions, g) {
			r.PublishedSessions = append(r.PublishedSessions, g)
		}
	}

	if len(overrides) > 0 && r.ManualOverrides == nil {
		r.ManualOverrides = make(map[string]ManualOverride, len(overrides))
	}
	for field, o := range overrides {
		r.ManualOverrides[field] = o
	}

	r.PublishedAt = at
}

// ValidGroup reports whether g names a known session group.
func ValidGroup(g SessionGroup) bool {
	switch g {
	case GroupQuali, GroupSprint, GroupRace:
		return true
	}
	return false
}
