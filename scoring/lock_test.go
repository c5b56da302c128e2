package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLockStatusAt(t *testing.T) {
	quali := time.Date(2025, 7, 5, 14, 0, 0, 0, time.UTC)
	sprintQuali := time.Date(2025, 7, 4, 16, 30, 0, 0, time.UTC)
	boundary := quali.Add(-5 * time.Minute)
	sprintBoundary := sprintQuali.Add(-5 * time.Minute)

	normal := GrandPrix{ID: 1, Events: map[Session]time.Time{
		SessionQuali: quali,
		SessionRace:  quali.Add(24 * time.Hour),
	}}
	sprint := GrandPrix{ID: 2, HasSprint: true, Events: map[Session]time.Time{
		SessionSprintQuali: sprintQuali,
		SessionSprint:      quali.Add(-3 * time.Hour),
		SessionQuali:       quali,
		SessionRace:        quali.Add(24 * time.Hour),
	}}
	sprintNoSQ := GrandPrix{ID: 3, HasSprint: true, Events: map[Session]time.Time{
		SessionQuali: quali,
		SessionRace:  quali.Add(24 * time.Hour),
	}}

	tests := []struct {
		name string
		gp   GrandPrix
		now  time.Time
		want LockStatus
	}{
		{"open a second before the boundary", normal, boundary.Add(-time.Second), LockStatus{false, true}},
		{"open exactly at the boundary", normal, boundary, LockStatus{false, true}},
		{"locked a second after the boundary", normal, boundary.Add(time.Second), LockStatus{true, true}},
		{"sprint open days before", sprint, sprintQuali.Add(-48 * time.Hour), LockStatus{false, false}},
		{"sprint locks on sprint quali", sprint, sprintBoundary.Add(time.Second), LockStatus{false, true}},
		{"sprint open at its boundary", sprint, sprintBoundary, LockStatus{false, false}},
		{"sprint falls back to quali before", sprintNoSQ, boundary.Add(-time.Second), LockStatus{false, false}},
		{"sprint falls back to quali after", sprintNoSQ, boundary.Add(time.Second), LockStatus{true, true}},
		{"missing quali locks the form", GrandPrix{ID: 4}, quali.Add(-72 * time.Hour), LockStatus{true, true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LockStatusAt(tt.gp, tt.now))
		})
	}
}

func TestLockStatusAt_FallbackMatchesRaceLock(t *testing.T) {
	quali := time.Date(2025, 5, 3, 20, 0, 0, 0, time.UTC)
	gp := GrandPrix{HasSprint: true, Events: map[Session]time.Time{SessionQuali: quali}}

	for _, offset := range []time.Duration{-time.Hour, -5*time.Minute - time.Second, -5*time.Minute + time.Second, time.Hour} {
		st := LockStatusAt(gp, quali.Add(offset))
		assert.Equal(t, st.IsRaceLocked, st.IsSprintLocked, "offset %s", offset)
	}
}
