package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padraicbc/gridpredict/scoring"
)

func ids(s ...string) []scoring.DriverID {
	out := make([]scoring.DriverID, len(s))
	for i, v := range s {
		out[i] = scoring.DriverID(v)
	}
	return out
}

func TestPicksEqualPadsShortPodium(t *testing.T) {
	a := Picks{Pole: "VER", RacePodium: ids("VER", "NOR")}
	b := Picks{Pole: "VER", RacePodium: ids("VER", "NOR", "")}
	assert.True(t, a.Equal(b))

	b.RacePodium[2] = "LEC"
	assert.False(t, a.Equal(b))
}

func TestPicksScoring(t *testing.T) {
	p := Picks{SprintPodium: ids("", "HAM"), FastestLap: "PIA"}
	got := p.Scoring()
	assert.Equal(t, scoring.Podium{"", "HAM", ""}, got.SprintPodium)
	assert.Equal(t, scoring.DriverID("PIA"), got.FastestLap)
	assert.True(t, got.RacePodium.IsEmpty())
}

func TestPicksSections(t *testing.T) {
	p := Picks{
		Pole:           "VER",
		SprintPole:     "NOR",
		SprintPodium:   ids("NOR", "VER", "LEC"),
		RacePodium:     ids("VER", "NOR", "LEC"),
		FastestLap:     "HAM",
		DriverOfTheDay: "ALO",
	}

	main := p.MainPicks()
	assert.Empty(t, main.SprintPole)
	assert.Empty(t, main.SprintPodium)
	assert.Equal(t, p.RacePodium, main.RacePodium)

	sprint := p.SprintPicks()
	assert.Empty(t, sprint.Pole)
	assert.Equal(t, scoring.DriverID("NOR"), sprint.SprintPole)

	assert.Len(t, p.Drivers(), 10)
}

func TestDuplicateDriver(t *testing.T) {
	tests := []struct {
		name   string
		podium []scoring.DriverID
		want   scoring.DriverID
		dup    bool
	}{
		{"distinct", ids("VER", "NOR", "LEC"), "", false},
		{"empty slots ignored", ids("", "", "LEC"), "", false},
		{"repeat", ids("VER", "NOR", "VER"), "VER", true},
		{"nil", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, dup := DuplicateDriver(tt.podium)
			assert.Equal(t, tt.dup, dup)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOfficialResultPublish(t *testing.T) {
	draft := Picks{
		Pole:           "VER",
		SprintPole:     "NOR",
		SprintPodium:   ids("NOR", "VER", "LEC"),
		RacePodium:     ids("VER", "NOR", "LEC"),
		FastestLap:     "HAM",
		DriverOfTheDay: "ALO",
	}
	t0 := time.Date(2025, 3, 15, 7, 0, 0, 0, time.UTC)

	var r OfficialResult
	r.Publish(draft, []SessionGroup{GroupQuali}, nil, t0)
	assert.Equal(t, scoring.DriverID("VER"), r.Pole)
	assert.Empty(t, r.RacePodium)
	assert.Empty(t, r.SprintPole)
	assert.Equal(t, []SessionGroup{GroupQuali}, r.PublishedSessions)
	assert.Nil(t, r.ManualOverrides)

	t1 := t0.Add(24 * time.Hour)
	draft.Pole = "PIA"
	r.Publish(draft, []SessionGroup{GroupRace, GroupQuali, "bogus"}, map[string]ManualOverride{
		"fastestLap": {EditorName: "steward", Reason: "track limits"},
	}, t1)

	assert.Equal(t, scoring.DriverID("PIA"), r.Pole, "republishing a group replaces it")
	assert.Equal(t, draft.RacePodium, r.RacePodium)
	assert.Equal(t, scoring.DriverID("HAM"), r.FastestLap)
	assert.Empty(t, r.SprintPodium)
	assert.Equal(t, []SessionGroup{GroupQuali, GroupRace}, r.PublishedSessions)
	require.Contains(t, r.ManualOverrides, "fastestLap")
	assert.Equal(t, t1, r.PublishedAt)

	// the clone keeps later draft edits out of the official copy
	draft.RacePodium[0] = "SAI"
	assert.Equal(t, scoring.DriverID("VER"), r.RacePodium[0])
}

func TestValidGroup(t *testing.T) {
	assert.True(t, ValidGroup(GroupSprint))
	assert.False(t, ValidGroup("practice"))
}
