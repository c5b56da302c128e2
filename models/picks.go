package models

import "github.com/padraicbc/gridpredict/scoring"

// Picks is the set of driver columns shared by predictions and results.
// Empty strings are stored as NULL. Podiums are JSON arrays of up to three
// ids where "" or null marks an empty slot.
type Picks struct {
	Pole           scoring.DriverID   `bun:"pole,nullzero" json:"pole,omitempty" validate:"omitempty,max=64"`
	SprintPole     scoring.DriverID   `bun:"sprint_pole,nullzero" json:"sprintPole,omitempty" validate:"omitempty,max=64"`
	SprintPodium   []scoring.DriverID `bun:"sprint_podium,type:jsonb" json:"sprintPodium,omitempty" validate:"max=3,dive,max=64"`
	RacePodium     []scoring.DriverID `bun:"race_podium,type:jsonb" json:"racePodium,omitempty" validate:"max=3,dive,max=64"`
	FastestLap     scoring.DriverID   `bun:"fastest_lap,nullzero" json:"fastestLap,omitempty" validate:"omitempty,max=64"`
	DriverOfTheDay scoring.DriverID   `bun:"driver_of_the_day,nullzero" json:"driverOfTheDay,omitempty" validate:"omitempty,max=64"`
}

// Scoring converts to the engine's fixed-size representation.
func (p Picks) Scoring() scoring.Picks {
	return scoring.Picks{
		Pole:           p.Pole,
		SprintPole:     p.SprintPole,
		SprintPodium:   toPodium(p.SprintPodium),
		RacePodium:     toPodium(p.RacePodium),
		FastestLap:     p.FastestLap,
		DriverOfTheDay: p.DriverOfTheDay,
	}
}

// Drivers returns every non-empty driver id referenced, in field order.
func (p Picks) Drivers() []scoring.DriverID {
	var out []scoring.DriverID
	add := func(ids ...scoring.DriverID) {
		for _, id := range ids {
			if id != "" {
				out = append(out, id)
			}
		}
	}
	add(p.Pole, p.SprintPole)
	add(p.SprintPodium...)
	add(p.RacePodium...)
	add(p.FastestLap, p.DriverOfTheDay)
	return out
}

// MainPicks returns only the fields on the main (race) form.
func (p Picks) MainPicks() Picks {
	return Picks{
		Pole:           p.Pole,
		RacePodium:     p.RacePodium,
		FastestLap:     p.FastestLap,
		DriverOfTheDay: p.DriverOfTheDay,
	}
}

// SprintPicks returns only the fields on the sprint form.
func (p Picks) SprintPicks() Picks {
	return Picks{SprintPole: p.SprintPole, SprintPodium: p.SprintPodium}
}

// Equal compares picks slot by slot, treating a short podium as padded
// with empty slots.
func (p Picks) Equal(o Picks) bool {
	return p.Scoring() == o.Scoring()
}

func toPodium(ids []scoring.DriverID) scoring.Podium {
	var pod scoring.Podium
	copy(pod[:], ids)
	return pod
}

// DuplicateDriver returns the first driver listed twice on a podium.
func DuplicateDriver(podium []scoring.DriverID) (scoring.DriverID, bool) {
	seen := make(map[scoring.DriverID]struct{}, len(podium))
	for _, d := range podium {
		if d == "" {
			continue
		}
		if _, ok := seen[d]; ok {
			return d, true
		}
		seen[d] = struct{}{}
	}
	return "", false
}
