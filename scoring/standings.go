package scoring

import (
	"cmp"
	"slices"
)

// CalculateSeasonStandings totals every user's score over all official
// results plus their point adjustments, best first. Ties are ordered by
// user id.
//
// schedule supplies the real GrandPrix for each result. A result whose GP is
// missing from schedule is scored against a bare GP whose sprint flag is
// inferred from the result carrying sprint picks.
//
// Predictions from unknown users, predictions without a result and
// adjustments for unknown users are ignored.
func CalculateSeasonStandings(
	schedule []GrandPrix,
	users []User,
	predictions []Prediction,
	results []Result,
	adjustments []PointAdjustment,
) []SeasonTotal {
	totals := make(map[string]*SeasonTotal, len(users))
	out := make([]*SeasonTotal, 0, len(users))
	for _, u := range users {
		if _, dup := totals[u.ID]; dup {
			continue
		}
		st := &SeasonTotal{
			UserID:           u.ID,
			DisplayName:      u.DisplayName,
			PointAdjustments: []PointAdjustment{},
		}
		totals[u.ID] = st
		out = append(out, st)
	}

	gps := make(map[int]GrandPrix, len(schedule))
	for _, gp := range schedule {
		gps[gp.ID] = gp
	}

	byGP := make(map[int][]Prediction)
	for _, p := range predictions {
		byGP[p.GpID] = append(byGP[p.GpID], p)
	}

	for _, r := range results {
		gp, ok := gps[r.GpID]
		if !ok {
			gp = InferredGrandPrix(r)
		}

		for _, p := range byGP[r.GpID] {
			st, ok := totals[p.UserID]
			if !ok {
				continue
			}
			st.TotalPoints += CalculateGpScore(gp, p, r).TotalPoints

			if matches(p.Picks.Pole, r.Picks.Pole) {
				st.Details.ExactPole++
			}
			if matches(p.Picks.RacePodium[0], r.Picks.RacePodium[0]) {
				st.Details.ExactP1++
			}
			if matches(p.Picks.FastestLap, r.Picks.FastestLap) {
				st.Details.ExactFastestLap++
			}
		}
	}

	for _, adj := range adjustments {
		st, ok := totals[adj.UserID]
		if !ok {
			continue
		}
		st.TotalPoints += adj.Points
		st.PointAdjustments = append(st.PointAdjustments, adj)
	}

	slices.SortStableFunc(out, func(a, b *SeasonTotal) int {
		if c := cmp.Compare(b.TotalPoints, a.TotalPoints); c != 0 {
			return c
		}
		return cmp.Compare(a.UserID, b.UserID)
	})

	standings := make([]SeasonTotal, len(out))
	for i, st := range out {
		standings[i] = *st
	}
	return standings
}

// InferredGrandPrix is the bare GP used to score r when its schedule entry
// is unknown. It is a sprint weekend iff r carries any sprint pick.
func InferredGrandPrix(r Result) GrandPrix {
	return GrandPrix{ID: r.GpID, HasSprint: r.Picks.HasSprintFields()}
}

// LeagueStandings keeps only the rows of standings whose user is in members,
// preserving order.
func LeagueStandings(standings []SeasonTotal, members []string) []SeasonTotal {
	in := make(map[string]struct{}, len(members))
	for _, m := range members {
		in[m] = struct{}{}
	}

	out := make([]SeasonTotal, 0, len(members))
	for _, st := range standings {
		if _, ok := in[st.UserID]; ok {
			out = append(out, st)
		}
	}
	return out
}
