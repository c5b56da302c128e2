package scoring

// Point values.
const (
	PolePoints           = 10
	FastestLapPoints     = 8
	DriverOfTheDayPoints = 6
	SprintPolePoints     = 5
)

// PodiumValues holds the points for an exact P1, P2, P3 and the bonus for a
// driver predicted on the podium but in the wrong slot.
type PodiumValues struct {
	Exact         [3]int
	WrongPosition int
}

var (
	RacePodiumValues   = PodiumValues{Exact: [3]int{15, 10, 7}, WrongPosition: 5}
	SprintPodiumValues = PodiumValues{Exact: [3]int{8, 5, 3}, WrongPosition: 2}
)

// CalculateGpScore scores one prediction against one official result.
// Sprint categories only count when gp.HasSprint is set. Missing picks on
// either side score nothing.
func CalculateGpScore(gp GrandPrix, p Prediction, r Result) GpScore {
	pred, res := p.Picks, r.Picks

	var b Breakdown
	b.Pole = award(pred.Pole, res.Pole, PolePoints)
	b.FastestLap = award(pred.FastestLap, res.FastestLap, FastestLapPoints)
	b.DriverOfTheDay = award(pred.DriverOfTheDay, res.DriverOfTheDay, DriverOfTheDayPoints)
	b.RacePodium = ScorePodium(pred.RacePodium, res.RacePodium, RacePodiumValues)

	if gp.HasSprint {
		b.SprintPole = award(pred.SprintPole, res.SprintPole, SprintPolePoints)
		b.SprintPodium = ScorePodium(pred.SprintPodium, res.SprintPodium, SprintPodiumValues)
	}

	return GpScore{
		GpID:        gp.ID,
		GpName:      gp.Name,
		TotalPoints: b.Sum(),
		Breakdown:   b,
	}
}

// ScorePodium scores each predicted slot on its own: the exact value when the
// driver is in that slot of the official podium, otherwise the wrong-position
// bonus when the driver is anywhere on it. A driver repeated across slots is
// scored once per slot.
func ScorePodium(pred, official Podium, v PodiumValues) int {
	points := 0
	for i, d := range pred {
		switch {
		case d == "":
		case official[i] == d:
			points += v.Exact[i]
		case official.Contains(d):
			points += v.WrongPosition
		}
	}
	return points
}

func award(pred, official DriverID, points int) int {
	if matches(pred, official) {
		return points
	}
	return 0
}

func matches(pred, official DriverID) bool {
	return pred != "" && pred == official
}
