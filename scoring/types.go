// Package scoring holds the game rules: when prediction forms close, how a
// prediction is scored against an official result and how scores add up to
// season standings. Everything here is a pure function of its arguments.
package scoring

import "time"

// DriverID is a stable driver identifier. The empty value means "no pick".
type DriverID string

// Session names a scheduled session inside a race weekend.
type Session string

const (
	SessionQuali       Session = "quali"
	SessionSprintQuali Session = "sprintQuali"
	SessionSprint      Session = "sprint"
	SessionRace        Session = "race"
)

// Podium is P1, P2, P3 in order. Slots may be empty independently.
type Podium [3]DriverID

// Contains reports whether d occupies any slot. An empty d never matches.
func (p Podium) Contains(d DriverID) bool {
	if d == "" {
		return false
	}
	for _, slot := range p {
		if slot == d {
			return true
		}
	}
	return false
}

// IsEmpty reports whether no slot is filled.
func (p Podium) IsEmpty() bool {
	return p[0] == "" && p[1] == "" && p[2] == ""
}

// GrandPrix is one race weekend.
type GrandPrix struct {
	ID        int
	Name      string
	HasSprint bool
	Events    map[Session]time.Time
}

// Picks is the shape shared by predictions and results.
type Picks struct {
	Pole           DriverID
	SprintPole     DriverID
	SprintPodium   Podium
	RacePodium     Podium
	FastestLap     DriverID
	DriverOfTheDay DriverID
}

// HasSprintFields reports whether any sprint pick is filled in.
func (p Picks) HasSprintFields() bool {
	return p.SprintPole != "" || !p.SprintPodium.IsEmpty()
}

// Prediction is one user's picks for one GP.
type Prediction struct {
	UserID      string
	GpID        int
	Picks       Picks
	SubmittedAt time.Time
}

// Result is the official outcome of one GP, possibly only partly published.
type Result struct {
	GpID  int
	Picks Picks
}

// User is the part of a league member the standings need.
type User struct {
	ID          string
	DisplayName string
}

// PointAdjustment is a manual, signed correction to a user's season total.
type PointAdjustment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Points    int       `json:"points"`
	Reason    string    `json:"reason"`
	AdminID   string    `json:"adminId"`
	Timestamp time.Time `json:"timestamp"`
}

// Breakdown is the per-category points of a GpScore.
type Breakdown struct {
	Pole           int `json:"pole"`
	SprintPole     int `json:"sprintPole"`
	SprintPodium   int `json:"sprintPodium"`
	RacePodium     int `json:"racePodium"`
	FastestLap     int `json:"fastestLap"`
	DriverOfTheDay int `json:"driverOfTheDay"`
}

// Sum adds up all six categories.
func (b Breakdown) Sum() int {
	return b.Pole + b.SprintPole + b.SprintPodium + b.RacePodium + b.FastestLap + b.DriverOfTheDay
}

// GpScore is the outcome of scoring one prediction. TotalPoints always
// equals Breakdown.Sum().
type GpScore struct {
	GpID        int       `json:"gpId"`
	GpName      string    `json:"gpName"`
	TotalPoints int       `json:"totalPoints"`
	Breakdown   Breakdown `json:"breakdown"`
}

// Details counts exact hits across a season.
type Details struct {
	ExactPole       int `json:"exactPole"`
	ExactP1         int `json:"exactP1"`
	ExactFastestLap int `json:"exactFastestLap"`
}

// SeasonTotal is one row of the season standings.
type SeasonTotal struct {
	UserID           string            `json:"userId"`
	DisplayName      string            `json:"displayName"`
	TotalPoints      int               `json:"totalPoints"`
	Details          Details           `json:"details"`
	PointAdjustments []PointAdjustment `json:"pointAdjustments"`
}
