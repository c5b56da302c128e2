package scoring

import "time"

// LockMinutesBefore is how long before a session starts its form closes.
const LockMinutesBefore = 5

const lockLead = LockMinutesBefore * time.Minute

// LockStatus tells which prediction forms are closed.
type LockStatus struct {
	IsRaceLocked   bool `json:"isRaceLocked"`
	IsSprintLocked bool `json:"isSprintLocked"`
}

// LockStatusAt reports the lock state of gp's forms at now.
//
// The main form carries the pole pick, so it closes ahead of qualifying
// rather than the race. A GP without a quali time is treated as locked.
// The sprint form closes ahead of sprint qualifying, or ahead of
// qualifying when no sprint qualifying time is scheduled. Non-sprint
// weekends always report the sprint form as locked.
func LockStatusAt(gp GrandPrix, now time.Time) LockStatus {
	quali, ok := gp.Events[SessionQuali]
	raceLocked := !ok || now.After(quali.Add(-lockLead))

	sprintLocked := true
	if gp.HasSprint {
		if sq, ok := gp.Events[SessionSprintQuali]; ok {
			sprintLocked = now.After(sq.Add(-lockLead))
		} else {
			sprintLocked = raceLocked
		}
	}

	return LockStatus{IsRaceLocked: raceLocked, IsSprintLocked: sprintLocked}
}
