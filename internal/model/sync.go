package model

import "time"

// SyncSnapshot is the full-snapshot bundle exchanged by push and pull.
//
// On push, localId is a client-minted opaque string whose only job is to let
// check-ins and goal-habit links reference their parent inside the same
// snapshot. On pull, the server's canonical ids are exported in the localId
// fields: from the importing device's point of view they are just stable
// identifiers.
type SyncSnapshot struct {
	Habits     []SyncHabit     `json:"habits"`
	CheckIns   []SyncCheckIn   `json:"checkIns"`
	Goals      []SyncGoal      `json:"goals"`
	GoalHabits []SyncGoalHabit `json:"goalHabits"`
	SyncedAt   time.Time       `json:"syncedAt"`
}

type SyncHabit struct {
	LocalID         string    `json:"localId"`
	Name            string    `json:"name"`
	Description     *string   `json:"description,omitempty"`
	HabitType       string    `json:"habitType"`
	Unit            *string   `json:"unit,omitempty"`
	TargetValue     *int      `json:"targetValue,omitempty"`
	TargetDirection string    `json:"targetDirection"`
	Archived        bool      `json:"archived"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// SyncCheckIn carries the effective date as a raw string: unparseable dates
// must fail the push while it is being processed, not at decode time.
type SyncCheckIn struct {
	LocalID       string    `json:"localId"`
	HabitLocalID  string    `json:"habitLocalId"`
	Value         int       `json:"value"`
	Note          *string   `json:"note,omitempty"`
	EffectiveDate string    `json:"effectiveDate"`
	CreatedAt     time.Time `json:"createdAt"`
}

type SyncGoal struct {
	LocalID     string    `json:"localId"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Deadline    string    `json:"deadline"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type SyncGoalHabit struct {
	GoalLocalID  string  `json:"goalLocalId"`
	HabitLocalID string  `json:"habitLocalId"`
	Weight       float64 `json:"weight"`
}

// SyncResult reports what one push actually wrote. Goal-habit links and
// silently skipped records are not counted.
type SyncResult struct {
	Success        bool      `json:"success"`
	SyncedHabits   int       `json:"syncedHabits"`
	SyncedCheckins int       `json:"syncedCheckins"`
	SyncedGoals    int       `json:"syncedGoals"`
	SyncedAt       time.Time `json:"syncedAt"`
}

// SyncStatus summarizes a user's sync state and server-side row counts.
type SyncStatus struct {
	Enabled       bool       `json:"enabled"`
	LastSync      *time.Time `json:"lastSync"`
	HabitsCount   int64      `json:"habitsCount"`
	CheckinsCount int64      `json:"checkinsCount"`
	GoalsCount    int64      `json:"goalsCount"`
}

// SyncExport is the server-side view read by pull before serialization.
type SyncExport struct {
	Habits     []*Habit
	CheckIns   []*CheckIn
	Goals      []*Goal
	GoalHabits []*GoalHabit
}
