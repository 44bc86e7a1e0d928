package model

import "time"

// HabitType distinguishes done/not-done habits from measured ones.
type HabitType string

const (
	HabitTypeBinary  HabitType = "binary"
	HabitTypeNumeric HabitType = "numeric"
)

// TargetDirection states how a check-in value relates to the habit target.
type TargetDirection string

const (
	TargetAtLeast TargetDirection = "at_least"
	TargetAtMost  TargetDirection = "at_most"
	TargetExactly TargetDirection = "exactly"
)

// GoalStatus is the lifecycle state of a goal.
type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalAchieved  GoalStatus = "achieved"
	GoalFailed    GoalStatus = "failed"
	GoalAbandoned GoalStatus = "abandoned"
)

func (t HabitType) Valid() bool {
	return t == HabitTypeBinary || t == HabitTypeNumeric
}

func (d TargetDirection) Valid() bool {
	return d == TargetAtLeast || d == TargetAtMost || d == TargetExactly
}

func (s GoalStatus) Valid() bool {
	switch s {
	case GoalActive, GoalAchieved, GoalFailed, GoalAbandoned:
		return true
	}
	return false
}

// User represents an account in the system.
type User struct {
	UserID           string     `json:"userId"`
	Email            string     `json:"email"`
	Name             *string    `json:"name,omitempty"`
	AvatarURL        *string    `json:"avatarUrl,omitempty"`
	CloudSyncEnabled bool       `json:"cloudSyncEnabled"`
	LastSyncedAt     *time.Time `json:"lastSyncedAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// Habit is a tracked behavior owned by one user.
type Habit struct {
	HabitID         string          `json:"habitId"`
	UserID          string          `json:"userId"`
	Name            string          `json:"name"`
	Description     *string         `json:"description,omitempty"`
	HabitType       HabitType       `json:"habitType"`
	Unit            *string         `json:"unit,omitempty"`
	TargetValue     *int            `json:"targetValue,omitempty"`
	TargetDirection TargetDirection `json:"targetDirection"`
	Archived        bool            `json:"archived"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// CheckIn records one habit observation for a calendar day.
// At most one row may exist per (HabitID, EffectiveDate).
type CheckIn struct {
	CheckInID     string    `json:"checkInId"`
	HabitID       string    `json:"habitId"`
	UserID        string    `json:"userId"`
	Value         int       `json:"value"`
	Note          *string   `json:"note,omitempty"`
	EffectiveDate Date      `json:"effectiveDate"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Goal is a deadline-bound objective built from one or more habits.
type Goal struct {
	GoalID      string     `json:"goalId"`
	UserID      string     `json:"userId"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	Deadline    Date       `json:"deadline"`
	Status      GoalStatus `json:"status"`
	IsShared    bool       `json:"isShared"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// GoalHabit links a habit into a goal with a contribution weight.
// At most one row may exist per (GoalID, HabitID).
type GoalHabit struct {
	GoalHabitID string  `json:"goalHabitId"`
	GoalID      string  `json:"goalId"`
	HabitID     string  `json:"habitId"`
	Weight      float64 `json:"weight"`
}

// UpdateUserRequest carries the mutable profile fields; nil means unchanged.
type UpdateUserRequest struct {
	Name             *string `json:"name,omitempty"`
	CloudSyncEnabled *bool   `json:"cloudSyncEnabled,omitempty"`
}

// UpdateHabitRequest carries partial habit updates; nil means unchanged.
type UpdateHabitRequest struct {
	Name            *string          `json:"name,omitempty"`
	Description     *string          `json:"description,omitempty"`
	Unit            *string          `json:"unit,omitempty"`
	TargetValue     *int             `json:"targetValue,omitempty"`
	TargetDirection *TargetDirection `json:"targetDirection,omitempty"`
	Archived        *bool            `json:"archived,omitempty"`
}

// UpdateCheckInRequest carries partial check-in updates; nil means unchanged.
type UpdateCheckInRequest struct {
	Value *int    `json:"value,omitempty"`
	Note  *string `json:"note,omitempty"`
}

// UpdateGoalRequest carries partial goal updates; nil means unchanged.
type UpdateGoalRequest struct {
	Name        *string     `json:"name,omitempty"`
	Description *string     `json:"description,omitempty"`
	Deadline    *Date       `json:"deadline,omitempty"`
	Status      *GoalStatus `json:"status,omitempty"`
}

// ListCheckInsRequest captures filters used when listing check-ins.
type ListCheckInsRequest struct {
	UserID    string
	HabitID   *string
	StartDate *Date
	EndDate   *Date
}
