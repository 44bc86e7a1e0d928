package store

import (
	"context"
	"time"

	"github.com/piyushKumar-1/betterbe/internal/model"
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (postgres, sqlite).
type Store interface {
	Users() Users
	Habits() Habits
	CheckIns() CheckIns
	Goals() Goals
	Sync() Sync
}

type Users interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	Get(ctx context.Context, userID string) (*model.User, error)
	Update(ctx context.Context, userID string, req model.UpdateUserRequest) (*model.User, error)
	SetCloudSync(ctx context.Context, userID string, enabled bool) error
}

type Habits interface {
	Create(ctx context.Context, h *model.Habit) (*model.Habit, error)
	GetByID(ctx context.Context, userID, habitID string) (*model.Habit, error)
	List(ctx context.Context, userID string) ([]*model.Habit, error)
	Update(ctx context.Context, userID, habitID string, req model.UpdateHabitRequest) (*model.Habit, error)
	Delete(ctx context.Context, userID, habitID string) error
}

type CheckIns interface {
	// Upsert inserts or overwrites the row keyed on (habit, effective date).
	// On conflict the value is replaced and the note only when the incoming
	// note is non-nil.
	Upsert(ctx context.Context, c *model.CheckIn) (*model.CheckIn, error)
	List(ctx context.Context, req model.ListCheckInsRequest) ([]*model.CheckIn, error)
	ListForDate(ctx context.Context, userID string, date model.Date) ([]*model.CheckIn, error)
	Update(ctx context.Context, userID, checkInID string, req model.UpdateCheckInRequest) (*model.CheckIn, error)
	Delete(ctx context.Context, userID, checkInID string) error
}

type Goals interface {
	// Create inserts the goal and any initial habit links in one transaction.
	Create(ctx context.Context, g *model.Goal, habitIDs []string) (*model.Goal, error)
	GetByID(ctx context.Context, userID, goalID string) (*model.Goal, error)
	List(ctx context.Context, userID string) ([]*model.Goal, error)
	Update(ctx context.Context, userID, goalID string, req model.UpdateGoalRequest) (*model.Goal, error)
	Delete(ctx context.Context, userID, goalID string) error
	ListLinks(ctx context.Context, userID, goalID string) ([]*model.GoalHabit, error)
	LinkHabit(ctx context.Context, gh *model.GoalHabit) (*model.GoalHabit, error)
	UnlinkHabit(ctx context.Context, userID, goalID, habitID string) error
}

// Sync bundles the operations of the snapshot protocol.
type Sync interface {
	// Status returns the user's sync flag, last successful push time and
	// per-entity row counts.
	Status(ctx context.Context, userID string) (*model.SyncStatus, error)
	// Begin opens the unit of work for one push. All writes issued through
	// the returned SyncTx commit or roll back together.
	Begin(ctx context.Context) (SyncTx, error)
	// Export reads the user's four entity collections inside one read-only
	// transaction so pull observes a consistent cross-entity view.
	Export(ctx context.Context, userID string) (*model.SyncExport, error)
}

// SyncTx is the transactional write surface of one push. Conflict targets
// per entity: habits and goals key on their (freshly minted) id, check-ins
// on (habit_id, effective_date), goal-habit links on (goal_id, habit_id).
type SyncTx interface {
	UpsertHabit(ctx context.Context, h *model.Habit) error
	UpsertCheckIn(ctx context.Context, c *model.CheckIn) error
	UpsertGoal(ctx context.Context, g *model.Goal) error
	UpsertGoalHabit(ctx context.Context, gh *model.GoalHabit) error
	// TouchLastSync records the push completion timestamp on the user row.
	TouchLastSync(ctx context.Context, userID string, at time.Time) error
	Commit() error
	Rollback() error
}
