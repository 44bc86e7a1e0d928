package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/piyushKumar-1/betterbe/internal/model"
	"github.com/piyushKumar-1/betterbe/internal/store"
	"github.com/piyushKumar-1/betterbe/internal/store/sqlite"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.EnsureSchema(db))
	return sqlite.NewWithDB(db)
}

func newSyncedUser(t *testing.T, s store.Store) *model.User {
	t.Helper()
	u, err := s.Users().Create(context.Background(), &model.User{
		UserID: uuid.New().String(),
		Email:  uuid.New().String() + "@example.com",
	})
	require.NoError(t, err)
	require.NoError(t, s.Users().SetCloudSync(context.Background(), u.UserID, true))
	return u
}

func snapshotFixture() *model.SyncSnapshot {
	now := time.Now().UTC()
	note := "from device"
	return &model.SyncSnapshot{
		Habits: []model.SyncHabit{
			{
				LocalID:         "h-1",
				Name:            "Run",
				HabitType:       "numeric",
				TargetDirection: "at_least",
				CreatedAt:       now,
				UpdatedAt:       now,
			},
			{
				LocalID:         "h-2",
				Name:            "Meditate",
				HabitType:       "binary",
				TargetDirection: "at_least",
				CreatedAt:       now,
				UpdatedAt:       now,
			},
		},
		CheckIns: []model.SyncCheckIn{
			{LocalID: "c-1", HabitLocalID: "h-1", Value: 30, Note: &note, EffectiveDate: "2026-03-01", CreatedAt: now},
			{LocalID: "c-2", HabitLocalID: "h-2", Value: 1, EffectiveDate: "2026-03-01", CreatedAt: now},
		},
		Goals: []model.SyncGoal{
			{LocalID: "g-1", Name: "Spring 10k", Deadline: "2026-05-01", Status: "active", CreatedAt: now, UpdatedAt: now},
		},
		GoalHabits: []model.SyncGoalHabit{
			{GoalLocalID: "g-1", HabitLocalID: "h-1", Weight: 1.0},
		},
	}
}

func TestPushRoundTrip(t *testing.T) {
	s := newTestStore(t)
	u := newSyncedUser(t, s)
	svc := NewSyncService(s)
	ctx := context.Background()

	res, err := svc.Push(ctx, u.UserID, snapshotFixture())
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Equal(t, 2, res.SyncedHabits)
	require.Equal(t, 2, res.SyncedCheckins)
	require.Equal(t, 1, res.SyncedGoals)
	require.False(t, res.SyncedAt.IsZero())

	snap, err := svc.Pull(ctx, u.UserID)
	require.NoError(t, err)
	require.True(t, snap.SyncedAt.After(res.SyncedAt))
	require.Len(t, snap.Habits, 2)
	require.Len(t, snap.CheckIns, 2)
	require.Len(t, snap.Goals, 1)
	require.Len(t, snap.GoalHabits, 1)

	// The pulled link references the canonical ids exported alongside it.
	byName := map[string]string{}
	for _, h := range snap.Habits {
		require.NotEmpty(t, h.LocalID)
		byName[h.Name] = h.LocalID
	}
	require.Equal(t, byName["Run"], snap.GoalHabits[0].HabitLocalID)
	require.Equal(t, snap.Goals[0].LocalID, snap.GoalHabits[0].GoalLocalID)

	// Push records the sync time on the user row.
	user, err := s.Users().Get(ctx, u.UserID)
	require.NoError(t, err)
	require.NotNil(t, user.LastSyncedAt)

	st, err := svc.Status(ctx, u.UserID)
	require.NoError(t, err)
	require.True(t, st.Enabled)
	require.NotNil(t, st.LastSync)
	require.Equal(t, int64(2), st.HabitsCount)
	require.Equal(t, int64(2), st.CheckinsCount)
	require.Equal(t, int64(1), st.GoalsCount)
}

func TestPushRequiresCloudSync(t *testing.T) {
	s := newTestStore(t)
	svc := NewSyncService(s)
	ctx := context.Background()

	u, err := s.Users().Create(ctx, &model.User{UserID: uuid.New().String(), Email: "off@example.com"})
	require.NoError(t, err)

	_, err = svc.Push(ctx, u.UserID, snapshotFixture())
	require.ErrorIs(t, err, model.ErrValidation)

	_, err = svc.Pull(ctx, u.UserID)
	require.ErrorIs(t, err, model.ErrValidation)

	_, err = svc.Push(ctx, "missing", snapshotFixture())
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestPushSkipsUnresolvedReferences(t *testing.T) {
	s := newTestStore(t)
	u := newSyncedUser(t, s)
	svc := NewSyncService(s)
	ctx := context.Background()

	snap := snapshotFixture()
	snap.CheckIns = append(snap.CheckIns, model.SyncCheckIn{
		LocalID:       "c-orphan",
		HabitLocalID:  "h-unknown",
		Value:         5,
		EffectiveDate: "2026-03-02",
		CreatedAt:     time.Now().UTC(),
	})
	snap.GoalHabits = append(snap.GoalHabits, model.SyncGoalHabit{
		GoalLocalID:  "g-unknown",
		HabitLocalID: "h-1",
		Weight:       1.0,
	})

	res, err := svc.Push(ctx, u.UserID, snap)
	require.NoError(t, err)
	// The orphan check-in and dangling link are dropped without failing
	// the push or inflating counts.
	require.Equal(t, 2, res.SyncedCheckins)

	pulled, err := svc.Pull(ctx, u.UserID)
	require.NoError(t, err)
	require.Len(t, pulled.CheckIns, 2)
	require.Len(t, pulled.GoalHabits, 1)
}

func TestPushBadDateAbortsEverything(t *testing.T) {
	s := newTestStore(t)
	u := newSyncedUser(t, s)
	svc := NewSyncService(s)
	ctx := context.Background()

	snap := snapshotFixture()
	snap.CheckIns[1].EffectiveDate = "03/01/2026"

	_, err := svc.Push(ctx, u.UserID, snap)
	require.ErrorIs(t, err, model.ErrValidation)

	// Habits staged before the bad record are rolled back too.
	habits, err := s.Habits().List(ctx, u.UserID)
	require.NoError(t, err)
	require.Empty(t, habits)

	user, err := s.Users().Get(ctx, u.UserID)
	require.NoError(t, err)
	require.Nil(t, user.LastSyncedAt)
}

func TestPushBadGoalDeadlineAborts(t *testing.T) {
	s := newTestStore(t)
	u := newSyncedUser(t, s)
	svc := NewSyncService(s)
	ctx := context.Background()

	snap := snapshotFixture()
	snap.Goals[0].Deadline = "May 1st"

	_, err := svc.Push(ctx, u.UserID, snap)
	require.ErrorIs(t, err, model.ErrValidation)

	habits, err := s.Habits().List(ctx, u.UserID)
	require.NoError(t, err)
	require.Empty(t, habits)
}

func TestPushRejectsUnknownEnums(t *testing.T) {
	s := newTestStore(t)
	u := newSyncedUser(t, s)
	svc := NewSyncService(s)
	ctx := context.Background()

	snap := snapshotFixture()
	snap.Habits[0].HabitType = "streak"
	_, err := svc.Push(ctx, u.UserID, snap)
	require.ErrorIs(t, err, model.ErrValidation)

	snap = snapshotFixture()
	snap.Goals[0].Status = "paused"
	_, err = svc.Push(ctx, u.UserID, snap)
	require.ErrorIs(t, err, model.ErrValidation)
}

func TestPushMintsFreshIDsEachTime(t *testing.T) {
	s := newTestStore(t)
	u := newSyncedUser(t, s)
	svc := NewSyncService(s)
	ctx := context.Background()

	_, err := svc.Push(ctx, u.UserID, snapshotFixture())
	require.NoError(t, err)
	first, err := svc.Pull(ctx, u.UserID)
	require.NoError(t, err)

	// The same snapshot pushed again gets new server ids, so habits and
	// goals accumulate rather than converge.
	_, err = svc.Push(ctx, u.UserID, snapshotFixture())
	require.NoError(t, err)
	second, err := svc.Pull(ctx, u.UserID)
	require.NoError(t, err)
	require.Len(t, second.Habits, 2*len(first.Habits))
	require.Len(t, second.Goals, 2*len(first.Goals))

	seen := map[string]bool{}
	for _, h := range second.Habits {
		require.False(t, seen[h.LocalID])
		seen[h.LocalID] = true
	}
}

func TestPushCheckInOverwriteWithinSnapshot(t *testing.T) {
	s := newTestStore(t)
	u := newSyncedUser(t, s)
	svc := NewSyncService(s)
	ctx := context.Background()

	now := time.Now().UTC()
	note := "morning"
	snap := &model.SyncSnapshot{
		Habits: []model.SyncHabit{
			{LocalID: "h-1", Name: "Run", HabitType: "numeric", TargetDirection: "at_least", CreatedAt: now, UpdatedAt: now},
		},
		CheckIns: []model.SyncCheckIn{
			{LocalID: "c-1", HabitLocalID: "h-1", Value: 10, Note: &note, EffectiveDate: "2026-03-01", CreatedAt: now},
			// Same habit and day: the later record wins on value but a nil
			// note keeps the earlier one.
			{LocalID: "c-2", HabitLocalID: "h-1", Value: 25, EffectiveDate: "2026-03-01", CreatedAt: now},
		},
	}

	res, err := svc.Push(ctx, u.UserID, snap)
	require.NoError(t, err)
	require.Equal(t, 2, res.SyncedCheckins)

	pulled, err := svc.Pull(ctx, u.UserID)
	require.NoError(t, err)
	require.Len(t, pulled.CheckIns, 1)
	require.Equal(t, 25, pulled.CheckIns[0].Value)
	require.NotNil(t, pulled.CheckIns[0].Note)
	require.Equal(t, "morning", *pulled.CheckIns[0].Note)
}

func TestPushEmptySnapshot(t *testing.T) {
	s := newTestStore(t)
	u := newSyncedUser(t, s)
	svc := NewSyncService(s)

	res, err := svc.Push(context.Background(), u.UserID, &model.SyncSnapshot{})
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Zero(t, res.SyncedHabits)
	require.Zero(t, res.SyncedCheckins)
	require.Zero(t, res.SyncedGoals)
}

func TestPullEmptyState(t *testing.T) {
	s := newTestStore(t)
	u := newSyncedUser(t, s)
	svc := NewSyncService(s)

	snap, err := svc.Pull(context.Background(), u.UserID)
	require.NoError(t, err)
	require.Empty(t, snap.Habits)
	require.Empty(t, snap.CheckIns)
	require.Empty(t, snap.Goals)
	require.Empty(t, snap.GoalHabits)
	require.False(t, snap.SyncedAt.IsZero())
}
