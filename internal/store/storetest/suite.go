// Package storetest holds a driver-agnostic compliance suite for
// store.Store implementations. Each driver package runs it against a
// fresh database.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/piyushKumar-1/betterbe/internal/model"
	"github.com/piyushKumar-1/betterbe/internal/store"
)

// Factory returns a store backed by a fresh, empty database.
type Factory func(t *testing.T) store.Store

// Run executes the full compliance suite against the given factory.
func Run(t *testing.T, factory Factory) {
	t.Run("Users", func(t *testing.T) { testUsers(t, factory(t)) })
	t.Run("Habits", func(t *testing.T) { testHabits(t, factory(t)) })
	t.Run("CheckIns", func(t *testing.T) { testCheckIns(t, factory(t)) })
	t.Run("Goals", func(t *testing.T) { testGoals(t, factory(t)) })
	t.Run("SyncTx", func(t *testing.T) { testSyncTx(t, factory(t)) })
	t.Run("SyncExport", func(t *testing.T) { testSyncExport(t, factory(t)) })
	t.Run("SyncStatus", func(t *testing.T) { testSyncStatus(t, factory(t)) })
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }

func mustUser(t *testing.T, s store.Store) *model.User {
	t.Helper()
	u, err := s.Users().Create(context.Background(), &model.User{
		UserID: uuid.New().String(),
		Email:  uuid.New().String() + "@example.com",
		Name:   strPtr("Test User"),
	})
	require.NoError(t, err)
	return u
}

func mustHabit(t *testing.T, s store.Store, userID, name string) *model.Habit {
	t.Helper()
	h, err := s.Habits().Create(context.Background(), &model.Habit{
		UserID:          userID,
		Name:            name,
		HabitType:       model.HabitTypeNumeric,
		Unit:            strPtr("minutes"),
		TargetValue:     intPtr(30),
		TargetDirection: model.TargetAtLeast,
	})
	require.NoError(t, err)
	return h
}

func testUsers(t *testing.T, s store.Store) {
	ctx := context.Background()

	u := mustUser(t, s)
	require.NotZero(t, u.CreatedAt)
	require.False(t, u.CloudSyncEnabled)
	require.Nil(t, u.LastSyncedAt)

	got, err := s.Users().Get(ctx, u.UserID)
	require.NoError(t, err)
	require.Equal(t, u.Email, got.Email)
	require.Equal(t, "Test User", *got.Name)

	updated, err := s.Users().Update(ctx, u.UserID, model.UpdateUserRequest{
		Name:             strPtr("Renamed"),
		CloudSyncEnabled: boolPtr(true),
	})
	require.NoError(t, err)
	require.Equal(t, "Renamed", *updated.Name)
	require.True(t, updated.CloudSyncEnabled)

	// Nil fields leave existing values untouched.
	updated, err = s.Users().Update(ctx, u.UserID, model.UpdateUserRequest{})
	require.NoError(t, err)
	require.Equal(t, "Renamed", *updated.Name)
	require.True(t, updated.CloudSyncEnabled)

	require.NoError(t, s.Users().SetCloudSync(ctx, u.UserID, false))
	got, err = s.Users().Get(ctx, u.UserID)
	require.NoError(t, err)
	require.False(t, got.CloudSyncEnabled)

	_, err = s.Users().Get(ctx, "missing")
	require.ErrorIs(t, err, model.ErrNotFound)

	err = s.Users().SetCloudSync(ctx, "missing", true)
	require.ErrorIs(t, err, model.ErrNotFound)
}

func testHabits(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := mustUser(t, s)

	h := mustHabit(t, s, u.UserID, "Read")
	require.NotEmpty(t, h.HabitID)
	require.False(t, h.Archived)

	got, err := s.Habits().GetByID(ctx, u.UserID, h.HabitID)
	require.NoError(t, err)
	require.Equal(t, "Read", got.Name)
	require.Equal(t, model.HabitTypeNumeric, got.HabitType)
	require.Equal(t, 30, *got.TargetValue)

	// Habits are scoped per user.
	other := mustUser(t, s)
	_, err = s.Habits().GetByID(ctx, other.UserID, h.HabitID)
	require.ErrorIs(t, err, model.ErrNotFound)

	updated, err := s.Habits().Update(ctx, u.UserID, h.HabitID, model.UpdateHabitRequest{
		Name:        strPtr("Read books"),
		TargetValue: intPtr(45),
	})
	require.NoError(t, err)
	require.Equal(t, "Read books", updated.Name)
	require.Equal(t, 45, *updated.TargetValue)
	require.Equal(t, "minutes", *updated.Unit)

	// Archived habits fall out of List.
	_, err = s.Habits().Update(ctx, u.UserID, h.HabitID, model.UpdateHabitRequest{Archived: boolPtr(true)})
	require.NoError(t, err)
	list, err := s.Habits().List(ctx, u.UserID)
	require.NoError(t, err)
	require.Empty(t, list)

	require.NoError(t, s.Habits().Delete(ctx, u.UserID, h.HabitID))
	require.ErrorIs(t, s.Habits().Delete(ctx, u.UserID, h.HabitID), model.ErrNotFound)
}

func testCheckIns(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := mustUser(t, s)
	h := mustHabit(t, s, u.UserID, "Run")
	day := model.NewDate(2026, 3, 14)

	first, err := s.CheckIns().Upsert(ctx, &model.CheckIn{
		HabitID:       h.HabitID,
		UserID:        u.UserID,
		Value:         20,
		Note:          strPtr("easy pace"),
		EffectiveDate: day,
	})
	require.NoError(t, err)
	require.NotEmpty(t, first.CheckInID)

	// Same habit and day: value is replaced, a nil note keeps the old one.
	second, err := s.CheckIns().Upsert(ctx, &model.CheckIn{
		HabitID:       h.HabitID,
		UserID:        u.UserID,
		Value:         35,
		EffectiveDate: day,
	})
	require.NoError(t, err)
	require.Equal(t, first.CheckInID, second.CheckInID)
	require.Equal(t, 35, second.Value)
	require.Equal(t, "easy pace", *second.Note)

	third, err := s.CheckIns().Upsert(ctx, &model.CheckIn{
		HabitID:       h.HabitID,
		UserID:        u.UserID,
		Value:         40,
		Note:          strPtr("intervals"),
		EffectiveDate: day,
	})
	require.NoError(t, err)
	require.Equal(t, "intervals", *third.Note)

	otherDay := model.NewDate(2026, 3, 15)
	_, err = s.CheckIns().Upsert(ctx, &model.CheckIn{
		HabitID:       h.HabitID,
		UserID:        u.UserID,
		Value:         10,
		EffectiveDate: otherDay,
	})
	require.NoError(t, err)

	list, err := s.CheckIns().List(ctx, model.ListCheckInsRequest{UserID: u.UserID})
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, otherDay.String(), list[0].EffectiveDate.String())

	forDay, err := s.CheckIns().ListForDate(ctx, u.UserID, day)
	require.NoError(t, err)
	require.Len(t, forDay, 1)
	require.Equal(t, 40, forDay[0].Value)

	ranged, err := s.CheckIns().List(ctx, model.ListCheckInsRequest{
		UserID:    u.UserID,
		HabitID:   &h.HabitID,
		StartDate: &day,
		EndDate:   &day,
	})
	require.NoError(t, err)
	require.Len(t, ranged, 1)

	updated, err := s.CheckIns().Update(ctx, u.UserID, third.CheckInID, model.UpdateCheckInRequest{Value: intPtr(50)})
	require.NoError(t, err)
	require.Equal(t, 50, updated.Value)
	require.Equal(t, "intervals", *updated.Note)

	require.NoError(t, s.CheckIns().Delete(ctx, u.UserID, third.CheckInID))
	require.ErrorIs(t, s.CheckIns().Delete(ctx, u.UserID, third.CheckInID), model.ErrNotFound)

	// Deleting the habit cascades to its remaining check-ins.
	require.NoError(t, s.Habits().Delete(ctx, u.UserID, h.HabitID))
	list, err = s.CheckIns().List(ctx, model.ListCheckInsRequest{UserID: u.UserID})
	require.NoError(t, err)
	require.Empty(t, list)
}

func testGoals(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := mustUser(t, s)
	h1 := mustHabit(t, s, u.UserID, "Run")
	h2 := mustHabit(t, s, u.UserID, "Stretch")

	g, err := s.Goals().Create(ctx, &model.Goal{
		UserID:   u.UserID,
		Name:     "Spring 10k",
		Deadline: model.NewDate(2026, 5, 1),
	}, []string{h1.HabitID})
	require.NoError(t, err)
	require.NotEmpty(t, g.GoalID)
	require.Equal(t, model.GoalActive, g.Status)

	got, err := s.Goals().GetByID(ctx, u.UserID, g.GoalID)
	require.NoError(t, err)
	require.Equal(t, "Spring 10k", got.Name)
	require.Equal(t, "2026-05-01", got.Deadline.String())

	links, err := s.Goals().ListLinks(ctx, u.UserID, g.GoalID)
	require.NoError(t, err)
	require.Len(t, links, 1)
	require.Equal(t, h1.HabitID, links[0].HabitID)
	require.Equal(t, 1.0, links[0].Weight)

	link, err := s.Goals().LinkHabit(ctx, &model.GoalHabit{GoalID: g.GoalID, HabitID: h2.HabitID, Weight: 0.5})
	require.NoError(t, err)
	require.Equal(t, 0.5, link.Weight)

	// Relinking the same pair overwrites the weight in place.
	relink, err := s.Goals().LinkHabit(ctx, &model.GoalHabit{GoalID: g.GoalID, HabitID: h2.HabitID, Weight: 2.0})
	require.NoError(t, err)
	require.Equal(t, link.GoalHabitID, relink.GoalHabitID)
	require.Equal(t, 2.0, relink.Weight)

	newDeadline := model.NewDate(2026, 6, 1)
	achieved := model.GoalAchieved
	updated, err := s.Goals().Update(ctx, u.UserID, g.GoalID, model.UpdateGoalRequest{
		Deadline: &newDeadline,
		Status:   &achieved,
	})
	require.NoError(t, err)
	require.Equal(t, "2026-06-01", updated.Deadline.String())
	require.Equal(t, model.GoalAchieved, updated.Status)
	require.Equal(t, "Spring 10k", updated.Name)

	require.NoError(t, s.Goals().UnlinkHabit(ctx, u.UserID, g.GoalID, h2.HabitID))
	links, err = s.Goals().ListLinks(ctx, u.UserID, g.GoalID)
	require.NoError(t, err)
	require.Len(t, links, 1)

	list, err := s.Goals().List(ctx, u.UserID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, s.Goals().Delete(ctx, u.UserID, g.GoalID))
	_, err = s.Goals().GetByID(ctx, u.UserID, g.GoalID)
	require.ErrorIs(t, err, model.ErrNotFound)
}

func testSyncTx(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := mustUser(t, s)
	now := time.Now().UTC()

	habitID := uuid.New().String()
	goalID := uuid.New().String()

	tx, err := s.Sync().Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.UpsertHabit(ctx, &model.Habit{
		HabitID:         habitID,
		UserID:          u.UserID,
		Name:            "Meditate",
		HabitType:       model.HabitTypeBinary,
		TargetDirection: model.TargetAtLeast,
		CreatedAt:       now,
		UpdatedAt:       now,
	}))
	require.NoError(t, tx.UpsertCheckIn(ctx, &model.CheckIn{
		CheckInID:     uuid.New().String(),
		HabitID:       habitID,
		UserID:        u.UserID,
		Value:         1,
		EffectiveDate: model.NewDate(2026, 1, 2),
		CreatedAt:     now,
	}))
	require.NoError(t, tx.UpsertGoal(ctx, &model.Goal{
		GoalID:    goalID,
		UserID:    u.UserID,
		Name:      "Calm mind",
		Deadline:  model.NewDate(2026, 12, 31),
		Status:    model.GoalActive,
		CreatedAt: now,
		UpdatedAt: now,
	}))
	require.NoError(t, tx.UpsertGoalHabit(ctx, &model.GoalHabit{
		GoalHabitID: uuid.New().String(),
		GoalID:      goalID,
		HabitID:     habitID,
		Weight:      1.0,
	}))
	require.NoError(t, tx.TouchLastSync(ctx, u.UserID, now))
	require.NoError(t, tx.Commit())

	got, err := s.Habits().GetByID(ctx, u.UserID, habitID)
	require.NoError(t, err)
	require.Equal(t, "Meditate", got.Name)

	user, err := s.Users().Get(ctx, u.UserID)
	require.NoError(t, err)
	require.NotNil(t, user.LastSyncedAt)

	// A rolled back push leaves no trace.
	tx, err = s.Sync().Begin(ctx)
	require.NoError(t, err)
	ghostID := uuid.New().String()
	require.NoError(t, tx.UpsertHabit(ctx, &model.Habit{
		HabitID:         ghostID,
		UserID:          u.UserID,
		Name:            "Ghost",
		HabitType:       model.HabitTypeBinary,
		TargetDirection: model.TargetAtLeast,
		CreatedAt:       now,
		UpdatedAt:       now,
	}))
	require.NoError(t, tx.Rollback())
	_, err = s.Habits().GetByID(ctx, u.UserID, ghostID)
	require.ErrorIs(t, err, model.ErrNotFound)
}

func testSyncExport(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := mustUser(t, s)
	h := mustHabit(t, s, u.UserID, "Write")
	day := model.NewDate(2026, 2, 2)

	_, err := s.CheckIns().Upsert(ctx, &model.CheckIn{
		HabitID:       h.HabitID,
		UserID:        u.UserID,
		Value:         500,
		EffectiveDate: day,
	})
	require.NoError(t, err)

	g, err := s.Goals().Create(ctx, &model.Goal{
		UserID:   u.UserID,
		Name:     "Draft novel",
		Deadline: model.NewDate(2026, 11, 30),
	}, []string{h.HabitID})
	require.NoError(t, err)

	// Another user's rows never leak into the export.
	other := mustUser(t, s)
	mustHabit(t, s, other.UserID, "Other")

	export, err := s.Sync().Export(ctx, u.UserID)
	require.NoError(t, err)
	require.Len(t, export.Habits, 1)
	require.Len(t, export.CheckIns, 1)
	require.Len(t, export.Goals, 1)
	require.Len(t, export.GoalHabits, 1)
	require.Equal(t, h.HabitID, export.Habits[0].HabitID)
	require.Equal(t, day.String(), export.CheckIns[0].EffectiveDate.String())
	require.Equal(t, g.GoalID, export.GoalHabits[0].GoalID)

	empty, err := s.Sync().Export(ctx, other.UserID)
	require.NoError(t, err)
	require.Len(t, empty.Habits, 1)
	require.Empty(t, empty.CheckIns)
	require.Empty(t, empty.Goals)
	require.Empty(t, empty.GoalHabits)
}

func testSyncStatus(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := mustUser(t, s)

	st, err := s.Sync().Status(ctx, u.UserID)
	require.NoError(t, err)
	require.False(t, st.Enabled)
	require.Nil(t, st.LastSync)
	require.Zero(t, st.HabitsCount)

	require.NoError(t, s.Users().SetCloudSync(ctx, u.UserID, true))
	h := mustHabit(t, s, u.UserID, "Sleep early")
	_, err = s.CheckIns().Upsert(ctx, &model.CheckIn{
		HabitID:       h.HabitID,
		UserID:        u.UserID,
		Value:         1,
		EffectiveDate: model.NewDate(2026, 4, 4),
	})
	require.NoError(t, err)

	st, err = s.Sync().Status(ctx, u.UserID)
	require.NoError(t, err)
	require.True(t, st.Enabled)
	require.Equal(t, int64(1), st.HabitsCount)
	require.Equal(t, int64(1), st.CheckinsCount)
	require.Equal(t, int64(0), st.GoalsCount)

	_, err = s.Sync().Status(ctx, "missing")
	require.ErrorIs(t, err, model.ErrNotFound)
}
