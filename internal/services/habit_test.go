package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/piyushKumar-1/betterbe/internal/model"
)

func TestCreateHabitValidation(t *testing.T) {
	s := newTestStore(t)
	u := newSyncedUser(t, s)
	svc := NewHabitService(s)
	ctx := context.Background()

	_, err := svc.CreateHabit(ctx, &model.Habit{UserID: u.UserID, HabitType: model.HabitTypeBinary})
	require.ErrorIs(t, err, model.ErrValidation)

	_, err = svc.CreateHabit(ctx, &model.Habit{UserID: u.UserID, Name: "Run", HabitType: "streak"})
	require.ErrorIs(t, err, model.ErrValidation)

	// Direction defaults to at_least when omitted.
	h, err := svc.CreateHabit(ctx, &model.Habit{UserID: u.UserID, Name: "Run", HabitType: model.HabitTypeNumeric})
	require.NoError(t, err)
	require.Equal(t, model.TargetAtLeast, h.TargetDirection)
}

func TestUpsertCheckInRequiresOwnedHabit(t *testing.T) {
	s := newTestStore(t)
	owner := newSyncedUser(t, s)
	stranger := newSyncedUser(t, s)
	habits := NewHabitService(s)
	checkIns := NewCheckInService(s)
	ctx := context.Background()

	h, err := habits.CreateHabit(ctx, &model.Habit{UserID: owner.UserID, Name: "Read", HabitType: model.HabitTypeBinary})
	require.NoError(t, err)

	_, err = checkIns.UpsertCheckIn(ctx, &model.CheckIn{
		UserID:        stranger.UserID,
		HabitID:       h.HabitID,
		Value:         1,
		EffectiveDate: model.NewDate(2026, 3, 1),
	})
	require.ErrorIs(t, err, model.ErrNotFound)

	got, err := checkIns.UpsertCheckIn(ctx, &model.CheckIn{
		UserID:        owner.UserID,
		HabitID:       h.HabitID,
		Value:         1,
		EffectiveDate: model.NewDate(2026, 3, 1),
	})
	require.NoError(t, err)
	require.NotEmpty(t, got.CheckInID)

	_, err = checkIns.UpsertCheckIn(ctx, &model.CheckIn{UserID: owner.UserID, HabitID: h.HabitID, Value: 1})
	require.ErrorIs(t, err, model.ErrValidation)
}

func TestGoalLinkValidation(t *testing.T) {
	s := newTestStore(t)
	u := newSyncedUser(t, s)
	habits := NewHabitService(s)
	goals := NewGoalService(s)
	ctx := context.Background()

	h, err := habits.CreateHabit(ctx, &model.Habit{UserID: u.UserID, Name: "Run", HabitType: model.HabitTypeNumeric})
	require.NoError(t, err)

	_, err = goals.CreateGoal(ctx, &model.Goal{UserID: u.UserID, Deadline: model.NewDate(2026, 5, 1)}, nil)
	require.ErrorIs(t, err, model.ErrValidation)

	_, err = goals.CreateGoal(ctx, &model.Goal{UserID: u.UserID, Name: "10k"}, nil)
	require.ErrorIs(t, err, model.ErrValidation)

	_, err = goals.CreateGoal(ctx, &model.Goal{UserID: u.UserID, Name: "10k", Deadline: model.NewDate(2026, 5, 1)}, []string{"missing"})
	require.ErrorIs(t, err, model.ErrNotFound)

	g, err := goals.CreateGoal(ctx, &model.Goal{UserID: u.UserID, Name: "10k", Deadline: model.NewDate(2026, 5, 1)}, []string{h.HabitID})
	require.NoError(t, err)

	_, err = goals.LinkHabit(ctx, u.UserID, g.GoalID, h.HabitID, 0)
	require.ErrorIs(t, err, model.ErrValidation)

	link, err := goals.LinkHabit(ctx, u.UserID, g.GoalID, h.HabitID, 2.5)
	require.NoError(t, err)
	require.Equal(t, 2.5, link.Weight)

	status := model.GoalStatus("paused")
	_, err = goals.UpdateGoal(ctx, u.UserID, g.GoalID, model.UpdateGoalRequest{Status: &status})
	require.ErrorIs(t, err, model.ErrValidation)
}
