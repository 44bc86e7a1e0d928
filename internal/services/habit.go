package services

import (
	"context"
	"fmt"

	"github.com/piyushKumar-1/betterbe/internal/model"
	"github.com/piyushKumar-1/betterbe/internal/store"
)

// HabitService orchestrates habit use cases.
type HabitService struct {
	store store.Store
}

func NewHabitService(s store.Store) *HabitService {
	return &HabitService{store: s}
}

func (s *HabitService) CreateHabit(ctx context.Context, h *model.Habit) (*model.Habit, error) {
	if h.Name == "" {
		return nil, fmt.Errorf("%w: habit name is required", model.ErrValidation)
	}
	if !h.HabitType.Valid() {
		return nil, fmt.Errorf("%w: unknown habit type %q", model.ErrValidation, h.HabitType)
	}
	if h.TargetDirection == "" {
		h.TargetDirection = model.TargetAtLeast
	}
	if !h.TargetDirection.Valid() {
		return nil, fmt.Errorf("%w: unknown target direction %q", model.ErrValidation, h.TargetDirection)
	}
	return s.store.Habits().Create(ctx, h)
}

func (s *HabitService) GetHabit(ctx context.Context, userID, habitID string) (*model.Habit, error) {
	return s.store.Habits().GetByID(ctx, userID, habitID)
}

func (s *HabitService) ListHabits(ctx context.Context, userID string) ([]*model.Habit, error) {
	return s.store.Habits().List(ctx, userID)
}

func (s *HabitService) UpdateHabit(ctx context.Context, userID, habitID string, req model.UpdateHabitRequest) (*model.Habit, error) {
	if req.Name != nil && *req.Name == "" {
		return nil, fmt.Errorf("%w: habit name cannot be empty", model.ErrValidation)
	}
	if req.TargetDirection != nil && !req.TargetDirection.Valid() {
		return nil, fmt.Errorf("%w: unknown target direction %q", model.ErrValidation, *req.TargetDirection)
	}
	return s.store.Habits().Update(ctx, userID, habitID, req)
}

func (s *HabitService) DeleteHabit(ctx context.Context, userID, habitID string) error {
	return s.store.Habits().Delete(ctx, userID, habitID)
}

// ArchiveHabit hides the habit from lists without deleting its history.
func (s *HabitService) ArchiveHabit(ctx context.Context, userID, habitID string, archived bool) (*model.Habit, error) {
	return s.store.Habits().Update(ctx, userID, habitID, model.UpdateHabitRequest{Archived: &archived})
}
