package services

import (
	"context"
	"fmt"

	"github.com/piyushKumar-1/betterbe/internal/model"
	"github.com/piyushKumar-1/betterbe/internal/store"
)

// GoalService orchestrates goal use cases.
type GoalService struct {
	store store.Store
}

func NewGoalService(s store.Store) *GoalService {
	return &GoalService{store: s}
}

// CreateGoal inserts a goal and links the given habits with weight 1.0.
func (s *GoalService) CreateGoal(ctx context.Context, g *model.Goal, habitIDs []string) (*model.Goal, error) {
	if g.Name == "" {
		return nil, fmt.Errorf("%w: goal name is required", model.ErrValidation)
	}
	if g.Deadline.IsZero() {
		return nil, fmt.Errorf("%w: goal deadline is required", model.ErrValidation)
	}
	for _, habitID := range habitIDs {
		if _, err := s.store.Habits().GetByID(ctx, g.UserID, habitID); err != nil {
			return nil, err
		}
	}
	return s.store.Goals().Create(ctx, g, habitIDs)
}

func (s *GoalService) GetGoal(ctx context.Context, userID, goalID string) (*model.Goal, error) {
	return s.store.Goals().GetByID(ctx, userID, goalID)
}

func (s *GoalService) ListGoals(ctx context.Context, userID string) ([]*model.Goal, error) {
	return s.store.Goals().List(ctx, userID)
}

func (s *GoalService) UpdateGoal(ctx context.Context, userID, goalID string, req model.UpdateGoalRequest) (*model.Goal, error) {
	if req.Name != nil && *req.Name == "" {
		return nil, fmt.Errorf("%w: goal name cannot be empty", model.ErrValidation)
	}
	if req.Status != nil && !req.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown goal status %q", model.ErrValidation, *req.Status)
	}
	return s.store.Goals().Update(ctx, userID, goalID, req)
}

func (s *GoalService) DeleteGoal(ctx context.Context, userID, goalID string) error {
	return s.store.Goals().Delete(ctx, userID, goalID)
}

func (s *GoalService) ListGoalHabits(ctx context.Context, userID, goalID string) ([]*model.GoalHabit, error) {
	if _, err := s.store.Goals().GetByID(ctx, userID, goalID); err != nil {
		return nil, err
	}
	return s.store.Goals().ListLinks(ctx, userID, goalID)
}

// LinkHabit attaches a habit to a goal. Linking an already linked habit
// overwrites the weight.
func (s *GoalService) LinkHabit(ctx context.Context, userID, goalID, habitID string, weight float64) (*model.GoalHabit, error) {
	if weight <= 0 {
		return nil, fmt.Errorf("%w: link weight must be positive", model.ErrValidation)
	}
	if _, err := s.store.Goals().GetByID(ctx, userID, goalID); err != nil {
		return nil, err
	}
	if _, err := s.store.Habits().GetByID(ctx, userID, habitID); err != nil {
		return nil, err
	}
	return s.store.Goals().LinkHabit(ctx, &model.GoalHabit{GoalID: goalID, HabitID: habitID, Weight: weight})
}

func (s *GoalService) UnlinkHabit(ctx context.Context, userID, goalID, habitID string) error {
	if _, err := s.store.Goals().GetByID(ctx, userID, goalID); err != nil {
		return err
	}
	return s.store.Goals().UnlinkHabit(ctx, userID, goalID, habitID)
}
