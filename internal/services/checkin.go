package services

import (
	"context"
	"fmt"

	"github.com/piyushKumar-1/betterbe/internal/model"
	"github.com/piyushKumar-1/betterbe/internal/store"
)

// CheckInService orchestrates check-in use cases.
type CheckInService struct {
	store store.Store
}

func NewCheckInService(s store.Store) *CheckInService {
	return &CheckInService{store: s}
}

// UpsertCheckIn records a value for one habit and day. A second record for
// the same habit and day overwrites the first.
func (s *CheckInService) UpsertCheckIn(ctx context.Context, c *model.CheckIn) (*model.CheckIn, error) {
	if c.EffectiveDate.IsZero() {
		return nil, fmt.Errorf("%w: effective date is required", model.ErrValidation)
	}
	// The habit must exist and belong to the caller.
	if _, err := s.store.Habits().GetByID(ctx, c.UserID, c.HabitID); err != nil {
		return nil, err
	}
	return s.store.CheckIns().Upsert(ctx, c)
}

func (s *CheckInService) ListCheckIns(ctx context.Context, req model.ListCheckInsRequest) ([]*model.CheckIn, error) {
	return s.store.CheckIns().List(ctx, req)
}

func (s *CheckInService) ListCheckInsForDate(ctx context.Context, userID string, date model.Date) ([]*model.CheckIn, error) {
	return s.store.CheckIns().ListForDate(ctx, userID, date)
}

func (s *CheckInService) UpdateCheckIn(ctx context.Context, userID, checkInID string, req model.UpdateCheckInRequest) (*model.CheckIn, error) {
	return s.store.CheckIns().Update(ctx, userID, checkInID, req)
}

func (s *CheckInService) DeleteCheckIn(ctx context.Context, userID, checkInID string) error {
	return s.store.CheckIns().Delete(ctx, userID, checkInID)
}
