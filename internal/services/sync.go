package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/piyushKumar-1/betterbe/internal/model"
	"github.com/piyushKumar-1/betterbe/internal/store"
)

// SyncService implements the full-snapshot push/pull protocol.
type SyncService struct {
	store store.Store
}

func NewSyncService(s store.Store) *SyncService {
	return &SyncService{store: s}
}

// Status reports the user's sync flag, last push time and row counts.
func (s *SyncService) Status(ctx context.Context, userID string) (*model.SyncStatus, error) {
	return s.store.Sync().Status(ctx, userID)
}

func (s *SyncService) Enable(ctx context.Context, userID string) error {
	return s.store.Users().SetCloudSync(ctx, userID, true)
}

func (s *SyncService) Disable(ctx context.Context, userID string) error {
	return s.store.Users().SetCloudSync(ctx, userID, false)
}

// Push ingests one device snapshot in a single transaction.
//
// Habits and goals are assigned fresh server ids on every push; the snapshot's
// local ids only resolve intra-snapshot references. Check-ins and goal-habit
// links whose parent is absent from the same snapshot are skipped without
// failing the push. A malformed date anywhere aborts the whole push and rolls
// back everything, including entities already staged.
func (s *SyncService) Push(ctx context.Context, userID string, snap *model.SyncSnapshot) (*model.SyncResult, error) {
	user, err := s.store.Users().Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.CloudSyncEnabled {
		return nil, fmt.Errorf("%w: cloud sync is not enabled", model.ErrValidation)
	}

	tx, err := s.store.Sync().Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	syncedAt := time.Now().UTC()
	result := &model.SyncResult{SyncedAt: syncedAt}

	habitIDs := make(map[string]string, len(snap.Habits))
	for i := range snap.Habits {
		sh := &snap.Habits[i]
		habitType := model.HabitType(sh.HabitType)
		if !habitType.Valid() {
			return nil, fmt.Errorf("%w: unknown habit type %q", model.ErrValidation, sh.HabitType)
		}
		direction := model.TargetDirection(sh.TargetDirection)
		if !direction.Valid() {
			return nil, fmt.Errorf("%w: unknown target direction %q", model.ErrValidation, sh.TargetDirection)
		}
		id := uuid.New().String()
		if err := tx.UpsertHabit(ctx, &model.Habit{
			HabitID:         id,
			UserID:          userID,
			Name:            sh.Name,
			Description:     sh.Description,
			HabitType:       habitType,
			Unit:            sh.Unit,
			TargetValue:     sh.TargetValue,
			TargetDirection: direction,
			Archived:        sh.Archived,
			CreatedAt:       sh.CreatedAt,
			UpdatedAt:       sh.UpdatedAt,
		}); err != nil {
			return nil, err
		}
		habitIDs[sh.LocalID] = id
		result.SyncedHabits++
	}

	for i := range snap.CheckIns {
		sc := &snap.CheckIns[i]
		habitID, ok := habitIDs[sc.HabitLocalID]
		if !ok {
			log.Debug().
				Str("userId", userID).
				Str("habitLocalId", sc.HabitLocalID).
				Msg("skipping check-in with unresolved habit reference")
			continue
		}
		effectiveDate, err := model.ParseDate(sc.EffectiveDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid effective date %q", model.ErrValidation, sc.EffectiveDate)
		}
		if err := tx.UpsertCheckIn(ctx, &model.CheckIn{
			CheckInID:     uuid.New().String(),
			HabitID:       habitID,
			UserID:        userID,
			Value:         sc.Value,
			Note:          sc.Note,
			EffectiveDate: effectiveDate,
			CreatedAt:     sc.CreatedAt,
		}); err != nil {
			return nil, err
		}
		result.SyncedCheckins++
	}

	goalIDs := make(map[string]string, len(snap.Goals))
	for i := range snap.Goals {
		sg := &snap.Goals[i]
		status := model.GoalStatus(sg.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: unknown goal status %q", model.ErrValidation, sg.Status)
		}
		deadline, err := model.ParseDate(sg.Deadline)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid deadline %q", model.ErrValidation, sg.Deadline)
		}
		id := uuid.New().String()
		if err := tx.UpsertGoal(ctx, &model.Goal{
			GoalID:      id,
			UserID:      userID,
			Name:        sg.Name,
			Description: sg.Description,
			Deadline:    deadline,
			Status:      status,
			CreatedAt:   sg.CreatedAt,
			UpdatedAt:   sg.UpdatedAt,
		}); err != nil {
			return nil, err
		}
		goalIDs[sg.LocalID] = id
		result.SyncedGoals++
	}

	for i := range snap.GoalHabits {
		link := &snap.GoalHabits[i]
		goalID, goalOK := goalIDs[link.GoalLocalID]
		habitID, habitOK := habitIDs[link.HabitLocalID]
		if !goalOK || !habitOK {
			log.Debug().
				Str("userId", userID).
				Str("goalLocalId", link.GoalLocalID).
				Str("habitLocalId", link.HabitLocalID).
				Msg("skipping goal-habit link with unresolved reference")
			continue
		}
		if err := tx.UpsertGoalHabit(ctx, &model.GoalHabit{
			GoalHabitID: uuid.New().String(),
			GoalID:      goalID,
			HabitID:     habitID,
			Weight:      link.Weight,
		}); err != nil {
			return nil, err
		}
	}

	if err := tx.TouchLastSync(ctx, userID, syncedAt); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	result.Success = true
	return result, nil
}

// Pull exports the user's full server state as one snapshot. Canonical ids
// are exported in the localId fields so a later push from the importing
// device references them consistently.
func (s *SyncService) Pull(ctx context.Context, userID string) (*model.SyncSnapshot, error) {
	user, err := s.store.Users().Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.CloudSyncEnabled {
		return nil, fmt.Errorf("%w: cloud sync is not enabled", model.ErrValidation)
	}

	export, err := s.store.Sync().Export(ctx, userID)
	if err != nil {
		return nil, err
	}

	snap := &model.SyncSnapshot{
		Habits:     make([]model.SyncHabit, 0, len(export.Habits)),
		CheckIns:   make([]model.SyncCheckIn, 0, len(export.CheckIns)),
		Goals:      make([]model.SyncGoal, 0, len(export.Goals)),
		GoalHabits: make([]model.SyncGoalHabit, 0, len(export.GoalHabits)),
		SyncedAt:   time.Now().UTC(),
	}
	for _, h := range export.Habits {
		snap.Habits = append(snap.Habits, model.SyncHabit{
			LocalID:         h.HabitID,
			Name:            h.Name,
			Description:     h.Description,
			HabitType:       string(h.HabitType),
			Unit:            h.Unit,
			TargetValue:     h.TargetValue,
			TargetDirection: string(h.TargetDirection),
			Archived:        h.Archived,
			CreatedAt:       h.CreatedAt,
			UpdatedAt:       h.UpdatedAt,
		})
	}
	for _, c := range export.CheckIns {
		snap.CheckIns = append(snap.CheckIns, model.SyncCheckIn{
			LocalID:       c.CheckInID,
			HabitLocalID:  c.HabitID,
			Value:         c.Value,
			Note:          c.Note,
			EffectiveDate: c.EffectiveDate.String(),
			CreatedAt:     c.CreatedAt,
		})
	}
	for _, g := range export.Goals {
		snap.Goals = append(snap.Goals, model.SyncGoal{
			LocalID:     g.GoalID,
			Name:        g.Name,
			Description: g.Description,
			Deadline:    g.Deadline.String(),
			Status:      string(g.Status),
			CreatedAt:   g.CreatedAt,
			UpdatedAt:   g.UpdatedAt,
		})
	}
	for _, gh := range export.GoalHabits {
		snap.GoalHabits = append(snap.GoalHabits, model.SyncGoalHabit{
			GoalLocalID:  gh.GoalID,
			HabitLocalID: gh.HabitID,
			Weight:       gh.Weight,
		})
	}
	return snap, nil
}
