// Package postgres implements store.Store on PostgreSQL via the pgx
// stdlib driver. It is the canonical production store.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/piyushKumar-1/betterbe/internal/model"
	"github.com/piyushKumar-1/betterbe/internal/store"
)

// Open connects with the given DSN and verifies connectivity.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// EnsureSchema applies the embedded DDL. Statements are idempotent; in
// production the migrations/ directory is the source of truth and this
// is a no-op.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range ddlStatements() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// NewWithDB constructs a postgres-backed store from an existing pool.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Users() store.Users       { return &users{db: s.db} }
func (s *pgStore) Habits() store.Habits     { return &habits{db: s.db} }
func (s *pgStore) CheckIns() store.CheckIns { return &checkIns{db: s.db} }
func (s *pgStore) Goals() store.Goals       { return &goals{db: s.db} }
func (s *pgStore) Sync() store.Sync         { return &syncOps{db: s.db} }

// HealthPing implements health.HealthPinger.
func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func mapNoRows(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return model.ErrNotFound
	}
	return err
}

func nullDate(d *model.Date) interface{} {
	if d == nil {
		return nil
	}
	return d.String()
}

// --- Users ---

type users struct{ db *sql.DB }

func (u *users) Create(ctx context.Context, m *model.User) (*model.User, error) {
	now := time.Now().UTC()
	_, err := u.db.ExecContext(ctx, `
        INSERT INTO users (user_id, email, name, avatar_url, cloud_sync_enabled, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
    `, m.UserID, m.Email, m.Name, m.AvatarURL, m.CloudSyncEnabled, now, now)
	if err != nil {
		return nil, err
	}
	out := *m
	out.CreatedAt = now
	out.UpdatedAt = now
	return &out, nil
}

func (u *users) Get(ctx context.Context, userID string) (*model.User, error) {
	var out model.User
	row := u.db.QueryRowContext(ctx, `
        SELECT user_id, email, name, avatar_url, cloud_sync_enabled, last_synced_at, created_at, updated_at
        FROM users WHERE user_id=$1
    `, userID)
	if err := row.Scan(&out.UserID, &out.Email, &out.Name, &out.AvatarURL, &out.CloudSyncEnabled, &out.LastSyncedAt, &out.CreatedAt, &out.UpdatedAt); err != nil {
		return nil, mapNoRows(err)
	}
	return &out, nil
}

func (u *users) Update(ctx context.Context, userID string, req model.UpdateUserRequest) (*model.User, error) {
	res, err := u.db.ExecContext(ctx, `
        UPDATE users SET
            name = COALESCE($1, name),
            cloud_sync_enabled = COALESCE($2, cloud_sync_enabled),
            updated_at = $3
        WHERE user_id=$4
    `, req.Name, req.CloudSyncEnabled, time.Now().UTC(), userID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return u.Get(ctx, userID)
}

func (u *users) SetCloudSync(ctx context.Context, userID string, enabled bool) error {
	res, err := u.db.ExecContext(ctx, `
        UPDATE users SET cloud_sync_enabled=$1, updated_at=$2 WHERE user_id=$3
    `, enabled, time.Now().UTC(), userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

// --- Habits ---

type habits struct{ db *sql.DB }

const habitCols = `habit_id, user_id, name, description, habit_type, unit, target_value, target_direction, archived, created_at, updated_at`

func scanHabit(scan func(dest ...interface{}) error) (*model.Habit, error) {
	var h model.Habit
	if err := scan(&h.HabitID, &h.UserID, &h.Name, &h.Description, &h.HabitType, &h.Unit, &h.TargetValue, &h.TargetDirection, &h.Archived, &h.CreatedAt, &h.UpdatedAt); err != nil {
		return nil, mapNoRows(err)
	}
	return &h, nil
}

func (h *habits) Create(ctx context.Context, m *model.Habit) (*model.Habit, error) {
	now := time.Now().UTC()
	id := uuid.New().String()
	_, err := h.db.ExecContext(ctx, `
        INSERT INTO habits (`+habitCols+`)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
    `, id, m.UserID, m.Name, m.Description, string(m.HabitType), m.Unit, m.TargetValue, string(m.TargetDirection), m.Archived, now, now)
	if err != nil {
		return nil, err
	}
	out := *m
	out.HabitID = id
	out.CreatedAt = now
	out.UpdatedAt = now
	return &out, nil
}

func (h *habits) GetByID(ctx context.Context, userID, habitID string) (*model.Habit, error) {
	row := h.db.QueryRowContext(ctx, `
        SELECT `+habitCols+` FROM habits WHERE habit_id=$1 AND user_id=$2
    `, habitID, userID)
	return scanHabit(row.Scan)
}

func (h *habits) List(ctx context.Context, userID string) ([]*model.Habit, error) {
	rows, err := h.db.QueryContext(ctx, `
        SELECT `+habitCols+` FROM habits
        WHERE user_id=$1 AND archived=FALSE
        ORDER BY created_at DESC
    `, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.Habit
	for rows.Next() {
		m, err := scanHabit(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (h *habits) Update(ctx context.Context, userID, habitID string, req model.UpdateHabitRequest) (*model.Habit, error) {
	var dir interface{}
	if req.TargetDirection != nil {
		dir = string(*req.TargetDirection)
	}
	res, err := h.db.ExecContext(ctx, `
        UPDATE habits SET
            name = COALESCE($1, name),
            description = COALESCE($2, description),
            unit = COALESCE($3, unit),
            target_value = COALESCE($4, target_value),
            target_direction = COALESCE($5, target_direction),
            archived = COALESCE($6, archived),
            updated_at = $7
        WHERE habit_id=$8 AND user_id=$9
    `, req.Name, req.Description, req.Unit, req.TargetValue, dir, req.Archived, time.Now().UTC(), habitID, userID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return h.GetByID(ctx, userID, habitID)
}

func (h *habits) Delete(ctx context.Context, userID, habitID string) error {
	res, err := h.db.ExecContext(ctx, `DELETE FROM habits WHERE habit_id=$1 AND user_id=$2`, habitID, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

// --- CheckIns ---

type checkIns struct{ db *sql.DB }

const checkInCols = `check_in_id, habit_id, user_id, value, note, effective_date, created_at`

func scanCheckIn(scan func(dest ...interface{}) error) (*model.CheckIn, error) {
	var c model.CheckIn
	var date time.Time
	if err := scan(&c.CheckInID, &c.HabitID, &c.UserID, &c.Value, &c.Note, &date, &c.CreatedAt); err != nil {
		return nil, mapNoRows(err)
	}
	c.EffectiveDate = model.DateOf(date)
	return &c, nil
}

func (c *checkIns) Upsert(ctx context.Context, m *model.CheckIn) (*model.CheckIn, error) {
	created := m.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	row := c.db.QueryRowContext(ctx, `
        INSERT INTO check_ins (`+checkInCols+`)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        ON CONFLICT (habit_id, effective_date) DO UPDATE SET
            value = EXCLUDED.value,
            note = COALESCE(EXCLUDED.note, check_ins.note)
        RETURNING `+checkInCols+`
    `, uuid.New().String(), m.HabitID, m.UserID, m.Value, m.Note, m.EffectiveDate.String(), created)
	return scanCheckIn(row.Scan)
}

func (c *checkIns) List(ctx context.Context, req model.ListCheckInsRequest) ([]*model.CheckIn, error) {
	query := `SELECT ` + checkInCols + ` FROM check_ins WHERE user_id=$1`
	args := []interface{}{req.UserID}
	if req.HabitID != nil {
		args = append(args, *req.HabitID)
		query += fmt.Sprintf(" AND habit_id=$%d", len(args))
	}
	if req.StartDate != nil {
		args = append(args, req.StartDate.String())
		query += fmt.Sprintf(" AND effective_date>=$%d", len(args))
	}
	if req.EndDate != nil {
		args = append(args, req.EndDate.String())
		query += fmt.Sprintf(" AND effective_date<=$%d", len(args))
	}
	query += " ORDER BY effective_date DESC, created_at DESC"
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.CheckIn
	for rows.Next() {
		m, err := scanCheckIn(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (c *checkIns) ListForDate(ctx context.Context, userID string, date model.Date) ([]*model.CheckIn, error) {
	d := date
	return c.List(ctx, model.ListCheckInsRequest{UserID: userID, StartDate: &d, EndDate: &d})
}

func (c *checkIns) Update(ctx context.Context, userID, checkInID string, req model.UpdateCheckInRequest) (*model.CheckIn, error) {
	row := c.db.QueryRowContext(ctx, `
        UPDATE check_ins SET
            value = COALESCE($1, value),
            note = COALESCE($2, note)
        WHERE check_in_id=$3 AND user_id=$4
        RETURNING `+checkInCols+`
    `, req.Value, req.Note, checkInID, userID)
	return scanCheckIn(row.Scan)
}

func (c *checkIns) Delete(ctx context.Context, userID, checkInID string) error {
	res, err := c.db.ExecContext(ctx, `DELETE FROM check_ins WHERE check_in_id=$1 AND user_id=$2`, checkInID, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

// --- Goals ---

type goals struct{ db *sql.DB }

const goalCols = `goal_id, user_id, name, description, deadline, status, is_shared, created_at, updated_at`

func scanGoal(scan func(dest ...interface{}) error) (*model.Goal, error) {
	var g model.Goal
	var deadline time.Time
	if err := scan(&g.GoalID, &g.UserID, &g.Name, &g.Description, &deadline, &g.Status, &g.IsShared, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return nil, mapNoRows(err)
	}
	g.Deadline = model.DateOf(deadline)
	return &g, nil
}

func (g *goals) Create(ctx context.Context, m *model.Goal, habitIDs []string) (*model.Goal, error) {
	tx, err := g.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	id := uuid.New().String()
	if _, err := tx.ExecContext(ctx, `
        INSERT INTO goals (`+goalCols+`)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
    `, id, m.UserID, m.Name, m.Description, m.Deadline.String(), string(model.GoalActive), false, now, now); err != nil {
		return nil, err
	}
	for _, habitID := range habitIDs {
		if _, err := tx.ExecContext(ctx, `
            INSERT INTO goal_habits (goal_habit_id, goal_id, habit_id, weight) VALUES ($1,$2,$3,1.0)
        `, uuid.New().String(), id, habitID); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	out := *m
	out.GoalID = id
	out.Status = model.GoalActive
	out.IsShared = false
	out.CreatedAt = now
	out.UpdatedAt = now
	return &out, nil
}

func (g *goals) GetByID(ctx context.Context, userID, goalID string) (*model.Goal, error) {
	row := g.db.QueryRowContext(ctx, `
        SELECT `+goalCols+` FROM goals WHERE goal_id=$1 AND user_id=$2
    `, goalID, userID)
	return scanGoal(row.Scan)
}

func (g *goals) List(ctx context.Context, userID string) ([]*model.Goal, error) {
	rows, err := g.db.QueryContext(ctx, `
        SELECT `+goalCols+` FROM goals WHERE user_id=$1 ORDER BY deadline ASC
    `, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.Goal
	for rows.Next() {
		m, err := scanGoal(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (g *goals) Update(ctx context.Context, userID, goalID string, req model.UpdateGoalRequest) (*model.Goal, error) {
	var status interface{}
	if req.Status != nil {
		status = string(*req.Status)
	}
	res, err := g.db.ExecContext(ctx, `
        UPDATE goals SET
            name = COALESCE($1, name),
            description = COALESCE($2, description),
            deadline = COALESCE($3::date, deadline),
            status = COALESCE($4, status),
            updated_at = $5
        WHERE goal_id=$6 AND user_id=$7
    `, req.Name, req.Description, nullDate(req.Deadline), status, time.Now().UTC(), goalID, userID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return g.GetByID(ctx, userID, goalID)
}

func (g *goals) Delete(ctx context.Context, userID, goalID string) error {
	res, err := g.db.ExecContext(ctx, `DELETE FROM goals WHERE goal_id=$1 AND user_id=$2`, goalID, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (g *goals) ListLinks(ctx context.Context, userID, goalID string) ([]*model.GoalHabit, error) {
	rows, err := g.db.QueryContext(ctx, `
        SELECT gh.goal_habit_id, gh.goal_id, gh.habit_id, gh.weight
        FROM goal_habits gh
        JOIN goals gl ON gl.goal_id = gh.goal_id
        WHERE gh.goal_id=$1 AND gl.user_id=$2
    `, goalID, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.GoalHabit
	for rows.Next() {
		var gh model.GoalHabit
		if err := rows.Scan(&gh.GoalHabitID, &gh.GoalID, &gh.HabitID, &gh.Weight); err != nil {
			return nil, err
		}
		out = append(out, &gh)
	}
	return out, rows.Err()
}

func (g *goals) LinkHabit(ctx context.Context, gh *model.GoalHabit) (*model.GoalHabit, error) {
	var out model.GoalHabit
	row := g.db.QueryRowContext(ctx, `
        INSERT INTO goal_habits (goal_habit_id, goal_id, habit_id, weight)
        VALUES ($1,$2,$3,$4)
        ON CONFLICT (goal_id, habit_id) DO UPDATE SET weight = EXCLUDED.weight
        RETURNING goal_habit_id, goal_id, habit_id, weight
    `, uuid.New().String(), gh.GoalID, gh.HabitID, gh.Weight)
	if err := row.Scan(&out.GoalHabitID, &out.GoalID, &out.HabitID, &out.Weight); err != nil {
		return nil, mapNoRows(err)
	}
	return &out, nil
}

func (g *goals) UnlinkHabit(ctx context.Context, userID, goalID, habitID string) error {
	_, err := g.db.ExecContext(ctx, `
        DELETE FROM goal_habits gh
        USING goals gl
        WHERE gh.goal_id = gl.goal_id
          AND gh.goal_id=$1 AND gh.habit_id=$2 AND gl.user_id=$3
    `, goalID, habitID, userID)
	return err
}

// --- Sync ---

type syncOps struct{ db *sql.DB }

func (s *syncOps) Status(ctx context.Context, userID string) (*model.SyncStatus, error) {
	var st model.SyncStatus
	row := s.db.QueryRowContext(ctx, `SELECT cloud_sync_enabled, last_synced_at FROM users WHERE user_id=$1`, userID)
	if err := row.Scan(&st.Enabled, &st.LastSync); err != nil {
		return nil, mapNoRows(err)
	}
	counts := []struct {
		query string
		dest  *int64
	}{
		{`SELECT COUNT(*) FROM habits WHERE user_id=$1`, &st.HabitsCount},
		{`SELECT COUNT(*) FROM check_ins WHERE user_id=$1`, &st.CheckinsCount},
		{`SELECT COUNT(*) FROM goals WHERE user_id=$1`, &st.GoalsCount},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query, userID).Scan(c.dest); err != nil {
			return nil, err
		}
	}
	return &st, nil
}

func (s *syncOps) Begin(ctx context.Context) (store.SyncTx, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, err
	}
	return &syncTx{tx: tx}, nil
}

func (s *syncOps) Export(ctx context.Context, userID string) (*model.SyncExport, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var out model.SyncExport

	habitRows, err := tx.QueryContext(ctx, `SELECT `+habitCols+` FROM habits WHERE user_id=$1`, userID)
	if err != nil {
		return nil, err
	}
	for habitRows.Next() {
		h, err := scanHabit(habitRows.Scan)
		if err != nil {
			_ = habitRows.Close()
			return nil, err
		}
		out.Habits = append(out.Habits, h)
	}
	if err := habitRows.Err(); err != nil {
		_ = habitRows.Close()
		return nil, err
	}
	_ = habitRows.Close()

	checkInRows, err := tx.QueryContext(ctx, `SELECT `+checkInCols+` FROM check_ins WHERE user_id=$1`, userID)
	if err != nil {
		return nil, err
	}
	for checkInRows.Next() {
		c, err := scanCheckIn(checkInRows.Scan)
		if err != nil {
			_ = checkInRows.Close()
			return nil, err
		}
		out.CheckIns = append(out.CheckIns, c)
	}
	if err := checkInRows.Err(); err != nil {
		_ = checkInRows.Close()
		return nil, err
	}
	_ = checkInRows.Close()

	goalRows, err := tx.QueryContext(ctx, `SELECT `+goalCols+` FROM goals WHERE user_id=$1`, userID)
	if err != nil {
		return nil, err
	}
	for goalRows.Next() {
		g, err := scanGoal(goalRows.Scan)
		if err != nil {
			_ = goalRows.Close()
			return nil, err
		}
		out.Goals = append(out.Goals, g)
	}
	if err := goalRows.Err(); err != nil {
		_ = goalRows.Close()
		return nil, err
	}
	_ = goalRows.Close()

	linkRows, err := tx.QueryContext(ctx, `
        SELECT gh.goal_habit_id, gh.goal_id, gh.habit_id, gh.weight
        FROM goal_habits gh
        JOIN goals gl ON gl.goal_id = gh.goal_id
        WHERE gl.user_id=$1
    `, userID)
	if err != nil {
		return nil, err
	}
	for linkRows.Next() {
		var gh model.GoalHabit
		if err := linkRows.Scan(&gh.GoalHabitID, &gh.GoalID, &gh.HabitID, &gh.Weight); err != nil {
			_ = linkRows.Close()
			return nil, err
		}
		out.GoalHabits = append(out.GoalHabits, &gh)
	}
	if err := linkRows.Err(); err != nil {
		_ = linkRows.Close()
		return nil, err
	}
	_ = linkRows.Close()

	return &out, tx.Commit()
}

type syncTx struct{ tx *sql.Tx }

func (t *syncTx) UpsertHabit(ctx context.Context, h *model.Habit) error {
	_, err := t.tx.ExecContext(ctx, `
        INSERT INTO habits (`+habitCols+`)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        ON CONFLICT (habit_id) DO UPDATE SET
            name = EXCLUDED.name,
            description = EXCLUDED.description,
            unit = EXCLUDED.unit,
            target_value = EXCLUDED.target_value,
            target_direction = EXCLUDED.target_direction,
            archived = EXCLUDED.archived,
            updated_at = EXCLUDED.updated_at
    `, h.HabitID, h.UserID, h.Name, h.Description, string(h.HabitType), h.Unit, h.TargetValue, string(h.TargetDirection), h.Archived, h.CreatedAt, h.UpdatedAt)
	return err
}

func (t *syncTx) UpsertCheckIn(ctx context.Context, c *model.CheckIn) error {
	_, err := t.tx.ExecContext(ctx, `
        INSERT INTO check_ins (`+checkInCols+`)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        ON CONFLICT (habit_id, effective_date) DO UPDATE SET
            value = EXCLUDED.value,
            note = COALESCE(EXCLUDED.note, check_ins.note)
    `, c.CheckInID, c.HabitID, c.UserID, c.Value, c.Note, c.EffectiveDate.String(), c.CreatedAt)
	return err
}

func (t *syncTx) UpsertGoal(ctx context.Context, g *model.Goal) error {
	_, err := t.tx.ExecContext(ctx, `
        INSERT INTO goals (`+goalCols+`)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        ON CONFLICT (goal_id) DO UPDATE SET
            name = EXCLUDED.name,
            description = EXCLUDED.description,
            deadline = EXCLUDED.deadline,
            status = EXCLUDED.status,
            updated_at = EXCLUDED.updated_at
    `, g.GoalID, g.UserID, g.Name, g.Description, g.Deadline.String(), string(g.Status), g.IsShared, g.CreatedAt, g.UpdatedAt)
	return err
}

func (t *syncTx) UpsertGoalHabit(ctx context.Context, gh *model.GoalHabit) error {
	_, err := t.tx.ExecContext(ctx, `
        INSERT INTO goal_habits (goal_habit_id, goal_id, habit_id, weight)
        VALUES ($1,$2,$3,$4)
        ON CONFLICT (goal_id, habit_id) DO UPDATE SET weight = EXCLUDED.weight
    `, gh.GoalHabitID, gh.GoalID, gh.HabitID, gh.Weight)
	return err
}

func (t *syncTx) TouchLastSync(ctx context.Context, userID string, at time.Time) error {
	_, err := t.tx.ExecContext(ctx, `
        UPDATE users SET last_synced_at=$1, updated_at=$1 WHERE user_id=$2
    `, at, userID)
	return err
}

func (t *syncTx) Commit() error   { return t.tx.Commit() }
func (t *syncTx) Rollback() error { return t.tx.Rollback() }
