// Package sqlite implements store.Store on modernc.org/sqlite. It backs
// local development and hermetic tests; instants are stored as RFC 3339
// text and calendar dates as YYYY-MM-DD text.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/piyushKumar-1/betterbe/internal/model"
	"github.com/piyushKumar-1/betterbe/internal/store"
)

// Open opens (or creates) a sqlite database and verifies connectivity.
// Use ":memory:" for a throwaway in-memory database.
func Open(path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is empty")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A single connection keeps in-memory databases coherent and sidesteps
	// SQLITE_BUSY under concurrent writers.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// EnsureSchema applies the embedded DDL. Statements are idempotent.
func EnsureSchema(db *sql.DB) error {
	for _, stmt := range ddlStatements() {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// NewWithDB constructs a sqlite-backed store from an existing connection.
func NewWithDB(db *sql.DB) store.Store { return &sqlStore{db: db} }

type sqlStore struct{ db *sql.DB }

func (s *sqlStore) Users() store.Users       { return &users{db: s.db} }
func (s *sqlStore) Habits() store.Habits     { return &habits{db: s.db} }
func (s *sqlStore) CheckIns() store.CheckIns { return &checkIns{db: s.db} }
func (s *sqlStore) Goals() store.Goals       { return &goals{db: s.db} }
func (s *sqlStore) Sync() store.Sync         { return &syncOps{db: s.db} }

// HealthPing implements health.HealthPinger.
func (s *sqlStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// --- encoding helpers ---

const timeLayout = time.RFC3339Nano

func encTime(t time.Time) string { return t.UTC().Format(timeLayout) }

func decTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("sqlite: bad timestamp %q: %w", s, err)
	}
	return t, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullBool(b *bool) interface{} {
	if b == nil {
		return nil
	}
	return boolInt(*b)
}

func nullDate(d *model.Date) interface{} {
	if d == nil {
		return nil
	}
	return d.String()
}

func mapNoRows(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return model.ErrNotFound
	}
	return err
}

// --- Users ---

type users struct{ db *sql.DB }

func (u *users) Create(ctx context.Context, m *model.User) (*model.User, error) {
	now := time.Now().UTC()
	_, err := u.db.ExecContext(ctx, `
        INSERT INTO users (user_id, email, name, avatar_url, cloud_sync_enabled, created_at, updated_at)
        VALUES (?,?,?,?,?,?,?)
    `, m.UserID, m.Email, m.Name, m.AvatarURL, boolInt(m.CloudSyncEnabled), encTime(now), encTime(now))
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
	var created, updated string
	var lastSynced sql.NullString
	row := u.db.QueryRowContext(ctx, `
        SELECT user_id, email, name, avatar_url, cloud_sync_enabled, last_synced_at, created_at, updated_at
        FROM users WHERE user_id=?
    `, userID)
	if err := row.Scan(&out.UserID, &out.Email, &out.Name, &out.AvatarURL, &out.CloudSyncEnabled, &lastSynced, &created, &updated); err != nil {
		return nil, mapNoRows(err)
	}
	var err error
	if out.CreatedAt, err = decTime(created); err != nil {
		return nil, err
	}
	if out.UpdatedAt, err = decTime(updated); err != nil {
		return nil, err
	}
	if lastSynced.Valid {
		t, err := decTime(lastSynced.String)
		if err != nil {
			return nil, err
		}
		out.LastSyncedAt = &t
	}
	return &out, nil
}

func (u *users) Update(ctx context.Context, userID string, req model.UpdateUserRequest) (*model.User, error) {
	res, err := u.db.ExecContext(ctx, `
        UPDATE users SET
            name = COALESCE(?, name),
            cloud_sync_enabled = COALESCE(?, cloud_sync_enabled),
            updated_at = ?
        WHERE user_id=?
    `, req.Name, nullBool(req.CloudSyncEnabled), encTime(time.Now().UTC()), userID)
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
        UPDATE users SET cloud_sync_enabled=?, updated_at=? WHERE user_id=?
    `, boolInt(enabled), encTime(time.Now().UTC()), userID)
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
	var created, updated string
	if err := scan(&h.HabitID, &h.UserID, &h.Name, &h.Description, &h.HabitType, &h.Unit, &h.TargetValue, &h.TargetDirection, &h.Archived, &created, &updated); err != nil {
		return nil, mapNoRows(err)
	}
	var err error
	if h.CreatedAt, err = decTime(created); err != nil {
		return nil, err
	}
	if h.UpdatedAt, err = decTime(updated); err != nil {
		return nil, err
	}
	return &h, nil
}

func (h *habits) Create(ctx context.Context, m *model.Habit) (*model.Habit, error) {
	now := time.Now().UTC()
	id := uuid.New().String()
	_, err := h.db.ExecContext(ctx, `
        INSERT INTO habits (`+habitCols+`)
        VALUES (?,?,?,?,?,?,?,?,?,?,?)
    `, id, m.UserID, m.Name, m.Description, string(m.HabitType), m.Unit, m.TargetValue, string(m.TargetDirection), boolInt(m.Archived), encTime(now), encTime(now))
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
        SELECT `+habitCols+` FROM habits WHERE habit_id=? AND user_id=?
    `, habitID, userID)
	return scanHabit(row.Scan)
}

func (h *habits) List(ctx context.Context, userID string) ([]*model.Habit, error) {
	rows, err := h.db.QueryContext(ctx, `
        SELECT `+habitCols+` FROM habits
        WHERE user_id=? AND archived=0
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
            name = COALESCE(?, name),
            description = COALESCE(?, description),
            unit = COALESCE(?, unit),
            target_value = COALESCE(?, target_value),
            target_direction = COALESCE(?, target_direction),
            archived = COALESCE(?, archived),
            updated_at = ?
        WHERE habit_id=? AND user_id=?
    `, req.Name, req.Description, req.Unit, req.TargetValue, dir, nullBool(req.Archived), encTime(time.Now().UTC()), habitID, userID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return h.GetByID(ctx, userID, habitID)
}

func (h *habits) Delete(ctx context.Context, userID, habitID string) error {
	res, err := h.db.ExecContext(ctx, `DELETE FROM habits WHERE habit_id=? AND user_id=?`, habitID, userID)
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
	var date, created string
	if err := scan(&c.CheckInID, &c.HabitID, &c.UserID, &c.Value, &c.Note, &date, &created); err != nil {
		return nil, mapNoRows(err)
	}
	d, err := model.ParseDate(date)
	if err != nil {
		return nil, err
	}
	c.EffectiveDate = d
	if c.CreatedAt, err = decTime(created); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *checkIns) Upsert(ctx context.Context, m *model.CheckIn) (*model.CheckIn, error) {
	created := m.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	_, err := c.db.ExecContext(ctx, `
        INSERT INTO check_ins (`+checkInCols+`)
        VALUES (?,?,?,?,?,?,?)
        ON CONFLICT (habit_id, effective_date) DO UPDATE SET
            value = excluded.value,
            note = COALESCE(excluded.note, note)
    `, uuid.New().String(), m.HabitID, m.UserID, m.Value, m.Note, m.EffectiveDate.String(), encTime(created))
	if err != nil {
		return nil, err
	}
	row := c.db.QueryRowContext(ctx, `
        SELECT `+checkInCols+` FROM check_ins WHERE habit_id=? AND effective_date=?
    `, m.HabitID, m.EffectiveDate.String())
	return scanCheckIn(row.Scan)
}

func (c *checkIns) List(ctx context.Context, req model.ListCheckInsRequest) ([]*model.CheckIn, error) {
	query := `SELECT ` + checkInCols + ` FROM check_ins WHERE user_id=?`
	args := []interface{}{req.UserID}
	if req.HabitID != nil {
		query += " AND habit_id=?"
		args = append(args, *req.HabitID)
	}
	if req.StartDate != nil {
		query += " AND effective_date>=?"
		args = append(args, req.StartDate.String())
	}
	if req.EndDate != nil {
		query += " AND effective_date<=?"
		args = append(args, req.EndDate.String())
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
	res, err := c.db.ExecContext(ctx, `
        UPDATE check_ins SET
            value = COALESCE(?, value),
            note = COALESCE(?, note)
        WHERE check_in_id=? AND user_id=?
    `, req.Value, req.Note, checkInID, userID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	row := c.db.QueryRowContext(ctx, `
        SELECT `+checkInCols+` FROM check_ins WHERE check_in_id=? AND user_id=?
    `, checkInID, userID)
	return scanCheckIn(row.Scan)
}

func (c *checkIns) Delete(ctx context.Context, userID, checkInID string) error {
	res, err := c.db.ExecContext(ctx, `DELETE FROM check_ins WHERE check_in_id=? AND user_id=?`, checkInID, userID)
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
	var deadline, created, updated string
	if err := scan(&g.GoalID, &g.UserID, &g.Name, &g.Description, &deadline, &g.Status, &g.IsShared, &created, &updated); err != nil {
		return nil, mapNoRows(err)
	}
	d, err := model.ParseDate(deadline)
	if err != nil {
		return nil, err
	}
	g.Deadline = d
	if g.CreatedAt, err = decTime(created); err != nil {
		return nil, err
	}
	if g.UpdatedAt, err = decTime(updated); err != nil {
		return nil, err
	}
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
        VALUES (?,?,?,?,?,?,?,?,?)
    `, id, m.UserID, m.Name, m.Description, m.Deadline.String(), string(model.GoalActive), 0, encTime(now), encTime(now)); err != nil {
		return nil, err
	}
	for _, habitID := range habitIDs {
		if _, err := tx.ExecContext(ctx, `
            INSERT INTO goal_habits (goal_habit_id, goal_id, habit_id, weight) VALUES (?,?,?,1.0)
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
        SELECT `+goalCols+` FROM goals WHERE goal_id=? AND user_id=?
    `, goalID, userID)
	return scanGoal(row.Scan)
}

func (g *goals) List(ctx context.Context, userID string) ([]*model.Goal, error) {
	rows, err := g.db.QueryContext(ctx, `
        SELECT `+goalCols+` FROM goals WHERE user_id=? ORDER BY deadline ASC
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
            name = COALESCE(?, name),
            description = COALESCE(?, description),
            deadline = COALESCE(?, deadline),
            status = COALESCE(?, status),
            updated_at = ?
        WHERE goal_id=? AND user_id=?
    `, req.Name, req.Description, nullDate(req.Deadline), status, encTime(time.Now().UTC()), goalID, userID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return g.GetByID(ctx, userID, goalID)
}

func (g *goals) Delete(ctx context.Context, userID, goalID string) error {
	res, err := g.db.ExecContext(ctx, `DELETE FROM goals WHERE goal_id=? AND user_id=?`, goalID, userID)
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
        WHERE gh.goal_id=? AND gl.user_id=?
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
	if _, err := g.db.ExecContext(ctx, `
        INSERT INTO goal_habits (goal_habit_id, goal_id, habit_id, weight)
        VALUES (?,?,?,?)
        ON CONFLICT (goal_id, habit_id) DO UPDATE SET weight = excluded.weight
    `, uuid.New().String(), gh.GoalID, gh.HabitID, gh.Weight); err != nil {
		return nil, err
	}
	var out model.GoalHabit
	row := g.db.QueryRowContext(ctx, `
        SELECT goal_habit_id, goal_id, habit_id, weight FROM goal_habits WHERE goal_id=? AND habit_id=?
    `, gh.GoalID, gh.HabitID)
	if err := row.Scan(&out.GoalHabitID, &out.GoalID, &out.HabitID, &out.Weight); err != nil {
		return nil, mapNoRows(err)
	}
	return &out, nil
}

func (g *goals) UnlinkHabit(ctx context.Context, userID, goalID, habitID string) error {
	_, err := g.db.ExecContext(ctx, `
        DELETE FROM goal_habits
        WHERE goal_id=? AND habit_id=?
          AND goal_id IN (SELECT goal_id FROM goals WHERE user_id=?)
    `, goalID, habitID, userID)
	return err
}

// --- Sync ---

type syncOps struct{ db *sql.DB }

func (s *syncOps) Status(ctx context.Context, userID string) (*model.SyncStatus, error) {
	var st model.SyncStatus
	var lastSynced sql.NullString
	row := s.db.QueryRowContext(ctx, `SELECT cloud_sync_enabled, last_synced_at FROM users WHERE user_id=?`, userID)
	if err := row.Scan(&st.Enabled, &lastSynced); err != nil {
		return nil, mapNoRows(err)
	}
	if lastSynced.Valid {
		t, err := decTime(lastSynced.String)
		if err != nil {
			return nil, err
		}
		st.LastSync = &t
	}
	counts := []struct {
		query string
		dest  *int64
	}{
		{`SELECT COUNT(*) FROM habits WHERE user_id=?`, &st.HabitsCount},
		{`SELECT COUNT(*) FROM check_ins WHERE user_id=?`, &st.CheckinsCount},
		{`SELECT COUNT(*) FROM goals WHERE user_id=?`, &st.GoalsCount},
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
	// sqlite gives a consistent snapshot for the lifetime of any
	// transaction, so a plain one is enough for the four reads.
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var out model.SyncExport

	habitRows, err := tx.QueryContext(ctx, `SELECT `+habitCols+` FROM habits WHERE user_id=?`, userID)
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

	checkInRows, err := tx.QueryContext(ctx, `SELECT `+checkInCols+` FROM check_ins WHERE user_id=?`, userID)
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

	goalRows, err := tx.QueryContext(ctx, `SELECT `+goalCols+` FROM goals WHERE user_id=?`, userID)
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
        WHERE gl.user_id=?
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
        VALUES (?,?,?,?,?,?,?,?,?,?,?)
        ON CONFLICT (habit_id) DO UPDATE SET
            name = excluded.name,
            description = excluded.description,
            unit = excluded.unit,
            target_value = excluded.target_value,
            target_direction = excluded.target_direction,
            archived = excluded.archived,
            updated_at = excluded.updated_at
    `, h.HabitID, h.UserID, h.Name, h.Description, string(h.HabitType), h.Unit, h.TargetValue, string(h.TargetDirection), boolInt(h.Archived), encTime(h.CreatedAt), encTime(h.UpdatedAt))
	return err
}

func (t *syncTx) UpsertCheckIn(ctx context.Context, c *model.CheckIn) error {
	_, err := t.tx.ExecContext(ctx, `
        INSERT INTO check_ins (`+checkInCols+`)
        VALUES (?,?,?,?,?,?,?)
        ON CONFLICT (habit_id, effective_date) DO UPDATE SET
            value = excluded.value,
            note = COALESCE(excluded.note, note)
    `, c.CheckInID, c.HabitID, c.UserID, c.Value, c.Note, c.EffectiveDate.String(), encTime(c.CreatedAt))
	return err
}

func (t *syncTx) UpsertGoal(ctx context.Context, g *model.Goal) error {
	_, err := t.tx.ExecContext(ctx, `
        INSERT INTO goals (`+goalCols+`)
        VALUES (?,?,?,?,?,?,?,?,?)
        ON CONFLICT (goal_id) DO UPDATE SET
            name = excluded.name,
            description = excluded.description,
            deadline = excluded.deadline,
            status = excluded.status,
            updated_at = excluded.updated_at
    `, g.GoalID, g.UserID, g.Name, g.Description, g.Deadline.String(), string(g.Status), boolInt(g.IsShared), encTime(g.CreatedAt), encTime(g.UpdatedAt))
	return err
}

func (t *syncTx) UpsertGoalHabit(ctx context.Context, gh *model.GoalHabit) error {
	_, err := t.tx.ExecContext(ctx, `
        INSERT INTO goal_habits (goal_habit_id, goal_id, habit_id, weight)
        VALUES (?,?,?,?)
        ON CONFLICT (goal_id, habit_id) DO UPDATE SET weight = excluded.weight
    `, gh.GoalHabitID, gh.GoalID, gh.HabitID, gh.Weight)
	return err
}

func (t *syncTx) TouchLastSync(ctx context.Context, userID string, at time.Time) error {
	_, err := t.tx.ExecContext(ctx, `
        UPDATE users SET last_synced_at=?, updated_at=? WHERE user_id=?
    `, encTime(at), encTime(at), userID)
	return err
}

func (t *syncTx) Commit() error   { return t.tx.Commit() }
func (t *syncTx) Rollback() error { return t.tx.Rollback() }
