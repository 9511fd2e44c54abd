package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"tasknotify/internal/config"
)

// Store manages task and user persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the database and applies migrations.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.DataDir, "tasknotify.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// SaveTask upserts a task snapshot and returns the snapshot that was stored
// before the write, or nil when the task is new. The prior snapshot is what
// the event dispatcher needs to detect the open-to-completed transition.
func (s *Store) SaveTask(ctx context.Context, task Task) (*Task, error) {
	task.ID = strings.TrimSpace(task.ID)
	if task.ID == "" {
		return nil, errors.New("task id is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin save tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	before, err := scanTask(tx.QueryRowContext(ctx, taskSelect+" WHERE id = ?", task.ID))
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	createdAt := now
	if before != nil {
		createdAt = before.CreatedAt
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO tasks (id, title, assigned_to, created_by, completed, due_date, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)
         ON CONFLICT(id) DO UPDATE SET
             title = excluded.title,
             assigned_to = excluded.assigned_to,
             created_by = excluded.created_by,
             completed = excluded.completed,
             due_date = excluded.due_date,
             updated_at = excluded.updated_at`,
		task.ID,
		strings.TrimSpace(task.Title),
		strings.TrimSpace(task.AssignedTo),
		strings.TrimSpace(task.CreatedBy),
		boolToInt(task.Completed),
		nullableTime(task.DueDate),
		createdAt.Format(time.RFC3339Nano),
		now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("save task %s: %w", task.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit save: %w", err)
	}
	return before, nil
}

// GetTask fetches a task by identifier. Returns nil when no task matches.
func (s *Store) GetTask(ctx context.Context, id string) (*Task, error) {
	return scanTask(s.db.QueryRowContext(ctx, taskSelect+" WHERE id = ?", strings.TrimSpace(id)))
}

// ListOpenTasks returns all tasks that are not completed, ordered by due date
// with undated tasks last.
func (s *Store) ListOpenTasks(ctx context.Context) ([]*Task, error) {
	rows, err := s.db.QueryContext(ctx,
		taskSelect+" WHERE completed = 0 ORDER BY due_date IS NULL, due_date, id")
	if err != nil {
		return nil, fmt.Errorf("list open tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*Task
	for rows.Next() {
		task, err := scanTaskRow(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate open tasks: %w", err)
	}
	return tasks, nil
}

// UpsertUserToken registers or replaces the device token for a username. A
// user holds at most one token; registering overwrites any previous one.
func (s *Store) UpsertUserToken(ctx context.Context, username, token string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return errors.New("username is required")
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, device_token, updated_at) VALUES (?, ?, ?)
         ON CONFLICT(username) DO UPDATE SET device_token = excluded.device_token, updated_at = excluded.updated_at`,
		username, nullableString(token), now)
	if err != nil {
		return fmt.Errorf("upsert token for %s: %w", username, err)
	}
	return nil
}

// ClearUserToken removes the device token for a username, keeping the record.
func (s *Store) ClearUserToken(ctx context.Context, username string) error {
	return s.UpsertUserToken(ctx, username, "")
}

// GetUserByUsername performs a point lookup by unique username. Returns nil
// when no user matches. The query is capped at one row so a uniqueness
// anomaly degrades to first-match instead of an error.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, nil
	}
	row := s.db.QueryRowContext(ctx,
		"SELECT username, device_token, updated_at FROM users WHERE username = ? LIMIT 1", username)

	var user User
	var token sql.NullString
	var updatedAt string
	if err := row.Scan(&user.Username, &token, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lookup user %s: %w", username, err)
	}
	user.DeviceToken = token.String
	user.UpdatedAt = parseTimestamp(updatedAt)
	return &user, nil
}

// Counts returns aggregate store contents for status reporting.
func (s *Store) Counts(ctx context.Context) (Counts, error) {
	var counts Counts
	row := s.db.QueryRowContext(ctx, `SELECT
        (SELECT COUNT(1) FROM tasks),
        (SELECT COUNT(1) FROM tasks WHERE completed = 0),
        (SELECT COUNT(1) FROM tasks WHERE completed = 1),
        (SELECT COUNT(1) FROM users),
        (SELECT COUNT(1) FROM users WHERE device_token IS NOT NULL AND device_token != '')`)
	if err := row.Scan(&counts.Tasks, &counts.Open, &counts.Completed, &counts.Users, &counts.Registered); err != nil {
		return Counts{}, fmt.Errorf("count store contents: %w", err)
	}
	return counts, nil
}

const taskSelect = "SELECT id, title, assigned_to, created_by, completed, due_date, created_at, updated_at FROM tasks"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*Task, error) {
	task, err := scanTaskRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return task, nil
}

func scanTaskRow(row rowScanner) (*Task, error) {
	var task Task
	var completed int
	var due sql.NullString
	var createdAt, updatedAt string
	if err := row.Scan(&task.ID, &task.Title, &task.AssignedTo, &task.CreatedBy, &completed, &due, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}
	task.Completed = completed != 0
	if due.Valid && due.String != "" {
		parsed := parseTimestamp(due.String)
		task.DueDate = &parsed
	}
	task.CreatedAt = parseTimestamp(createdAt)
	task.UpdatedAt = parseTimestamp(updatedAt)
	return &task, nil
}

func parseTimestamp(value string) time.Time {
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return parsed.UTC()
}

func nullableTime(value *time.Time) any {
	if value == nil {
		return nil
	}
	return value.UTC().Format(time.RFC3339Nano)
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
