package storage

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	_ "modernc.org/sqlite"

	"github.com/julianstephens/almanac/internal/logger"
	"github.com/julianstephens/almanac/internal/migration"
	"github.com/julianstephens/almanac/internal/models"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

func migrations() fs.FS {
	sub, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

type SQLiteStore struct {
	path string
	db   *sql.DB
	now  func() time.Time
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path, now: time.Now}
}

func (s *SQLiteStore) Path() string { return s.path }

// Init creates the database if needed and applies pending migrations.
func (s *SQLiteStore) Init() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := s.open(); err != nil {
		return err
	}

	runner := migration.NewRunner(s.db, migrations())
	if _, err := runner.Apply(func(msg string) { logger.Info(msg) }); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Load opens an existing database and checks its schema version.
func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'almanac init' first")
	}
	if err := s.open(); err != nil {
		return err
	}
	return migration.NewRunner(s.db, migrations()).ValidateVersion()
}

func (s *SQLiteStore) open() error {
	if s.db != nil {
		return nil
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// SaveEdition inserts or replaces an edition together with its QA issues.
func (s *SQLiteStore) SaveEdition(ed models.Edition) error {
	if ed.ID == "" {
		return fmt.Errorf("edition has no id")
	}
	payload, err := json.Marshal(ed)
	if err != nil {
		return fmt.Errorf("failed to encode edition: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`
		INSERT INTO editions (id, city, region, country, generated_at, version, seed, week_count, payload, saved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			city = excluded.city,
			region = excluded.region,
			country = excluded.country,
			generated_at = excluded.generated_at,
			version = excluded.version,
			seed = excluded.seed,
			week_count = excluded.week_count,
			payload = excluded.payload,
			saved_at = excluded.saved_at
	`,
		ed.ID, ed.Locale.City, ed.Locale.Region, ed.Locale.Country,
		ed.GeneratedAt.UTC().Format(time.RFC3339Nano), ed.Version,
		strconv.FormatUint(ed.Seed, 10), len(ed.Weeks), string(payload),
		s.now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save edition: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM edition_issues WHERE edition_id = ?", ed.ID); err != nil {
		return fmt.Errorf("failed to clear issues: %w", err)
	}
	for _, i := range ed.Issues {
		_, err := tx.Exec(`
			INSERT INTO edition_issues (edition_id, week, severity, category, message, field)
			VALUES (?, ?, ?, ?, ?, ?)
		`, ed.ID, i.WeekNumber, string(i.Severity), string(i.Category), i.Message, i.Field)
		if err != nil {
			return fmt.Errorf("failed to save issue: %w", err)
		}
	}

	return tx.Commit()
}

// GetEdition accepts a full id or a unique prefix of one.
func (s *SQLiteStore) GetEdition(id string) (models.Edition, error) {
	fullID, err := s.resolveID(id)
	if err != nil {
		return models.Edition{}, err
	}

	var payload string
	if err := s.db.QueryRow("SELECT payload FROM editions WHERE id = ?", fullID).Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Edition{}, ErrNotFound
		}
		return models.Edition{}, fmt.Errorf("failed to load edition: %w", err)
	}

	var ed models.Edition
	if err := json.Unmarshal([]byte(payload), &ed); err != nil {
		return models.Edition{}, fmt.Errorf("failed to decode edition %s: %w", fullID, err)
	}
	return ed, nil
}

func (s *SQLiteStore) resolveID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrNotFound
	}
	rows, err := s.db.Query(
		"SELECT id FROM editions WHERE id = ? OR id LIKE ? ORDER BY id = ? DESC LIMIT 2",
		id, id+"%", id)
	if err != nil {
		return "", fmt.Errorf("failed to look up edition: %w", err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return "", err
		}
		if m == id {
			return m, nil
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}
	switch len(matches) {
	case 0:
		return "", ErrNotFound
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("edition id prefix %q is ambiguous", id)
	}
}

// ListEditions returns summaries, newest first.
func (s *SQLiteStore) ListEditions() ([]Summary, error) {
	rows, err := s.db.Query(`
		SELECT e.id, e.city, e.region, e.country, e.generated_at, e.seed, e.week_count,
			COALESCE(SUM(CASE WHEN i.severity = 'error' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN i.severity = 'warning' THEN 1 ELSE 0 END), 0)
		FROM editions e
		LEFT JOIN edition_issues i ON i.edition_id = e.id
		GROUP BY e.id
		ORDER BY e.generated_at DESC, e.id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list editions: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var (
			sum       Summary
			generated string
			seed      string
		)
		if err := rows.Scan(&sum.ID, &sum.Locale.City, &sum.Locale.Region, &sum.Locale.Country,
			&generated, &seed, &sum.Weeks, &sum.Errors, &sum.Warnings); err != nil {
			return nil, fmt.Errorf("failed to scan edition: %w", err)
		}
		sum.GeneratedAt, _ = time.Parse(time.RFC3339Nano, generated)
		sum.Seed, _ = strconv.ParseUint(seed, 10, 64)
		out = append(out, sum)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) DeleteEdition(id string) error {
	fullID, err := s.resolveID(id)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM edition_issues WHERE edition_id = ?", fullID); err != nil {
		return fmt.Errorf("failed to delete issues: %w", err)
	}
	res, err := tx.Exec("DELETE FROM editions WHERE id = ?", fullID)
	if err != nil {
		return fmt.Errorf("failed to delete edition: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}
