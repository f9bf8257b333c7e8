package history

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/IvanShishkin/treelens/pkg/models"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNoHistory is returned by Latest when a root has never been recorded
var ErrNoHistory = errors.New("no scan history for root")

// Stats is the summary snapshot kept as JSON with each history row
type Stats struct {
	Directories     int   `json:"directories"`
	TotalSizeBytes  int64 `json:"total_size_bytes"`
	Inaccessible    int   `json:"inaccessible"`
	Malformed       int   `json:"malformed"`
	NearDuplicates  int   `json:"near_duplicates"`
	VersionClusters int   `json:"version_clusters"`
	HealthScore     int   `json:"health_score"`
}

// Entry is one recorded scan
type Entry struct {
	ID              string
	Root            string
	ScanTime        time.Time
	DurationMs      int64
	FileCount       int
	DuplicateGroups int
	WastedBytes     int64
	Sessions        int
	Stats           Stats
}

// Store keeps scan history in a SQLite database
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the history database at dbPath
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if _, err := db.Exec(`PRAGMA journal_mode = WAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set journal mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate history database: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS scan_history (
			id TEXT PRIMARY KEY,
			root TEXT NOT NULL,
			scan_time INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			file_count INTEGER NOT NULL,
			duplicate_groups INTEGER NOT NULL,
			wasted_bytes INTEGER NOT NULL,
			sessions INTEGER NOT NULL,
			stats_json TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_scan_history_root_time ON scan_history(root, scan_time DESC);
	`)
	return err
}

// Record stores a finished scan and returns the new entry
func (s *Store) Record(env *models.ReportEnvelope) (*Entry, error) {
	if env == nil || env.Report == nil {
		return nil, errors.New("envelope has no report")
	}
	r := env.Report

	entry := &Entry{
		ID:              uuid.NewString(),
		Root:            env.Root,
		ScanTime:        env.GeneratedAt.UTC(),
		DurationMs:      env.DurationMs,
		FileCount:       r.FileCount,
		DuplicateGroups: len(r.DuplicateGroups),
		WastedBytes:     r.TotalWastedBytes(),
		Sessions:        len(r.WorkSessions),
		Stats: Stats{
			Directories:     r.DirectoryCount,
			TotalSizeBytes:  r.TotalSizeBytes,
			Inaccessible:    r.InaccessibleCount,
			Malformed:       r.MalformedCount,
			NearDuplicates:  len(r.NearDuplicatePairs),
			VersionClusters: len(r.VersionClusters),
			HealthScore:     int(math.Round(r.Insights.Health.Score)),
		},
	}

	statsJSON, err := json.Marshal(entry.Stats)
	if err != nil {
		return nil, fmt.Errorf("failed to encode stats: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO scan_history (id, root, scan_time, duration_ms, file_count, duplicate_groups, wasted_bytes, sessions, stats_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Root, entry.ScanTime.UnixMilli(), entry.DurationMs, entry.FileCount,
		entry.DuplicateGroups, entry.WastedBytes, entry.Sessions, string(statsJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to insert history entry: %w", err)
	}

	return entry, nil
}

// List returns the most recent entries for root, newest first.
// An empty root lists all roots; limit <= 0 returns everything.
func (s *Store) List(root string, limit int) ([]Entry, error) {
	query := `SELECT id, root, scan_time, duration_ms, file_count, duplicate_groups, wasted_bytes, sessions, stats_json
		FROM scan_history`
	var args []any
	if root != "" {
		query += ` WHERE root = ?`
		args = append(args, root)
	}
	query += ` ORDER BY scan_time DESC, id ASC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var (
			e         Entry
			scanTime  int64
			statsJSON string
		)
		if err := rows.Scan(&e.ID, &e.Root, &scanTime, &e.DurationMs, &e.FileCount,
			&e.DuplicateGroups, &e.WastedBytes, &e.Sessions, &statsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		e.ScanTime = time.UnixMilli(scanTime).UTC()
		if err := json.Unmarshal([]byte(statsJSON), &e.Stats); err != nil {
			return nil, fmt.Errorf("failed to decode stats for %s: %w", e.ID, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Latest returns the newest entry for root or ErrNoHistory
func (s *Store) Latest(root string) (*Entry, error) {
	entries, err := s.List(root, 1)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNoHistory
	}
	return &entries[0], nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}
