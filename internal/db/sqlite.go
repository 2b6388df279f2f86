package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/offer-scorer/internal/types"

	_ "modernc.org/sqlite"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS analysis_results (
		id TEXT PRIMARY KEY,
		input_hash TEXT NOT NULL UNIQUE,
		content_type TEXT NOT NULL,
		result TEXT NOT NULL,
		created_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_analysis_results_created_at ON analysis_results (created_at)`,
}

// SQLite is a file-backed result cache for local CLI use
type SQLite struct {
	db   *sql.DB
	path string
	ttl  time.Duration
	now  func() time.Time
}

// OpenSQLite opens or creates the cache database at path.
// Results older than ttl are treated as misses; zero keeps them forever.
func OpenSQLite(path string, ttl time.Duration) (*SQLite, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// a single connection keeps :memory: databases shared and serializes writers
	sqlDB.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := sqlDB.Exec(p); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", p, err)
		}
	}

	return &SQLite{db: sqlDB, path: path, ttl: ttl, now: time.Now}, nil
}

// Path returns the database file path
func (s *SQLite) Path() string {
	return s.path
}

// Close closes the database
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Migrate creates the results table if it does not exist
func (s *SQLite) Migrate(ctx context.Context) error {
	for _, stmt := range sqliteSchema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return &CacheError{Op: "migrate", Cause: err}
		}
	}
	return nil
}

// Get returns the cached result for key, or found=false on a miss or an expired row
func (s *SQLite) Get(ctx context.Context, key string) (*types.ScoringResult, bool, error) {
	row, err := s.GetRow(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if row == nil || expired(row.CreatedAt, s.now(), s.ttl) {
		return nil, false, nil
	}
	return row.Result, true, nil
}

// GetRow retrieves a stored row by input hash regardless of age
func (s *SQLite) GetRow(ctx context.Context, key string) (*CachedResult, error) {
	var row CachedResult
	var content string
	var createdAt int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, input_hash, content_type, result, created_at
		 FROM analysis_results WHERE input_hash = ?`,
		key,
	).Scan(&row.ID, &row.InputHash, &row.ContentType, &content, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, &CacheError{Op: "get", Key: key, Cause: err}
	}

	result, err := decodeResult([]byte(content))
	if err != nil {
		return nil, &CacheError{Op: "get", Key: key, Cause: err}
	}
	row.Result = result
	row.CreatedAt = time.Unix(0, createdAt).UTC()
	return &row, nil
}

// Put stores result under key, replacing any previous entry
func (s *SQLite) Put(ctx context.Context, key, contentType string, result *types.ScoringResult) error {
	jsonBytes, err := encodeResult(result)
	if err != nil {
		return &CacheError{Op: "put", Key: key, Cause: err}
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO analysis_results (id, input_hash, content_type, result, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (input_hash) DO UPDATE SET
		   content_type = excluded.content_type,
		   result = excluded.result,
		   created_at = excluded.created_at`,
		uuid.NewString(), key, contentType, string(jsonBytes), s.now().UnixNano(),
	)
	if err != nil {
		return &CacheError{Op: "put", Key: key, Cause: err}
	}
	return nil
}

// Prune deletes rows older than the configured ttl and returns how many were removed
func (s *SQLite) Prune(ctx context.Context) (int64, error) {
	if s.ttl <= 0 {
		return 0, nil
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM analysis_results WHERE created_at < ?`,
		s.now().Add(-s.ttl).UnixNano(),
	)
	if err != nil {
		return 0, &CacheError{Op: "prune", Cause: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, &CacheError{Op: "prune", Cause: err}
	}
	return n, nil
}
