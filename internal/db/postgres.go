package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonathan/offer-scorer/internal/types"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS analysis_results (
		id UUID PRIMARY KEY,
		input_hash TEXT NOT NULL UNIQUE,
		content_type TEXT NOT NULL,
		result JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_analysis_results_created_at ON analysis_results (created_at)`,
}

// DB is a PostgreSQL-backed result cache
type DB struct {
	pool *pgxpool.Pool
	ttl  time.Duration
	now  func() time.Time
}

// Connect establishes a connection pool to the database.
// Results older than ttl are treated as misses; zero keeps them forever.
func Connect(ctx context.Context, databaseURL string, ttl time.Duration) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool, ttl: ttl, now: time.Now}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Migrate creates the results table if it does not exist
func (db *DB) Migrate(ctx context.Context) error {
	for _, stmt := range postgresSchema {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return &CacheError{Op: "migrate", Cause: err}
		}
	}
	return nil
}

// Get returns the cached result for key, or found=false on a miss or an expired row
func (db *DB) Get(ctx context.Context, key string) (*types.ScoringResult, bool, error) {
	row, err := db.GetRow(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if row == nil || expired(row.CreatedAt, db.now(), db.ttl) {
		return nil, false, nil
	}
	return row.Result, true, nil
}

// GetRow retrieves a stored row by input hash regardless of age
func (db *DB) GetRow(ctx context.Context, key string) (*CachedResult, error) {
	var row CachedResult
	var id uuid.UUID
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, input_hash, content_type, result, created_at
		 FROM analysis_results WHERE input_hash = $1`,
		key,
	).Scan(&id, &row.InputHash, &row.ContentType, &content, &row.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, &CacheError{Op: "get", Key: key, Cause: err}
	}

	result, err := decodeResult(content)
	if err != nil {
		return nil, &CacheError{Op: "get", Key: key, Cause: err}
	}
	row.ID = id.String()
	row.Result = result
	return &row, nil
}

// Put stores result under key, replacing any previous entry
func (db *DB) Put(ctx context.Context, key, contentType string, result *types.ScoringResult) error {
	jsonBytes, err := encodeResult(result)
	if err != nil {
		return &CacheError{Op: "put", Key: key, Cause: err}
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO analysis_results (id, input_hash, content_type, result, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (input_hash) DO UPDATE SET content_type = $3, result = $4, created_at = $5`,
		uuid.New(), key, contentType, jsonBytes, db.now().UTC(),
	)
	if err != nil {
		return &CacheError{Op: "put", Key: key, Cause: err}
	}
	return nil
}

// Prune deletes rows older than the configured ttl and returns how many were removed
func (db *DB) Prune(ctx context.Context) (int64, error) {
	if db.ttl <= 0 {
		return 0, nil
	}
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM analysis_results WHERE created_at < $1`,
		db.now().Add(-db.ttl).UTC(),
	)
	if err != nil {
		return 0, &CacheError{Op: "prune", Cause: err}
	}
	return tag.RowsAffected(), nil
}
