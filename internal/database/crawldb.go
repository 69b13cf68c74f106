package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/wordcrawl/internal/model"
)

// CrawlDB stores completed crawl runs in a single SQLite file.
//
// Design decision: We use one database file for all runs rather than a
// file per run. Run history queries stay trivial and backup is a single
// file copy.
type CrawlDB struct {
	// db is the underlying SQL connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures CrawlDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging. Recommended; readers are not
	// blocked while a run is being saved.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a CrawlDB in the given directory.
func Open(dbDir string, opts Options) (*CrawlDB, error) {
	dbPath := filepath.Join(dbDir, "wordcrawl.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection strings: mode=rwc allows creation,
	// mode=rw requires the file to exist.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports a single writer; more connections gain nothing here.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	cdb := &CrawlDB{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := cdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return cdb, nil
}

// Close closes the database connection.
func (cdb *CrawlDB) Close() error {
	return cdb.db.Close()
}

// createTables creates the schema if it doesn't exist.
func (cdb *CrawlDB) createTables() error {
	schema := `
	-- One row per completed crawl run. Seeds and word counts are stored
	-- as JSON; the word_counts array preserves ranking order.
	CREATE TABLE IF NOT EXISTS crawl_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at TEXT NOT NULL,
		elapsed_ms INTEGER NOT NULL,
		seeds TEXT NOT NULL,
		urls_visited INTEGER NOT NULL,
		word_counts TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started ON crawl_runs(started_at);
	`

	_, err := cdb.db.ExecContext(context.Background(), schema)
	return err
}

// RunRecord is a stored crawl run.
type RunRecord struct {
	ID          int64
	StartedAt   time.Time
	Elapsed     time.Duration
	Seeds       []string
	URLsVisited int
	WordCounts  []model.WordCount
}

// SaveRun stores a completed crawl result and returns the new row id.
func (cdb *CrawlDB) SaveRun(ctx context.Context, result *model.CrawlResult) (int64, error) {
	seedsJSON, err := json.Marshal(result.Seeds)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize seeds: %w", err)
	}
	wordsJSON, err := json.Marshal(result.WordCounts)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize word counts: %w", err)
	}

	res, err := cdb.db.ExecContext(ctx,
		`INSERT INTO crawl_runs (started_at, elapsed_ms, seeds, urls_visited, word_counts)
		 VALUES (?, ?, ?, ?, ?)`,
		result.StartedAt.UTC().Format(time.RFC3339Nano),
		result.Elapsed.Milliseconds(),
		string(seedsJSON),
		result.URLsVisited,
		string(wordsJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert crawl run: %w", err)
	}
	return res.LastInsertId()
}

// RecentRuns returns up to limit stored runs, newest first.
func (cdb *CrawlDB) RecentRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	rows, err := cdb.db.QueryContext(ctx,
		`SELECT id, started_at, elapsed_ms, seeds, urls_visited, word_counts
		 FROM crawl_runs ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query crawl runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var (
			rec       RunRecord
			startedAt string
			elapsedMS int64
			seeds     string
			words     string
		)
		if err := rows.Scan(&rec.ID, &startedAt, &elapsedMS, &seeds, &rec.URLsVisited, &words); err != nil {
			return nil, fmt.Errorf("failed to scan crawl run: %w", err)
		}

		rec.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse run timestamp: %w", err)
		}
		rec.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		if err := json.Unmarshal([]byte(seeds), &rec.Seeds); err != nil {
			return nil, fmt.Errorf("failed to parse run seeds: %w", err)
		}
		if err := json.Unmarshal([]byte(words), &rec.WordCounts); err != nil {
			return nil, fmt.Errorf("failed to parse run word counts: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
