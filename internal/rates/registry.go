// Package rates keeps the per-client, per-month commission percentages
// and the generation-parameter word bank. Values are persisted in a
// local SQLite database; last write wins, no historical versioning.
package rates

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/talentops/agency-ledger/internal/common"
)

// MonthKey is the canonical yearMonth format for rate keys.
const MonthKey = "2006-01"

// Registry is the process-wide commission rate store.
type Registry struct {
	db *sql.DB
}

// Open opens (and if needed creates) the registry database at dbPath.
func Open(dbPath string) (*Registry, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("%w: registry path", common.ErrMissingConfig)
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create registry directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open registry database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping registry database: %w", err)
	}

	r := &Registry{db: db}
	if err := r.migrate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Close closes the database connection.
func (r *Registry) Close() error {
	return r.db.Close()
}

func (r *Registry) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS commission_rates (
		client     TEXT NOT NULL,
		month      TEXT NOT NULL,
		percent    REAL NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		PRIMARY KEY (client, month)
	);
	CREATE TABLE IF NOT EXISTS word_lists (
		name       TEXT PRIMARY KEY,
		words      TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);`

	if _, err := r.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to migrate registry schema: %w", err)
	}
	return nil
}

// Rate returns the commission percentage for (client, month), or 0 if
// never set.
func (r *Registry) Rate(ctx context.Context, client string, month time.Time) (float64, error) {
	var pct float64
	err := r.db.QueryRowContext(ctx,
		`SELECT percent FROM commission_rates WHERE client = ? AND month = ?`,
		client, month.Format(MonthKey),
	).Scan(&pct)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read rate for %s: %w", client, err)
	}
	return pct, nil
}

// SetRate stores the commission percentage for (client, month). Admin
// only; last write wins.
func (r *Registry) SetRate(ctx context.Context, client string, month time.Time, pct float64) error {
	if client == "" {
		return fmt.Errorf("%w: client name is required", common.ErrValidation)
	}
	if pct < 0 || pct > 100 {
		return fmt.Errorf("%w: percentage %.2f out of range [0,100]", common.ErrValidation, pct)
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO commission_rates (client, month, percent, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(client, month) DO UPDATE SET percent = excluded.percent, updated_at = excluded.updated_at`,
		client, month.Format(MonthKey), pct, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to set rate for %s: %w", client, err)
	}
	return nil
}

// RatesForMonth returns every client rate recorded for a month.
func (r *Registry) RatesForMonth(ctx context.Context, month time.Time) (map[string]float64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT client, percent FROM commission_rates WHERE month = ?`,
		month.Format(MonthKey),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list rates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[string]float64)
	for rows.Next() {
		var client string
		var pct float64
		if err := rows.Scan(&client, &pct); err != nil {
			return nil, fmt.Errorf("failed to scan rate row: %w", err)
		}
		out[client] = pct
	}
	return out, rows.Err()
}
