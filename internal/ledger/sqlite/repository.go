// Package sqlite provides a SQLite-backed implementation of
// ledger.Repository.
//
// The pure-Go modernc.org/sqlite driver is used so the binary builds
// without CGO. WAL mode keeps a concurrent reader (an export running while
// an import appends) from blocking the writer.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jcmexdev/quickbite/internal/domain"
	"github.com/jcmexdev/quickbite/internal/ledger"

	// Register the pure-Go SQLite driver.
	_ "modernc.org/sqlite"
)

// schema is the DDL executed once on open. The UNIQUE constraint on the
// natural key is what makes Append idempotent: a duplicate import is a
// no-op at the database level, not an application-level check that could
// race.
const schema = `
CREATE TABLE IF NOT EXISTS collected_orders (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,

    -- Natural key of a submission, mirrored out of the payload so the
    -- UNIQUE constraint can see it.
    emp_name     TEXT    NOT NULL,
    submitted_at TEXT    NOT NULL,

    -- Full order document, canonical JSON field names.
    payload      TEXT    NOT NULL,

    -- Where the order came from ("token", "room:<id>", ...).
    source       TEXT    NOT NULL DEFAULT '',

    -- RFC3339 TEXT, SQLite idiom for timestamps.
    imported_at  TEXT    NOT NULL,

    UNIQUE (emp_name, submitted_at)
);
`

// Repository is the SQLite implementation of ledger.Repository.
type Repository struct {
	db *sql.DB
}

// Open opens (or creates) the ledger database at path and applies the
// schema.
func Open(path string) (*Repository, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("ledger: open %q: %w", path, err)
	}

	// SQLite performs best with a single writer connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ledger: apply schema: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// Append inserts the order unless its natural key is already present.
func (r *Repository) Append(ctx context.Context, order domain.Order, source string) (bool, error) {
	payload, err := json.Marshal(order)
	if err != nil {
		return false, fmt.Errorf("ledger: marshal order: %w", err)
	}

	const q = `
		INSERT OR IGNORE INTO collected_orders
			(emp_name, submitted_at, payload, source, imported_at)
		VALUES (?, ?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, q,
		order.EmpName,
		order.Timestamp,
		string(payload),
		source,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return false, fmt.Errorf("ledger: append order for %q: %w", order.EmpName, err)
	}

	added, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("ledger: append order for %q: %w", order.EmpName, err)
	}
	return added > 0, nil
}

// List returns every collected order, oldest import first.
func (r *Repository) List(ctx context.Context) ([]ledger.Entry, error) {
	const q = `
		SELECT payload, source, imported_at
		FROM   collected_orders
		ORDER  BY id`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("ledger: list: %w", err)
	}
	defer rows.Close()

	var entries []ledger.Entry
	for rows.Next() {
		var payload, source, importedAt string
		if err := rows.Scan(&payload, &source, &importedAt); err != nil {
			return nil, fmt.Errorf("ledger: list: %w", err)
		}

		var entry ledger.Entry
		if err := json.Unmarshal([]byte(payload), &entry.Order); err != nil {
			return nil, fmt.Errorf("ledger: list: corrupt payload: %w", err)
		}
		entry.Source = source
		entry.ImportedAt, err = time.Parse(time.RFC3339Nano, importedAt)
		if err != nil {
			return nil, fmt.Errorf("ledger: list: parse time %q: %w", importedAt, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ledger: list: %w", err)
	}
	return entries, nil
}
