// Package ledger collects the orders a host has imported, so tokens pasted
// over the course of a lunch run survive restarts and re-pasting a code is
// harmless. Entries are append-only and deduplicated on the same
// (empName, timestamp) natural key the cloud path uses.
package ledger

import (
	"context"
	"time"

	"github.com/jcmexdev/quickbite/internal/domain"
)

// Entry is one collected order with its provenance.
type Entry struct {
	Order domain.Order

	// Source records where the order came from: "token", "room:<id>",
	// or similar. Informational only.
	Source string

	// ImportedAt is when the host imported the order, not when the
	// participant submitted it (that is Order.Timestamp).
	ImportedAt time.Time
}

// Repository is the persistence port for collected orders. The CLI depends
// on this abstraction, not on SQLite directly.
type Repository interface {
	// Append stores an order unless one with the same natural key is
	// already present. It reports whether the order was actually added.
	Append(ctx context.Context, order domain.Order, source string) (added bool, err error)

	// List returns every collected order in import order.
	List(ctx context.Context) ([]Entry, error)

	Close() error
}
