// Package roomstore implements the dumb JSON-document store the room client
// consumes: create a document, read it, replace it wholesale. Documents
// carry a monotonic revision so writers that care can make their PUT
// conditional; writers that don't still get last-writer-wins.
package roomstore

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrNotFound reports an unknown document id.
	ErrNotFound = errors.New("roomstore: document not found")
	// ErrRevisionMismatch reports a conditional write against a stale
	// revision.
	ErrRevisionMismatch = errors.New("roomstore: revision mismatch")
)

// DocumentStore is the persistence port. Put with an empty expectRev is an
// unconditional replace; with a revision it only succeeds when the stored
// revision still matches.
type DocumentStore interface {
	Create(ctx context.Context, doc json.RawMessage) (id, rev string, err error)
	Get(ctx context.Context, id string) (doc json.RawMessage, rev string, err error)
	Put(ctx context.Context, id string, doc json.RawMessage, expectRev string) (rev string, err error)
}

// newDocumentID returns a 20-character hex id. Ids are deliberately shorter
// than 25 characters and colon-free so the manual-input heuristic on the
// client side can tell them apart from encoded tokens.
func newDocumentID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:20]
}
