package roomstore

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
)

type memoryDoc struct {
	doc json.RawMessage
	rev int
}

// MemoryStore is the in-process DocumentStore used by tests and -dev mode.
type MemoryStore struct {
	mu   sync.Mutex
	docs map[string]memoryDoc
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]memoryDoc)}
}

func (s *MemoryStore) Create(_ context.Context, doc json.RawMessage) (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := newDocumentID()
	s.docs[id] = memoryDoc{doc: append(json.RawMessage(nil), doc...), rev: 1}
	return id, "1", nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (json.RawMessage, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.docs[id]
	if !ok {
		return nil, "", ErrNotFound
	}
	return append(json.RawMessage(nil), entry.doc...), strconv.Itoa(entry.rev), nil
}

func (s *MemoryStore) Put(_ context.Context, id string, doc json.RawMessage, expectRev string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.docs[id]
	if !ok {
		return "", ErrNotFound
	}
	if expectRev != "" && expectRev != strconv.Itoa(entry.rev) {
		return "", ErrRevisionMismatch
	}
	entry.doc = append(json.RawMessage(nil), doc...)
	entry.rev++
	s.docs[id] = entry
	return strconv.Itoa(entry.rev), nil
}
