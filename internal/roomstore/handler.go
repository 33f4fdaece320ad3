package roomstore

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jcmexdev/quickbite/internal/domain"
)

// maxDocumentBytes caps an uploaded room document. Even a very large lunch
// run stays far below this.
const maxDocumentBytes = 1 << 20

// Handler serves the three-call document contract over a DocumentStore.
type Handler struct {
	store DocumentStore
}

func NewHandler(store DocumentStore) *Handler {
	return &Handler{store: store}
}

// NewRouter wires the handler behind the standard middleware stack.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Post("/", h.CreateDocument)
	r.Get("/{id}", h.GetDocument)
	r.Put("/{id}", h.ReplaceDocument)
	return r
}

// CreateResponse is the body returned for a created document.
type CreateResponse struct {
	ID  string `json:"id"`
	Rev string `json:"rev"`
}

// ErrorResponse is the uniform JSON error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// CreateDocument stores a new room document and returns its id.
func (h *Handler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	doc, ok := readRoomDocument(w, r)
	if !ok {
		return
	}

	id, rev, err := h.store.Create(r.Context(), doc)
	if err != nil {
		slog.ErrorContext(r.Context(), "document create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "store_error", "could not store document")
		return
	}

	slog.InfoContext(r.Context(), "document created", "doc_id", id)
	w.Header().Set("ETag", quoteRev(rev))
	writeJSON(w, http.StatusCreated, CreateResponse{ID: id, Rev: rev})
}

// GetDocument returns the current document with its revision as an ETag.
func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	doc, rev, err := h.store.Get(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found", "")
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "document read failed", "doc_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "store_error", "could not read document")
		return
	}

	w.Header().Set("ETag", quoteRev(rev))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

// ReplaceDocument overwrites the whole document. An If-Match header makes
// the write conditional on the stored revision; without one the write is
// last-writer-wins, which is the documented consistency level of the store.
func (h *Handler) ReplaceDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	doc, ok := readRoomDocument(w, r)
	if !ok {
		return
	}

	rev, err := h.store.Put(r.Context(), id, doc, ifMatchRev(r))
	switch {
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "")
		return
	case errors.Is(err, ErrRevisionMismatch):
		writeError(w, http.StatusPreconditionFailed, "revision_mismatch",
			"document was updated by someone else, re-read and retry")
		return
	case err != nil:
		slog.ErrorContext(r.Context(), "document write failed", "doc_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "store_error", "could not write document")
		return
	}

	w.Header().Set("ETag", quoteRev(rev))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

// readRoomDocument decodes and validates the request body as a room
// document, then re-marshals it to a canonical form so the store never
// holds junk fields or malformed JSON.
func readRoomDocument(w http.ResponseWriter, r *http.Request) (json.RawMessage, bool) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxDocumentBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read_error", err.Error())
		return nil, false
	}
	if len(body) > maxDocumentBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "document_too_large", "")
		return nil, false
	}

	var roomDoc domain.Room
	if err := json.Unmarshal(body, &roomDoc); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return nil, false
	}
	if roomDoc.Orders == nil {
		roomDoc.Orders = []domain.Order{}
	}
	if roomDoc.Menu == nil {
		roomDoc.Menu = []domain.MenuItem{}
	}

	canonical, err := json.Marshal(roomDoc)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return nil, false
	}
	return canonical, true
}

// ifMatchRev extracts the expected revision from If-Match. A missing header
// or a `*` wildcard means unconditional.
func ifMatchRev(r *http.Request) string {
	rev := strings.Trim(r.Header.Get("If-Match"), `"`)
	if rev == "*" {
		return ""
	}
	return rev
}

func quoteRev(rev string) string {
	return `"` + rev + `"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}
