// Package room is the client for the cloud room path: a best-effort shared
// mailbox hosted on a dumb JSON-document store, used as an alternative to
// manual token exchange. The store contract is POST / to create, GET /{id}
// to read and PUT /{id} to replace; any non-2xx status is a hard failure of
// that call.
//
// Consistency contract: the store is versionless at heart and every update
// is a whole-document read-modify-write. When the store advertises a
// document revision (ETag on GET), SubmitOrder performs a conditional write
// and retries on conflict, so a single submission cannot be lost to a race.
// Against a store with no revision support the write is blind and two
// submissions racing between read and write can silently lose one order.
// That is an accepted limitation of the dumb-store deployment.
package room

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jcmexdev/quickbite/internal/domain"
)

// ErrRevisionConflict reports that a conditional write lost the race: the
// document changed between the read and the write.
var ErrRevisionConflict = errors.New("room: document changed underneath the write")

// submitAttempts bounds the read-modify-write retry loop in SubmitOrder.
const submitAttempts = 3

// Client talks to one room store. It carries no room state; every method is
// a function of its arguments and the remote document.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient builds a client for the store at baseURL. A nil httpc gets a
// default client with a sane timeout.
func NewClient(baseURL string, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpc: httpc}
}

type createResponse struct {
	ID string `json:"id"`
}

// CreateRoom stores a fresh {menu, orders: []} document and returns its id.
// Failure is non-fatal to callers: they fall back to the manual-token path.
func (c *Client) CreateRoom(ctx context.Context, menu []domain.MenuItem) (string, error) {
	doc := domain.Room{Menu: menu, Orders: []domain.Order{}}
	body, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("room: create: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("room: create: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("room: create: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", statusError("create", resp)
	}

	var created createResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("room: create: decode response: %w", err)
	}
	if created.ID == "" {
		return "", errors.New("room: create: store returned no id")
	}
	return created.ID, nil
}

// PollRoom reads the current room document. Callers compare the orders list
// against their last-seen copy (domain.OrdersEqual) and only touch local
// state when it differs.
func (c *Client) PollRoom(ctx context.Context, roomID string) (*domain.Room, error) {
	roomDoc, _, err := c.fetch(ctx, roomID)
	return roomDoc, err
}

// SubmitOrder appends an order to the room, idempotently: if the room
// already holds an order with the same (empName, timestamp) pair the write
// is skipped and the current document returned unchanged. The
// read-modify-write is revision-gated when the store supports it and
// retried a bounded number of times on conflict.
func (c *Client) SubmitOrder(ctx context.Context, roomID string, order domain.Order) (*domain.Room, error) {
	for attempt := 0; attempt < submitAttempts; attempt++ {
		current, rev, err := c.fetch(ctx, roomID)
		if err != nil {
			return nil, err
		}
		if current.HasSubmission(order) {
			return current, nil
		}

		updated := *current
		updated.Orders = append(append([]domain.Order{}, current.Orders...), order)

		stored, err := c.replace(ctx, roomID, updated, rev)
		if errors.Is(err, ErrRevisionConflict) {
			slog.InfoContext(ctx, "room submit lost a write race, retrying",
				"room_id", roomID, "attempt", attempt+1)
			continue
		}
		if err != nil {
			return nil, err
		}
		return stored, nil
	}
	return nil, fmt.Errorf("room: submit to %s: %w after %d attempts", roomID, ErrRevisionConflict, submitAttempts)
}

func (c *Client) fetch(ctx context.Context, roomID string) (*domain.Room, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+roomID, nil)
	if err != nil {
		return nil, "", fmt.Errorf("room: read %s: %w", roomID, err)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("room: read %s: %w", roomID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", statusError("read", resp)
	}

	var roomDoc domain.Room
	if err := json.NewDecoder(resp.Body).Decode(&roomDoc); err != nil {
		return nil, "", fmt.Errorf("room: read %s: decode document: %w", roomID, err)
	}
	return &roomDoc, strings.Trim(resp.Header.Get("ETag"), `"`), nil
}

// replace writes the whole document back. A non-empty rev makes the write
// conditional via If-Match; an empty rev is the blind last-writer-wins PUT
// used against stores without revision support.
func (c *Client) replace(ctx context.Context, roomID string, doc domain.Room, rev string) (*domain.Room, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("room: write %s: %w", roomID, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/"+roomID, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("room: write %s: %w", roomID, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if rev != "" {
		req.Header.Set("If-Match", `"`+rev+`"`)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("room: write %s: %w", roomID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusPreconditionFailed {
		return nil, ErrRevisionConflict
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError("write", resp)
	}

	var stored domain.Room
	if err := json.NewDecoder(resp.Body).Decode(&stored); err != nil {
		return nil, fmt.Errorf("room: write %s: decode response: %w", roomID, err)
	}
	return &stored, nil
}

func statusError(op string, resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
	msg := strings.TrimSpace(string(snippet))
	if msg == "" {
		return fmt.Errorf("room: %s: store returned %s", op, resp.Status)
	}
	return fmt.Errorf("room: %s: store returned %s: %s", op, resp.Status, msg)
}
