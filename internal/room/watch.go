package room

import (
	"context"
	"log/slog"
	"time"

	"github.com/jcmexdev/quickbite/internal/domain"
)

// Watch polls the room on a fixed interval and calls onChange whenever the
// orders list structurally differs from the previous poll, including once
// for the initial read. Transient poll failures are logged and retried on
// the next tick; consistency stays eventual and best-effort. Watch returns
// when ctx is cancelled, which is how the caller leaves the aggregation
// view.
func (c *Client) Watch(ctx context.Context, roomID string, interval time.Duration, onChange func(domain.Room)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var lastSeen []domain.Order
	seeded := false

	poll := func() {
		current, err := c.PollRoom(ctx, roomID)
		if err != nil {
			if ctx.Err() == nil {
				slog.WarnContext(ctx, "room poll failed", "room_id", roomID, "error", err)
			}
			return
		}
		if seeded && domain.OrdersEqual(lastSeen, current.Orders) {
			return
		}
		lastSeen = current.Orders
		seeded = true
		onChange(*current)
	}

	poll()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			poll()
		}
	}
}
