// Package vision is the boundary to the external menu-recognition service:
// image bytes in, a list of {name, price, note} out. Everything behind the
// Analyzer interface is a black box to the rest of the system.
package vision

import (
	"context"
	"strconv"

	"github.com/jcmexdev/quickbite/internal/domain"
)

// ExtractedItem is one item the service read off a menu photo.
type ExtractedItem struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Note  string  `json:"note,omitempty"`
}

// Analyzer extracts menu items from an image.
type Analyzer interface {
	AnalyzeMenu(ctx context.Context, image []byte, mimeType string) ([]ExtractedItem, error)
}

// MenuItems converts extracted items into menu items, formatting prices
// back to the string form the rest of the system carries.
func MenuItems(items []ExtractedItem) []domain.MenuItem {
	out := make([]domain.MenuItem, len(items))
	for i, it := range items {
		out[i] = domain.MenuItem{
			Name:  it.Name,
			Price: strconv.FormatFloat(it.Price, 'f', -1, 64),
			Note:  it.Note,
		}
	}
	return out
}
