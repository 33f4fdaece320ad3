// Package codec implements the stateless transport scheme that turns menu
// and order structures into short copy-paste-safe tokens and back. A token
// is built in three layers: field names minified to 1–2 character keys, the
// JSON gzipped, and the bytes base64-encoded. Decoding runs the layers in
// reverse, with aggressive sanitization up front because tokens travel
// through chat apps and human hands.
package codec

import (
	"encoding/json"
	"fmt"

	"github.com/jcmexdev/quickbite/internal/domain"
)

// Kind classifies a decoded payload.
type Kind int

const (
	// KindMenu is a menu payload: a host's item list, possibly with
	// side-channel metadata.
	KindMenu Kind = iota + 1
	// KindOrder is a single participant's submission.
	KindOrder
)

// Payload is the tagged result of decoding a token. Exactly one of the menu
// fields or Order is populated, per Kind.
type Payload struct {
	Kind  Kind
	Menu  []domain.MenuItem
	Extra map[string]any
	Order *domain.Order
}

// EncodeMenu produces a token for a menu. Without extra metadata the wire
// form is a bare item array; with it, an envelope object wrapping the array
// next to the metadata. Both forms decode as KindMenu.
func EncodeMenu(items []domain.MenuItem, extra map[string]any) (string, error) {
	wire := make([]wireItem, len(items))
	for i, it := range items {
		wire[i] = menuItemToWire(it)
	}

	var payload any = wire
	if len(extra) > 0 {
		payload = wireEnvelope{Menu: wire, Extra: extra}
	}
	return encode(payload)
}

// EncodeOrder produces a token for one participant's order. Lines with
// quantity zero are carried as-is; filtering inactive lines is the caller's
// business.
func EncodeOrder(o domain.Order) (string, error) {
	wire := wireOrder{
		EmpID:     o.EmpID,
		EmpName:   o.EmpName,
		Phone:     o.Phone,
		OrderNote: o.OrderNote,
		Total:     o.Total,
		Timestamp: o.Timestamp,
		Items:     make([]wireItem, len(o.Items)),
	}
	for i, l := range o.Items {
		wire.Items[i] = orderLineToWire(l)
	}
	return encode(wire)
}

func encode(payload any) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("codec: encode: %w", err)
	}
	compressed, err := Compress(raw)
	if err != nil {
		return "", err
	}
	return EncodeToText(compressed), nil
}

// Decode turns a token back into a classified payload. The classification
// is exhaustive: a JSON array is a menu, an object with a menu field is a
// menu envelope, an object with an items field is an order, and anything
// else fails. There is no fall-through to a best-guess branch.
func Decode(token string) (*Payload, error) {
	compressed, err := DecodeText(token)
	if err != nil {
		return nil, err
	}
	raw, err := Decompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeFailure, err)
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, fmt.Errorf("%w: malformed payload: %v", ErrDecodeFailure, err)
	}

	switch v := value.(type) {
	case []any:
		menu, err := menuFromWire(v)
		if err != nil {
			return nil, err
		}
		return &Payload{Kind: KindMenu, Menu: menu}, nil

	case map[string]any:
		if rawMenu, ok := fieldValue(v, "menu"); ok {
			list, ok := rawMenu.([]any)
			if !ok {
				return nil, shapeError("menu field is not a list")
			}
			menu, err := menuFromWire(list)
			if err != nil {
				return nil, err
			}
			extra, _ := fieldValue(v, "extra")
			extraObj, _ := extra.(map[string]any)
			return &Payload{Kind: KindMenu, Menu: menu, Extra: extraObj}, nil
		}

		if _, ok := fieldValue(v, "items"); ok {
			order, err := orderFromWire(v)
			if err != nil {
				return nil, err
			}
			return &Payload{Kind: KindOrder, Order: order}, nil
		}

		return nil, shapeError("object is neither a menu envelope nor an order")

	default:
		return nil, shapeError("payload is not a list or object")
	}
}

func menuFromWire(list []any) ([]domain.MenuItem, error) {
	menu := make([]domain.MenuItem, len(list))
	for i, entry := range list {
		obj, ok := entry.(map[string]any)
		if !ok {
			return nil, shapeError("menu entry is not an object")
		}
		menu[i] = menuItemFromWire(obj)
	}
	return menu, nil
}

func orderFromWire(obj map[string]any) (*domain.Order, error) {
	rawItems, _ := fieldValue(obj, "items")
	list, ok := rawItems.([]any)
	if !ok {
		return nil, shapeError("order items field is not a list")
	}

	order := &domain.Order{
		EmpID:     stringField(obj, "empId"),
		EmpName:   stringField(obj, "empName"),
		Phone:     stringField(obj, "phone"),
		OrderNote: stringField(obj, "orderNote"),
		Total:     numberField(obj, "total"),
		Timestamp: stringField(obj, "timestamp"),
		Items:     make([]domain.OrderLine, len(list)),
	}
	for i, entry := range list {
		lineObj, ok := entry.(map[string]any)
		if !ok {
			return nil, shapeError("order line is not an object")
		}
		order.Items[i] = orderLineFromWire(lineObj)
	}
	return order, nil
}

func shapeError(detail string) error {
	return fmt.Errorf("%w: unrecognized shape: %s", ErrDecodeFailure, detail)
}
