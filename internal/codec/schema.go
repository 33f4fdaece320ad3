package codec

import (
	"strconv"

	"github.com/jcmexdev/quickbite/internal/domain"
)

// fieldAliases is the single source of truth for key minification: canonical
// field name on the left, 1–2 character wire key on the right. Encoding
// always emits the wire key. Decoding accepts either name for every field,
// wire key taking precedence, so payloads produced by older or foreign
// encoders that used canonical names for any subset of fields still decode.
// Renaming a field is a one-line edit here.
var fieldAliases = map[string]string{
	"name":       "n",
	"price":      "p",
	"note":       "nt",
	"hasAddon":   "h",
	"addonName":  "an",
	"addonPrice": "ap",
	"quantity":   "q",
	"empId":      "id",
	"empName":    "nm",
	"phone":      "ph",
	"orderNote":  "on",
	"total":      "t",
	"timestamp":  "ts",
	"items":      "i",
	"menu":       "m",
	"extra":      "x",
}

// fieldValue looks up a field on a decoded JSON object by canonical name,
// trying the minified wire key first and the canonical key second.
func fieldValue(obj map[string]any, canonical string) (any, bool) {
	if short, ok := fieldAliases[canonical]; ok {
		if v, ok := obj[short]; ok {
			return v, true
		}
	}
	v, ok := obj[canonical]
	return v, ok
}

// stringField reads a string-valued field. JSON numbers are formatted back
// to text rather than rejected: price fields are strings by contract, but
// hand-built payloads occasionally carry them as numbers.
func stringField(obj map[string]any, canonical string) string {
	v, ok := fieldValue(obj, canonical)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func boolField(obj map[string]any, canonical string) bool {
	v, ok := fieldValue(obj, canonical)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

func numberField(obj map[string]any, canonical string) float64 {
	v, ok := fieldValue(obj, canonical)
	if !ok {
		return 0
	}
	switch t := v.(type) {
	case float64:
		return t
	case string:
		f, _ := strconv.ParseFloat(t, 64)
		return f
	default:
		return 0
	}
}

func intField(obj map[string]any, canonical string) int {
	return int(numberField(obj, canonical))
}

// Wire shapes emitted by the encoder. Encoding is one-directional
// (canonical → short): these structs only ever carry the minified keys.

type wireItem struct {
	Name       string `json:"n"`
	Price      string `json:"p"`
	Note       string `json:"nt"`
	HasAddon   bool   `json:"h"`
	AddonName  string `json:"an"`
	AddonPrice string `json:"ap"`
	Quantity   *int   `json:"q,omitempty"`
}

type wireOrder struct {
	EmpID     string     `json:"id"`
	EmpName   string     `json:"nm"`
	Phone     string     `json:"ph"`
	OrderNote string     `json:"on"`
	Total     float64    `json:"t"`
	Timestamp string     `json:"ts"`
	Items     []wireItem `json:"i"`
}

type wireEnvelope struct {
	Menu  []wireItem `json:"m"`
	Extra any        `json:"x,omitempty"`
}

func menuItemToWire(it domain.MenuItem) wireItem {
	return wireItem{
		Name:       it.Name,
		Price:      it.Price,
		Note:       it.Note,
		HasAddon:   it.HasAddon,
		AddonName:  it.AddonName,
		AddonPrice: it.AddonPrice,
	}
}

func orderLineToWire(l domain.OrderLine) wireItem {
	q := l.Quantity
	return wireItem{
		Name:       l.Name,
		Price:      l.Price,
		Note:       l.Note,
		HasAddon:   l.HasAddon,
		AddonName:  l.AddonName,
		AddonPrice: l.AddonPrice,
		Quantity:   &q,
	}
}

func menuItemFromWire(obj map[string]any) domain.MenuItem {
	return domain.MenuItem{
		Name:       stringField(obj, "name"),
		Price:      stringField(obj, "price"),
		Note:       stringField(obj, "note"),
		HasAddon:   boolField(obj, "hasAddon"),
		AddonName:  stringField(obj, "addonName"),
		AddonPrice: stringField(obj, "addonPrice"),
	}
}

func orderLineFromWire(obj map[string]any) domain.OrderLine {
	return domain.OrderLine{
		Name:       stringField(obj, "name"),
		Price:      stringField(obj, "price"),
		Note:       stringField(obj, "note"),
		HasAddon:   boolField(obj, "hasAddon"),
		AddonName:  stringField(obj, "addonName"),
		AddonPrice: stringField(obj, "addonPrice"),
		Quantity:   intField(obj, "quantity"),
	}
}
