package domain

import "strconv"

// OrderLine is a menu item as chosen by a participant. A quantity of zero
// means the line is inactive; producers usually filter those out before
// encoding, but nothing in the system rejects them.
type OrderLine struct {
	Name       string `json:"name"`
	Price      string `json:"price"`
	Note       string `json:"note"`
	HasAddon   bool   `json:"hasAddon"`
	AddonName  string `json:"addonName"`
	AddonPrice string `json:"addonPrice"`
	Quantity   int    `json:"quantity"`
}

// UnitPrice is the per-unit cost of the line: base price plus the addon
// price when the addon is active. Unparseable price strings count as zero,
// matching how the ordering form treats free-text prices.
func (l OrderLine) UnitPrice() float64 {
	price := parsePrice(l.Price)
	if l.HasAddon {
		price += parsePrice(l.AddonPrice)
	}
	return price
}

// LineTotal is UnitPrice multiplied by the quantity.
func (l OrderLine) LineTotal() float64 {
	return l.UnitPrice() * float64(l.Quantity)
}

// Order is one participant's submission. EmpName together with Timestamp is
// the natural key used for duplicate suppression in the cloud path; callers
// supply both, nothing here generates them.
type Order struct {
	EmpID     string      `json:"empId"`
	EmpName   string      `json:"empName"`
	Phone     string      `json:"phone"`
	OrderNote string      `json:"orderNote"`
	Total     float64     `json:"total"`
	Timestamp string      `json:"timestamp"`
	Items     []OrderLine `json:"items"`
}

// SameSubmission reports whether two orders share the (empName, timestamp)
// natural key.
func (o Order) SameSubmission(other Order) bool {
	return o.EmpName == other.EmpName && o.Timestamp == other.Timestamp
}

// Subtotal sums the line totals of the given lines.
func Subtotal(lines []OrderLine) float64 {
	var sum float64
	for _, l := range lines {
		sum += l.LineTotal()
	}
	return sum
}

// ActiveLines returns the lines with a name and a positive quantity, the
// ones worth encoding into a submission.
func ActiveLines(lines []OrderLine) []OrderLine {
	out := make([]OrderLine, 0, len(lines))
	for _, l := range lines {
		if l.Name != "" && l.Quantity > 0 {
			out = append(out, l)
		}
	}
	return out
}

func parsePrice(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
