package domain

// Room is the cloud-hosted shared document for one event: the menu plus
// every order collected so far. The remote store owns it; clients always
// read and write the whole document, there is no partial update.
type Room struct {
	Menu   []MenuItem `json:"menu"`
	Orders []Order    `json:"orders"`
}

// HasSubmission reports whether the room already holds an order with the
// same (empName, timestamp) natural key as o.
func (r Room) HasSubmission(o Order) bool {
	for _, existing := range r.Orders {
		if existing.SameSubmission(o) {
			return true
		}
	}
	return false
}

// OrdersEqual compares two order lists structurally. Polling callers use it
// to decide whether anything actually changed since the last read.
func OrdersEqual(a, b []Order) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !ordersIdentical(a[i], b[i]) {
			return false
		}
	}
	return true
}

func ordersIdentical(a, b Order) bool {
	if a.EmpID != b.EmpID || a.EmpName != b.EmpName || a.Phone != b.Phone ||
		a.OrderNote != b.OrderNote || a.Total != b.Total || a.Timestamp != b.Timestamp {
		return false
	}
	if len(a.Items) != len(b.Items) {
		return false
	}
	for i := range a.Items {
		if a.Items[i] != b.Items[i] {
			return false
		}
	}
	return true
}
