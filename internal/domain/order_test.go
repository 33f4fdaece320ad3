package domain

import "testing"

func TestUnitPrice(t *testing.T) {
	tests := []struct {
		name string
		line OrderLine
		want float64
	}{
		{
			name: "base price only",
			line: OrderLine{Price: "85"},
			want: 85,
		},
		{
			name: "addon active",
			line: OrderLine{Price: "85", HasAddon: true, AddonPrice: "10"},
			want: 95,
		},
		{
			name: "addon present but inactive",
			line: OrderLine{Price: "85", HasAddon: false, AddonPrice: "10"},
			want: 85,
		},
		{
			name: "unparseable price counts as zero",
			line: OrderLine{Price: "market price", HasAddon: true, AddonPrice: "10"},
			want: 10,
		},
		{
			name: "decimal prices",
			line: OrderLine{Price: "12.5", HasAddon: true, AddonPrice: "2.25"},
			want: 14.75,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.line.UnitPrice(); got != tt.want {
				t.Errorf("UnitPrice() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLineTotal(t *testing.T) {
	l := OrderLine{Price: "85", HasAddon: true, AddonPrice: "10", Quantity: 3}
	if got := l.LineTotal(); got != 285 {
		t.Errorf("LineTotal() = %v, want 285", got)
	}

	inactive := OrderLine{Price: "85", Quantity: 0}
	if got := inactive.LineTotal(); got != 0 {
		t.Errorf("LineTotal() with zero quantity = %v, want 0", got)
	}
}

func TestSubtotal(t *testing.T) {
	lines := []OrderLine{
		{Name: "fried rice", Price: "85", Quantity: 2},
		{Name: "milk tea", Price: "45", HasAddon: true, AddonPrice: "10", Quantity: 1},
		{Name: "soup", Price: "30", Quantity: 0},
	}
	if got := Subtotal(lines); got != 225 {
		t.Errorf("Subtotal() = %v, want 225", got)
	}
	if got := Subtotal(nil); got != 0 {
		t.Errorf("Subtotal(nil) = %v, want 0", got)
	}
}

func TestActiveLines(t *testing.T) {
	lines := []OrderLine{
		{Name: "fried rice", Price: "85", Quantity: 2},
		{Name: "", Price: "45", Quantity: 1},
		{Name: "soup", Price: "30", Quantity: 0},
	}
	got := ActiveLines(lines)
	if len(got) != 1 || got[0].Name != "fried rice" {
		t.Fatalf("ActiveLines() = %+v, want only the fried rice line", got)
	}
}

func TestSameSubmission(t *testing.T) {
	a := Order{EmpName: "ana", Timestamp: "2026-08-30T12:00:00Z"}
	b := Order{EmpName: "ana", Timestamp: "2026-08-30T12:00:00Z", Total: 99}
	c := Order{EmpName: "ana", Timestamp: "2026-08-30T12:05:00Z"}

	if !a.SameSubmission(b) {
		t.Error("orders with the same name and timestamp should match")
	}
	if a.SameSubmission(c) {
		t.Error("orders with different timestamps should not match")
	}
}
