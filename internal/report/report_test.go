package report

import (
	"strings"
	"testing"

	"github.com/jcmexdev/quickbite/internal/domain"
)

func collectedOrders() []domain.Order {
	return []domain.Order{
		{
			EmpID: "A1", EmpName: "Wang", Phone: "0911", OrderNote: "deliver to 3F",
			Total: 90, Timestamp: "2026-08-31T04:00:00Z",
			Items: []domain.OrderLine{
				{Name: "Fried Rice", Price: "80", Quantity: 1},
				{Name: "Soup", Price: "10", Note: "no cilantro", Quantity: 1},
			},
		},
		{
			EmpID: "B2", EmpName: "Lin", Phone: "0922",
			Total: 130, Timestamp: "2026-08-31T04:01:00Z",
			Items: []domain.OrderLine{
				{Name: "Fried Rice", Price: "80", HasAddon: true, AddonName: "egg", AddonPrice: "10", Quantity: 1},
				{Name: "Bubble Tea", Price: "40", Note: "half sugar", Quantity: 1},
			},
		},
	}
}

func TestRowsColumnOrder(t *testing.T) {
	rows := Rows(collectedOrders())
	wantHeader := []string{"Timestamp", "Name", "EmployeeID", "Phone", "Items", "Addons", "ItemNotes", "OrderNote", "Total"}
	for i, h := range wantHeader {
		if rows[0][i] != h {
			t.Fatalf("header[%d] = %q, want %q", i, rows[0][i], h)
		}
	}

	first := rows[1]
	if first[0] != "2026-08-31T04:00:00Z" || first[1] != "Wang" || first[2] != "A1" || first[3] != "0911" {
		t.Errorf("identity columns = %v", first[:4])
	}
	if first[4] != "Fried Rice x1; Soup x1" {
		t.Errorf("item summary = %q", first[4])
	}
	if first[6] != "no cilantro" {
		t.Errorf("note summary = %q", first[6])
	}
	if first[8] != "90" {
		t.Errorf("total = %q", first[8])
	}

	second := rows[2]
	if second[5] != "egg" {
		t.Errorf("addon summary = %q", second[5])
	}
}

func TestRenderQuotingAndDelimiters(t *testing.T) {
	orders := []domain.Order{{
		EmpName: `Wang "the hungry"`, Timestamp: "t1", Total: 5,
		Items: []domain.OrderLine{{Name: "Soup", Price: "5", Quantity: 1}},
	}}

	csv := Render(orders, ",")
	lines := strings.Split(csv, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], `"Timestamp","Name"`) {
		t.Errorf("header line = %q", lines[0])
	}
	if !strings.Contains(lines[1], `"Wang ""the hungry"""`) {
		t.Errorf("embedded quotes not doubled: %q", lines[1])
	}

	tsv := Render(orders, "\t")
	if strings.Count(strings.Split(tsv, "\n")[1], "\t") != 8 {
		t.Errorf("tab row should have 8 delimiters: %q", tsv)
	}
}

func TestSummarize(t *testing.T) {
	got := Summarize(collectedOrders())
	if len(got) != 3 {
		t.Fatalf("got %d summaries: %+v", len(got), got)
	}

	// Sorted by name: Bubble Tea, Fried Rice, Soup.
	if got[0].Name != "Bubble Tea" || got[1].Name != "Fried Rice" || got[2].Name != "Soup" {
		t.Fatalf("order = %v, %v, %v", got[0].Name, got[1].Name, got[2].Name)
	}

	fried := got[1]
	if fried.Quantity != 2 {
		t.Errorf("fried rice quantity = %d", fried.Quantity)
	}
	// One plain at 80, one with +10 egg addon.
	if fried.Total != 170 {
		t.Errorf("fried rice total = %v", fried.Total)
	}
	if len(fried.Details) != 1 || fried.Details[0] != "+egg" {
		t.Errorf("fried rice details = %v", fried.Details)
	}

	soup := got[2]
	if len(soup.Details) != 1 || soup.Details[0] != "no cilantro" {
		t.Errorf("soup details = %v", soup.Details)
	}
}

func TestSummarizeSkipsUnnamedAndDeduplicatesDetails(t *testing.T) {
	orders := []domain.Order{
		{Items: []domain.OrderLine{{Name: "", Price: "10", Quantity: 3}}},
		{Items: []domain.OrderLine{{Name: "Tea", Note: "hot", Quantity: 1}}},
		{Items: []domain.OrderLine{{Name: "Tea", Note: "hot", Quantity: 2}}},
	}
	got := Summarize(orders)
	if len(got) != 1 {
		t.Fatalf("got %d summaries", len(got))
	}
	if got[0].Quantity != 3 || len(got[0].Details) != 1 {
		t.Errorf("summary = %+v", got[0])
	}
}
