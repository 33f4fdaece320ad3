// Package report projects a collected order list into the host-facing
// outputs: per-item aggregate statistics and the delimited text export.
// Everything here is a pure function of the order list.
package report

import (
	"sort"
	"strconv"
	"strings"

	"github.com/jcmexdev/quickbite/internal/domain"
)

// headers is the fixed export column order. Consumers paste the output into
// spreadsheets, so the order is a contract.
var headers = []string{
	"Timestamp", "Name", "EmployeeID", "Phone",
	"Items", "Addons", "ItemNotes", "OrderNote", "Total",
}

// Rows projects orders into the export table, header row first, one row per
// order.
func Rows(orders []domain.Order) [][]string {
	rows := make([][]string, 0, len(orders)+1)
	rows = append(rows, headers)
	for _, o := range orders {
		rows = append(rows, []string{
			o.Timestamp,
			o.EmpName,
			o.EmpID,
			o.Phone,
			itemSummary(o.Items),
			addonSummary(o.Items),
			noteSummary(o.Items),
			o.OrderNote,
			strconv.FormatFloat(o.Total, 'f', -1, 64),
		})
	}
	return rows
}

// Render produces the delimited text form of Rows: every cell quote-wrapped
// (embedded quotes doubled), rows joined by newlines. Use "," for file
// export and "\t" for spreadsheet paste.
func Render(orders []domain.Order, delimiter string) string {
	var b strings.Builder
	for i, row := range Rows(orders) {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, cell := range row {
			if j > 0 {
				b.WriteString(delimiter)
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(cell, `"`, `""`))
			b.WriteByte('"')
		}
	}
	return b.String()
}

func itemSummary(lines []domain.OrderLine) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		parts = append(parts, l.Name+" x"+strconv.Itoa(l.Quantity))
	}
	return strings.Join(parts, "; ")
}

func addonSummary(lines []domain.OrderLine) string {
	var parts []string
	for _, l := range lines {
		if l.HasAddon && l.AddonName != "" {
			parts = append(parts, l.AddonName)
		}
	}
	return strings.Join(parts, "; ")
}

func noteSummary(lines []domain.OrderLine) string {
	var parts []string
	for _, l := range lines {
		if l.Note != "" {
			parts = append(parts, l.Note)
		}
	}
	return strings.Join(parts, "; ")
}

// ItemSummary aggregates one distinct item name across every order.
type ItemSummary struct {
	Name     string
	Quantity int
	Total    float64
	// Details collects the distinct note/addon tags seen for this item,
	// in first-seen order.
	Details []string
}

// Summarize builds per-item statistics across orders, sorted by item name
// for stable output. Lines without a name are skipped.
func Summarize(orders []domain.Order) []ItemSummary {
	index := make(map[string]int)
	var summaries []ItemSummary

	for _, o := range orders {
		for _, l := range o.Items {
			if l.Name == "" {
				continue
			}
			i, ok := index[l.Name]
			if !ok {
				i = len(summaries)
				index[l.Name] = i
				summaries = append(summaries, ItemSummary{Name: l.Name})
			}
			summaries[i].Quantity += l.Quantity
			summaries[i].Total += l.LineTotal()

			if detail := lineDetail(l); detail != "" && !contains(summaries[i].Details, detail) {
				summaries[i].Details = append(summaries[i].Details, detail)
			}
		}
	}

	sort.Slice(summaries, func(a, b int) bool { return summaries[a].Name < summaries[b].Name })
	return summaries
}

func lineDetail(l domain.OrderLine) string {
	var tags []string
	if l.Note != "" {
		tags = append(tags, l.Note)
	}
	if l.HasAddon && l.AddonName != "" {
		tags = append(tags, "+"+l.AddonName)
	}
	return strings.Join(tags, " / ")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
