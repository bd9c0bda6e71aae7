package shopping

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// IngredientLine is one ingredient of one recipe with its quantity.
type IngredientLine struct {
	IngredientID int64
	Name         string
	Unit         string
	Quantity     decimal.Decimal
}

// LineSource is anything that can list its ingredient lines.
// The aggregator only ever talks to recipes through this interface.
type LineSource interface {
	IngredientLines() []IngredientLine
}

// AggregatedLine is the summed total of one ingredient across recipes.
type AggregatedLine struct {
	IngredientID int64           `json:"id"`
	Name         string          `json:"name"`
	Unit         string          `json:"measurement_unit"`
	Quantity     decimal.Decimal `json:"amount"`
}

// SortLines orders lines by name (case-insensitive), then by ingredient id.
func SortLines(lines []AggregatedLine) {
	sort.SliceStable(lines, func(i, j int) bool {
		a, b := strings.ToLower(lines[i].Name), strings.ToLower(lines[j].Name)
		if a != b {
			return a < b
		}
		return lines[i].IngredientID < lines[j].IngredientID
	})
}

// FormatQuantity prints a quantity at its own scale, so 8.50 stays 8.50.
func FormatQuantity(q decimal.Decimal) string {
	if exp := q.Exponent(); exp < 0 {
		return q.StringFixed(-exp)
	}
	return q.String()
}

// FormatLine renders "{name} - {quantity} {unit}".
func FormatLine(l AggregatedLine) string {
	return l.Name + " - " + FormatQuantity(l.Quantity) + " " + l.Unit
}
