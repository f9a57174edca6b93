package catalog

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/giygas/medicines-admin/entities"
	"github.com/shopspring/decimal"
)

const (
	// UnknownName replaces a missing, non-string or blank name
	UnknownName = "Unknown name"
	// NotAvailable replaces a missing or non-numeric price
	NotAvailable = "N/A"
	// CurrencySymbol prefixes every displayed amount
	CurrencySymbol = "£"
)

// Render derives one display row per record, in order. Empty is set when
// there are no records so the page can show its empty state.
func Render(records []entities.MedicineRecord) entities.Table {
	rows := make([]entities.DisplayRow, 0, len(records))
	for i, record := range records {
		rows = append(rows, DeriveRow(record, i))
	}

	return entities.Table{
		Rows:  rows,
		Empty: len(rows) == 0,
	}
}

// DeriveRow projects a record at the given zero-based position. It never
// fails and never modifies the record.
func DeriveRow(record entities.MedicineRecord, position int) entities.DisplayRow {
	fields, _ := record.(map[string]any)

	name, nameOK := displayName(fields["name"])
	price, priceOK := displayPrice(fields["price"])

	return entities.DisplayRow{
		Index:        position + 1,
		DisplayName:  name,
		DisplayPrice: price,
		HasIssues:    !nameOK || !priceOK,
	}
}

func displayName(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return UnknownName, false
	}

	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return UnknownName, false
	}
	return trimmed, true
}

func displayPrice(v any) (string, bool) {
	price, ok := numericValue(v)
	if !ok {
		return NotAvailable, false
	}
	return FormatPrice(price), true
}

// numericValue reports whether v is a number type holding a finite value.
// Numeric strings do not count.
func numericValue(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case json.Number:
		parsed, err := strconv.ParseFloat(n.String(), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// FormatPrice renders a finite amount with exactly two decimals
func FormatPrice(price float64) string {
	return CurrencySymbol + decimal.NewFromFloat(price).StringFixed(2)
}
