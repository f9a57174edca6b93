// Package entities holds the data types shared across the admin console:
// untrusted backend records, their display projections and the snapshot of
// what the page currently shows.
package entities

// MedicineRecord is one element of the backend's "medicines" array.
// It is untrusted: any JSON value may appear here.
type MedicineRecord = any

// DisplayRow is the render-ready projection of one MedicineRecord.
type DisplayRow struct {
	Index        int    `json:"index"`
	DisplayName  string `json:"display_name"`
	DisplayPrice string `json:"display_price"`
	HasIssues    bool   `json:"has_issues"`
}

// Table is the full content of the table region. Empty is set only when a
// fetch produced zero rows, which is distinct from never having loaded.
type Table struct {
	Rows  []DisplayRow `json:"rows"`
	Empty bool         `json:"empty"`
}

// AveragePriceReport is the payload of the average-price endpoint.
// AveragePrice is nil when the backend reports null or omits the field.
type AveragePriceReport struct {
	AveragePrice *float64 `json:"average_price"`
	Count        int      `json:"count"`
}

// AverageSummary is what the average-price region displays.
type AverageSummary struct {
	Headline string `json:"headline"`
	Detail   string `json:"detail,omitempty"`
}

// String joins the headline and its detail the way the page shows them.
func (a AverageSummary) String() string {
	if a.Detail == "" {
		return a.Headline
	}
	return a.Headline + " " + a.Detail
}
