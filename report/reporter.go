// Package report fetches and displays the average-price aggregate. Its
// lifecycle is independent from the medicines table.
package report

import (
	"context"
	"fmt"
	"strconv"

	"github.com/giygas/medicines-admin/catalog"
	"github.com/giygas/medicines-admin/entities"
	"github.com/giygas/medicines-admin/interfaces"
	"github.com/giygas/medicines-admin/logging"
)

const (
	// NotAvailableText is shown when there is nothing to average
	NotAvailableText = "N/A"
	// ErrorLoadingText is shown when the report cannot be fetched
	ErrorLoadingText = "Error loading"
)

// Compile-time check to ensure Reporter implements AverageReporter
var _ interfaces.AverageReporter = (*Reporter)(nil)

// Reporter owns the average-price region
type Reporter struct {
	api  interfaces.MedicinesAPI
	view interfaces.AverageView
}

// NewReporter creates a reporter writing to view
func NewReporter(api interfaces.MedicinesAPI, view interfaces.AverageView) *Reporter {
	return &Reporter{api: api, view: view}
}

// FetchAveragePrice fetches the report and updates the region. Failures are
// displayed, never returned.
func (r *Reporter) FetchAveragePrice(ctx context.Context) {
	report, err := r.api.AveragePrice(ctx)
	if err != nil {
		logging.Warn("Error fetching average price", "error", err)
		r.view.SetAverage(entities.AverageSummary{Headline: ErrorLoadingText})
		return
	}

	r.view.SetAverage(Summarize(report))
}

// Summarize turns a report into display text. A null average or a zero
// count is "N/A"; otherwise the average is shown as the backend sent it,
// without rounding, next to the number of medicines it covers.
func Summarize(report entities.AveragePriceReport) entities.AverageSummary {
	if report.AveragePrice == nil || report.Count == 0 {
		return entities.AverageSummary{Headline: NotAvailableText}
	}

	return entities.AverageSummary{
		Headline: catalog.CurrencySymbol + strconv.FormatFloat(*report.AveragePrice, 'f', -1, 64),
		Detail:   fmt.Sprintf("(based on %d medicines)", report.Count),
	}
}
