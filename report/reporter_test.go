package report

import (
	"context"
	"errors"
	"testing"

	"github.com/giygas/medicines-admin/data"
	"github.com/giygas/medicines-admin/entities"
	"github.com/giygas/medicines-admin/testutil"
	"github.com/stretchr/testify/assert"
)

func price(v float64) *float64 { return &v }

func TestSummarize(t *testing.T) {
	tests := []struct {
		name   string
		report entities.AveragePriceReport
		want   string
	}{
		{"null average", entities.AveragePriceReport{AveragePrice: nil, Count: 0}, "N/A"},
		{"null average with count", entities.AveragePriceReport{AveragePrice: nil, Count: 3}, "N/A"},
		{"zero count", entities.AveragePriceReport{AveragePrice: price(4), Count: 0}, "N/A"},
		{"average", entities.AveragePriceReport{AveragePrice: price(12.5), Count: 4}, "£12.5 (based on 4 medicines)"},
		{"whole average", entities.AveragePriceReport{AveragePrice: price(3), Count: 1}, "£3 (based on 1 medicines)"},
		{"long average", entities.AveragePriceReport{AveragePrice: price(10.0 / 3), Count: 3}, "£3.3333333333333335 (based on 3 medicines)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summarize(tt.report).String())
		})
	}
}

func TestFetchAveragePrice(t *testing.T) {
	api := &testutil.FakeAPI{Report: entities.AveragePriceReport{AveragePrice: price(12.5), Count: 4}}
	board := data.NewBoard()

	NewReporter(api, board).FetchAveragePrice(context.Background())

	got := board.Average()
	assert.Equal(t, "£12.5", got.Headline)
	assert.Equal(t, "(based on 4 medicines)", got.Detail)
	assert.Equal(t, 1, api.Count("report"))
	assert.Equal(t, 0, api.Count("list"), "the report must not touch the table")
}

func TestFetchAveragePriceFailure(t *testing.T) {
	api := &testutil.FakeAPI{ReportErr: errors.New("status 500")}
	board := data.NewBoard()
	board.SetAverage(entities.AverageSummary{Headline: "£1"})

	assert.NotPanics(t, func() {
		NewReporter(api, board).FetchAveragePrice(context.Background())
	})
	assert.Equal(t, "Error loading", board.Average().String())
}
