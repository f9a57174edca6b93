package data

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/giygas/medicines-admin/entities"
)

func TestNewBoard(t *testing.T) {
	b := NewBoard()

	if b == nil {
		t.Fatal("NewBoard returned nil")
	}

	if b.LoadState() != entities.LoadIdle {
		t.Errorf("Expected idle state, got %s", b.LoadState())
	}

	table := b.Table()
	if len(table.Rows) != 0 || table.Empty {
		t.Errorf("Expected no rows and no empty marker before first load, got %+v", table)
	}

	if !b.LastLoaded().IsZero() {
		t.Error("NewBoard should have zero lastLoaded time")
	}

	if b.Status() != (entities.Status{}) {
		t.Errorf("Expected blank status, got %+v", b.Status())
	}
}

func TestReplaceTable(t *testing.T) {
	b := NewBoard()

	before := time.Now()
	b.ReplaceTable(entities.Table{Rows: []entities.DisplayRow{
		{Index: 1, DisplayName: "Aspirin", DisplayPrice: "£5.00"},
	}})

	table := b.Table()
	if len(table.Rows) != 1 || table.Rows[0].DisplayName != "Aspirin" {
		t.Errorf("Unexpected table after replace: %+v", table)
	}

	if b.LastLoaded().Before(before) {
		t.Error("ReplaceTable should bump lastLoaded")
	}

	// A second replace drops the previous rows entirely
	b.ReplaceTable(entities.Table{Empty: true})
	table = b.Table()
	if len(table.Rows) != 0 || !table.Empty {
		t.Errorf("Expected empty table, got %+v", table)
	}
	if table.Rows == nil {
		t.Error("Rows should never be nil")
	}
}

func TestStatusLine(t *testing.T) {
	b := NewBoard()

	b.SetStatus("Loading", entities.ToneInfo)
	if got := b.Status(); got.Message != "Loading" || got.Tone != entities.ToneInfo {
		t.Errorf("Unexpected status %+v", got)
	}

	b.ClearStatus()
	if got := b.Status(); got != (entities.Status{}) {
		t.Errorf("Expected cleared status, got %+v", got)
	}
}

func TestSnapshot(t *testing.T) {
	b := NewBoard()
	b.SetLoadState(entities.LoadLoaded)
	b.SetAverage(entities.AverageSummary{Headline: "N/A"})
	b.RecordProbe(entities.ProbeResult{OK: true, At: time.Now()})

	snap := b.Snapshot()
	if snap.State != entities.LoadLoaded {
		t.Errorf("Expected loaded state, got %s", snap.State)
	}
	if snap.Average.Headline != "N/A" {
		t.Errorf("Expected N/A average, got %q", snap.Average.Headline)
	}
	if !snap.Probe.OK {
		t.Error("Expected probe to be recorded")
	}
}

func TestConcurrentReplaceLastWriterWins(t *testing.T) {
	b := NewBoard()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			b.ReplaceTable(entities.Table{Rows: []entities.DisplayRow{
				{Index: 1, DisplayName: fmt.Sprintf("med-%d", n)},
			}})
			_ = b.Snapshot()
		}(i)
	}
	wg.Wait()

	// Whichever refresh finished last owns the table; it is always whole
	table := b.Table()
	if len(table.Rows) != 1 {
		t.Fatalf("Expected exactly one row, got %d", len(table.Rows))
	}

	b.ReplaceTable(entities.Table{Rows: []entities.DisplayRow{{Index: 1, DisplayName: "final"}}})
	if got := b.Table().Rows[0].DisplayName; got != "final" {
		t.Errorf("Expected last write to win, got %q", got)
	}
}
