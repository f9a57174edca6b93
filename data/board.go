// Package data provides the thread-safe board holding what the admin page
// currently shows. Each page region lives in its own atomic value and is
// replaced wholesale, never patched, so concurrent refreshes simply race and
// the last writer wins.
package data

import (
	"sync/atomic"
	"time"

	"github.com/giygas/medicines-admin/entities"
	"github.com/giygas/medicines-admin/interfaces"
	"github.com/giygas/medicines-admin/logging"
)

// Compile-time checks to ensure Board implements every region it owns
var (
	_ interfaces.TableView   = (*Board)(nil)
	_ interfaces.StatusView  = (*Board)(nil)
	_ interfaces.AverageView = (*Board)(nil)
	_ interfaces.BoardReader = (*Board)(nil)
	_ interfaces.ProbeStore  = (*Board)(nil)
)

// Board holds all the page regions with atomic values for lock-free swaps
type Board struct {
	table      atomic.Value // entities.Table
	state      atomic.Value // entities.LoadState
	status     atomic.Value // entities.Status
	average    atomic.Value // entities.AverageSummary
	lastLoaded atomic.Value // time.Time
	probe      atomic.Value // entities.ProbeResult
}

// NewBoard creates an idle board with every region empty
func NewBoard() *Board {
	b := &Board{}
	b.table.Store(entities.Table{Rows: []entities.DisplayRow{}})
	b.state.Store(entities.LoadIdle)
	b.status.Store(entities.Status{})
	b.average.Store(entities.AverageSummary{})
	b.lastLoaded.Store(time.Time{})
	b.probe.Store(entities.ProbeResult{})
	return b
}

// SetLoadState moves the table lifecycle
func (b *Board) SetLoadState(state entities.LoadState) {
	b.state.Store(state)
}

// ReplaceTable swaps the whole table region
func (b *Board) ReplaceTable(table entities.Table) {
	if table.Rows == nil {
		table.Rows = []entities.DisplayRow{}
	}
	b.table.Store(table)
	b.lastLoaded.Store(time.Now())
}

// SetStatus sets the status line
func (b *Board) SetStatus(message string, tone entities.Tone) {
	b.status.Store(entities.Status{Message: message, Tone: tone})
}

// ClearStatus empties the status line
func (b *Board) ClearStatus() {
	b.status.Store(entities.Status{})
}

// SetAverage swaps the average-price region
func (b *Board) SetAverage(summary entities.AverageSummary) {
	b.average.Store(summary)
}

// RecordProbe stores the latest backend probe
func (b *Board) RecordProbe(result entities.ProbeResult) {
	b.probe.Store(result)
}

// Thread-safe getters with type check

// Table returns the current table region
func (b *Board) Table() entities.Table {
	if v := b.table.Load(); v != nil {
		if table, ok := v.(entities.Table); ok {
			return table
		}
	}

	logging.Warn("Table region is empty or invalid")
	return entities.Table{Rows: []entities.DisplayRow{}}
}

// LoadState returns the table lifecycle state
func (b *Board) LoadState() entities.LoadState {
	if v := b.state.Load(); v != nil {
		if state, ok := v.(entities.LoadState); ok {
			return state
		}
	}

	logging.Warn("Load state is empty or invalid")
	return entities.LoadIdle
}

// Status returns the status line
func (b *Board) Status() entities.Status {
	if v := b.status.Load(); v != nil {
		if status, ok := v.(entities.Status); ok {
			return status
		}
	}
	return entities.Status{}
}

// Average returns the average-price region
func (b *Board) Average() entities.AverageSummary {
	if v := b.average.Load(); v != nil {
		if summary, ok := v.(entities.AverageSummary); ok {
			return summary
		}
	}
	return entities.AverageSummary{}
}

// LastLoaded returns when the table was last replaced
func (b *Board) LastLoaded() time.Time {
	if v := b.lastLoaded.Load(); v != nil {
		if lastLoaded, ok := v.(time.Time); ok {
			return lastLoaded
		}
	}

	logging.Warn("Could not get the last loaded value")
	return time.Time{}
}

// LastProbe returns the latest backend probe
func (b *Board) LastProbe() entities.ProbeResult {
	if v := b.probe.Load(); v != nil {
		if probe, ok := v.(entities.ProbeResult); ok {
			return probe
		}
	}
	return entities.ProbeResult{}
}

// Snapshot copies every region
func (b *Board) Snapshot() entities.BoardSnapshot {
	return entities.BoardSnapshot{
		State:      b.LoadState(),
		Status:     b.Status(),
		Table:      b.Table(),
		Average:    b.Average(),
		LastLoaded: b.LastLoaded(),
		Probe:      b.LastProbe(),
	}
}
