package entities

import "time"

// LoadState is the table lifecycle: Idle -> Loading -> {Loaded, Error}.
type LoadState string

const (
	LoadIdle    LoadState = "idle"
	LoadLoading LoadState = "loading"
	LoadLoaded  LoadState = "loaded"
	LoadError   LoadState = "error"
)

// Tone qualifies a status line or form message.
type Tone string

const (
	ToneNone    Tone = ""
	ToneInfo    Tone = "info"
	ToneError   Tone = "error"
	ToneSuccess Tone = "success"
)

// Status is the status line above the table.
type Status struct {
	Message string `json:"message"`
	Tone    Tone   `json:"tone"`
}

// Action names a per-row command.
type Action string

const (
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// ProbeResult is the outcome of the last backend reachability probe.
type ProbeResult struct {
	At    time.Time `json:"at"`
	OK    bool      `json:"ok"`
	Error string    `json:"error,omitempty"`
}

// BoardSnapshot is a consistent-enough copy of every page region.
// Regions are stored independently, so a snapshot taken during a refresh
// may mix the previous table with the new status line.
type BoardSnapshot struct {
	State      LoadState      `json:"state"`
	Status     Status         `json:"status"`
	Table      Table          `json:"table"`
	Average    AverageSummary `json:"average"`
	LastLoaded time.Time      `json:"last_loaded"`
	Probe      ProbeResult    `json:"probe"`
}
