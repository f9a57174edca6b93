// Package interfaces defines core abstractions for the medicines admin console
// to improve testability, maintainability, and separation of concerns.
//
// Page regions (table, status line, average price, form message) are modelled
// as views that are injected into the components owning them, so that the
// core logic never reaches for page-global state.
package interfaces

import (
	"context"
	"time"

	"github.com/giygas/medicines-admin/entities"
)

// MedicinesAPI is the remote medicines backend.
// Every method reports non-2xx statuses and transport failures as errors.
type MedicinesAPI interface {
	// ListMedicines returns the decoded /medicines payload, untouched.
	ListMedicines(ctx context.Context) (any, error)
	// AveragePrice returns the /report/average-price payload.
	AveragePrice(ctx context.Context) (entities.AveragePriceReport, error)

	// Mutations. The record is identified by its name; bodies are form-encoded.
	CreateMedicine(ctx context.Context, name, price string) ([]byte, error)
	UpdateMedicine(ctx context.Context, name, price string) error
	DeleteMedicine(ctx context.Context, name string) error
}

// TableView is the table region. Only the Loader writes to it.
type TableView interface {
	SetLoadState(state entities.LoadState)
	ReplaceTable(table entities.Table)
}

// StatusView is the status line above the table.
type StatusView interface {
	SetStatus(message string, tone entities.Tone)
	ClearStatus()
}

// AverageView is the average-price region. Only the Reporter writes to it.
type AverageView interface {
	SetAverage(summary entities.AverageSummary)
}

// Notifier carries per-interaction feedback back to the user:
// blocking alerts and the inline message under the creation form.
type Notifier interface {
	Alert(message string)
	FormMessage(message string, tone entities.Tone)
	ResetForm()
}

// Prompter is the interactive confirmation/input capability.
// A false second return value from Input means the user withdrew.
type Prompter interface {
	Confirm(ctx context.Context, message string) bool
	Input(ctx context.Context, message string) (string, bool)
}

// Refresher re-derives the displayed table from the server.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// AverageReporter fetches and displays the average-price aggregate.
type AverageReporter interface {
	FetchAveragePrice(ctx context.Context)
}

// MutationDispatcher issues create/update/delete requests.
type MutationDispatcher interface {
	Create(ctx context.Context, n Notifier, rawName, rawPrice string) bool
	Dispatch(ctx context.Context, action entities.Action, n Notifier, p Prompter, name string) error
	PromptMessage(action entities.Action, name string) (string, error)
}

// InputValidator validates human-entered form values.
type InputValidator interface {
	// ValidateCreate trims both fields and checks the creation form.
	ValidateCreate(rawName, rawPrice string) (name string, price float64, err error)
	// ParsePrice accepts finite numbers greater than zero.
	ParsePrice(raw string) (float64, error)
}

// BoardReader gives read access to every page region at once.
type BoardReader interface {
	Snapshot() entities.BoardSnapshot
}

// ProbeStore records backend reachability probes.
type ProbeStore interface {
	RecordProbe(result entities.ProbeResult)
	LastProbe() entities.ProbeResult
}

// Scheduler defines the contract for background jobs.
type Scheduler interface {
	Start() error
	Stop()
}

// HealthChecker defines the contract for health check functionality.
type HealthChecker interface {
	// HealthCheck returns the status label, the JSON details and the HTTP status.
	HealthCheck() (status string, data map[string]any, httpStatus int)
	// ProbeInterval returns how often the backend is probed.
	ProbeInterval() time.Duration
}
