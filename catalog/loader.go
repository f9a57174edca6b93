package catalog

import (
	"context"
	"fmt"

	"github.com/giygas/medicines-admin/entities"
	"github.com/giygas/medicines-admin/interfaces"
	"github.com/giygas/medicines-admin/logging"
)

// LoadingMessage is shown on the status line while the table is fetched
const LoadingMessage = "Loading medicines from backend…"

// Compile-time check to ensure Loader implements Refresher
var _ interfaces.Refresher = (*Loader)(nil)

// Loader runs the table lifecycle Idle -> Loading -> {Loaded, Error}.
// Each call to Refresh is one complete cycle; there is no retry.
type Loader struct {
	api     interfaces.MedicinesAPI
	table   interfaces.TableView
	status  interfaces.StatusView
	baseURL string
}

// NewLoader creates a loader writing to the given table and status regions
func NewLoader(api interfaces.MedicinesAPI, table interfaces.TableView, status interfaces.StatusView, baseURL string) *Loader {
	return &Loader{
		api:     api,
		table:   table,
		status:  status,
		baseURL: baseURL,
	}
}

// FailureMessage is the status line shown when the table cannot be loaded
func (l *Loader) FailureMessage() string {
	return fmt.Sprintf("Failed to load medicines. Please make sure the backend is reachable at %s.", l.baseURL)
}

// Refresh fetches /medicines and replaces the whole table. On failure the
// previous table is left untouched and the status line reports the error.
func (l *Loader) Refresh(ctx context.Context) error {
	l.table.SetLoadState(entities.LoadLoading)
	l.status.SetStatus(LoadingMessage, entities.ToneInfo)

	payload, err := l.api.ListMedicines(ctx)
	if err != nil {
		logging.Error("Error fetching medicines", "error", err)
		l.status.SetStatus(l.FailureMessage(), entities.ToneError)
		l.table.SetLoadState(entities.LoadError)
		return fmt.Errorf("failed to load medicines: %w", err)
	}

	table := Render(Sanitize(payload))
	l.table.ReplaceTable(table)
	l.table.SetLoadState(entities.LoadLoaded)
	l.status.ClearStatus()

	logging.Debug("Medicines table refreshed", "rows", len(table.Rows))
	return nil
}
