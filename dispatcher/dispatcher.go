// Package dispatcher issues create, update and delete requests on behalf of
// the administrator and reports the outcome through the request's Notifier.
package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/giygas/medicines-admin/apiclient"
	"github.com/giygas/medicines-admin/entities"
	"github.com/giygas/medicines-admin/interfaces"
	"github.com/giygas/medicines-admin/logging"
	"github.com/giygas/medicines-admin/metrics"
	"github.com/giygas/medicines-admin/validation"
)

// Messages shown to the administrator
const (
	MsgMissingFields = "Please fill in both name and price."
	MsgInvalidPrice  = "Please enter a valid positive price."
	MsgCreateFailed  = "Could not add medicine. Please try again."
	MsgCreated       = "Medicine added successfully."

	MsgUpdateInvalid = "Invalid price."
	MsgUpdateFailed  = "Failed to update medicine."
	MsgDeleteFailed  = "Failed to delete medicine."
)

// ErrUnknownAction is returned for actions outside the command table
var ErrUnknownAction = errors.New("unknown action")

const actionCreate = "create"

type command struct {
	prompt func(name string) string
	run    func(ctx context.Context, n interfaces.Notifier, p interfaces.Prompter, name string)
}

var _ interfaces.MutationDispatcher = (*Dispatcher)(nil)

// Dispatcher implements interfaces.MutationDispatcher
type Dispatcher struct {
	api       interfaces.MedicinesAPI
	refresher interfaces.Refresher
	validator interfaces.InputValidator
	commands  map[entities.Action]command
}

// New creates a dispatcher. Every successful mutation triggers exactly one
// refresher.Refresh.
func New(api interfaces.MedicinesAPI, refresher interfaces.Refresher, validator interfaces.InputValidator) *Dispatcher {
	d := &Dispatcher{
		api:       api,
		refresher: refresher,
		validator: validator,
	}
	d.commands = map[entities.Action]command{
		entities.ActionUpdate: {prompt: updatePrompt, run: d.update},
		entities.ActionDelete: {prompt: deletePrompt, run: d.delete},
	}
	return d
}

func updatePrompt(name string) string {
	return fmt.Sprintf("Enter new price for \"%s\"", name)
}

func deletePrompt(name string) string {
	return fmt.Sprintf("Delete medicine \"%s\"?", name)
}

// PromptMessage returns the question asked before action runs on name
func (d *Dispatcher) PromptMessage(action entities.Action, name string) (string, error) {
	cmd, ok := d.commands[action]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	return cmd.prompt(name), nil
}

// Dispatch runs the row action. An empty name is a no-op.
func (d *Dispatcher) Dispatch(ctx context.Context, action entities.Action, n interfaces.Notifier, p interfaces.Prompter, name string) error {
	cmd, ok := d.commands[action]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	if name == "" {
		return nil
	}
	cmd.run(ctx, n, p, name)
	return nil
}

// Create validates the creation form and posts it. It reports true when the
// medicine was added.
func (d *Dispatcher) Create(ctx context.Context, n interfaces.Notifier, rawName, rawPrice string) bool {
	name, price, err := d.validator.ValidateCreate(rawName, rawPrice)
	if err != nil {
		metrics.ObserveMutation(actionCreate, metrics.ResultRejected)
		if errors.Is(err, validation.ErrMissingFields) {
			n.FormMessage(MsgMissingFields, entities.ToneError)
		} else {
			n.FormMessage(MsgInvalidPrice, entities.ToneError)
		}
		return false
	}

	raw, err := d.api.CreateMedicine(ctx, name, validation.FormatPriceValue(price))
	if err != nil {
		metrics.ObserveMutation(actionCreate, metrics.ResultFailure)
		logFailure(ctx, "Failed to create medicine", name, err)
		n.FormMessage(MsgCreateFailed, entities.ToneError)
		return false
	}

	metrics.ObserveMutation(actionCreate, metrics.ResultSuccess)
	logging.Debug("Medicine created", "name", name, "response", string(raw))

	n.FormMessage(MsgCreated, entities.ToneSuccess)
	n.ResetForm()
	d.refresh(ctx)
	return true
}

func (d *Dispatcher) update(ctx context.Context, n interfaces.Notifier, p interfaces.Prompter, name string) {
	action := string(entities.ActionUpdate)

	answer, ok := p.Input(ctx, updatePrompt(name))
	if !ok {
		metrics.ObserveMutation(action, metrics.ResultCancelled)
		return
	}

	price, err := d.validator.ParsePrice(answer)
	if err != nil {
		metrics.ObserveMutation(action, metrics.ResultRejected)
		n.Alert(MsgUpdateInvalid)
		return
	}

	if err := d.api.UpdateMedicine(ctx, name, validation.FormatPriceValue(price)); err != nil {
		metrics.ObserveMutation(action, metrics.ResultFailure)
		logFailure(ctx, "Failed to update medicine", name, err)
		n.Alert(MsgUpdateFailed)
		return
	}

	metrics.ObserveMutation(action, metrics.ResultSuccess)
	d.refresh(ctx)
}

func (d *Dispatcher) delete(ctx context.Context, n interfaces.Notifier, p interfaces.Prompter, name string) {
	action := string(entities.ActionDelete)

	if !p.Confirm(ctx, deletePrompt(name)) {
		metrics.ObserveMutation(action, metrics.ResultCancelled)
		return
	}

	if err := d.api.DeleteMedicine(ctx, name); err != nil {
		metrics.ObserveMutation(action, metrics.ResultFailure)
		logFailure(ctx, "Failed to delete medicine", name, err)
		n.Alert(MsgDeleteFailed)
		return
	}

	metrics.ObserveMutation(action, metrics.ResultSuccess)
	d.refresh(ctx)
}

// failureLevel picks the log level for a rejected mutation. A 404 means the
// record is already gone, usually removed from another tab.
func failureLevel(err error) slog.Level {
	if apiclient.IsStatus(err, http.StatusNotFound) {
		return slog.LevelWarn
	}
	return slog.LevelError
}

func logFailure(ctx context.Context, msg, name string, err error) {
	logging.Logger().Log(ctx, failureLevel(err), msg, "name", name, "error", err)
}

// refresh failures surface through the loader's own status line
func (d *Dispatcher) refresh(ctx context.Context) {
	if err := d.refresher.Refresh(ctx); err != nil {
		logging.Warn("Refresh after mutation failed", "error", err)
	}
}
