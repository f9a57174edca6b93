// Package testutil provides in-memory fakes of the console's collaborators
// (backend, notifier, prompter) for package tests.
package testutil

import (
	"context"
	"sync"

	"github.com/giygas/medicines-admin/entities"
	"github.com/giygas/medicines-admin/interfaces"
)

// Call is one recorded backend call
type Call struct {
	Method string
	Name   string
	Price  string
}

var _ interfaces.MedicinesAPI = (*FakeAPI)(nil)

// FakeAPI is a scriptable MedicinesAPI that records every call.
// Zero value answers every request successfully with empty payloads.
// Like the HTTP client, it fails any call made with a done context.
type FakeAPI struct {
	mu sync.Mutex

	Payload   any
	Report    entities.AveragePriceReport
	CreateRaw []byte

	ListErr   error
	ReportErr error
	CreateErr error
	UpdateErr error
	DeleteErr error

	calls []Call
}

func (f *FakeAPI) record(c Call) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

// Calls returns a copy of the recorded calls, in order
func (f *FakeAPI) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Count returns how many calls used method
func (f *FakeAPI) Count(method string) int {
	n := 0
	for _, c := range f.Calls() {
		if c.Method == method {
			n++
		}
	}
	return n
}

// SetPayload swaps the /medicines payload
func (f *FakeAPI) SetPayload(payload any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Payload = payload
}

func (f *FakeAPI) ListMedicines(ctx context.Context) (any, error) {
	f.record(Call{Method: "list"})
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return f.Payload, nil
}

func (f *FakeAPI) AveragePrice(ctx context.Context) (entities.AveragePriceReport, error) {
	f.record(Call{Method: "report"})
	if err := ctx.Err(); err != nil {
		return entities.AveragePriceReport{}, err
	}
	if f.ReportErr != nil {
		return entities.AveragePriceReport{}, f.ReportErr
	}
	return f.Report, nil
}

func (f *FakeAPI) CreateMedicine(ctx context.Context, name, price string) ([]byte, error) {
	f.record(Call{Method: "create", Name: name, Price: price})
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}
	return f.CreateRaw, nil
}

func (f *FakeAPI) UpdateMedicine(ctx context.Context, name, price string) error {
	f.record(Call{Method: "update", Name: name, Price: price})
	if err := ctx.Err(); err != nil {
		return err
	}
	return f.UpdateErr
}

func (f *FakeAPI) DeleteMedicine(ctx context.Context, name string) error {
	f.record(Call{Method: "delete", Name: name})
	if err := ctx.Err(); err != nil {
		return err
	}
	return f.DeleteErr
}

var _ interfaces.Notifier = (*Notifier)(nil)

// Notifier records alerts and form messages
type Notifier struct {
	Alerts     []string
	Message    string
	Tone       entities.Tone
	FormResets int
}

func (n *Notifier) Alert(message string) {
	n.Alerts = append(n.Alerts, message)
}

func (n *Notifier) FormMessage(message string, tone entities.Tone) {
	n.Message = message
	n.Tone = tone
}

func (n *Notifier) ResetForm() {
	n.FormResets++
}

var _ interfaces.Prompter = (*Prompter)(nil)

// Prompter answers every question with scripted values and records them
type Prompter struct {
	Confirmed bool
	Answer    string
	Withdraw  bool

	Questions []string
}

func (p *Prompter) Confirm(ctx context.Context, message string) bool {
	p.Questions = append(p.Questions, message)
	return p.Confirmed
}

func (p *Prompter) Input(ctx context.Context, message string) (string, bool) {
	p.Questions = append(p.Questions, message)
	if p.Withdraw {
		return "", false
	}
	return p.Answer, true
}
