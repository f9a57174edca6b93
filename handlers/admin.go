// Package handlers serves the admin console pages.
// Page loads, form submissions and dialog answers all end with a full page
// render built from the board snapshot.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/giygas/medicines-admin/dispatcher"
	"github.com/giygas/medicines-admin/entities"
	"github.com/giygas/medicines-admin/interfaces"
	"github.com/giygas/medicines-admin/logging"
	"github.com/giygas/medicines-admin/views"
	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
)

// Decision values posted by the dialog buttons
const (
	DecisionOK     = "ok"
	DecisionCancel = "cancel"
)

// AdminHandler wires the console components to HTTP
type AdminHandler struct {
	loader     interfaces.Refresher
	reporter   interfaces.AverageReporter
	dispatcher interfaces.MutationDispatcher
	board      interfaces.BoardReader
	health     interfaces.HealthChecker
	renderer   *views.Renderer
	baseURL    string
}

// NewAdminHandler creates a new admin handler with injected dependencies
func NewAdminHandler(
	loader interfaces.Refresher,
	reporter interfaces.AverageReporter,
	dispatcher interfaces.MutationDispatcher,
	board interfaces.BoardReader,
	health interfaces.HealthChecker,
	renderer *views.Renderer,
	baseURL string,
) *AdminHandler {
	return &AdminHandler{
		loader:     loader,
		reporter:   reporter,
		dispatcher: dispatcher,
		board:      board,
		health:     health,
		renderer:   renderer,
		baseURL:    baseURL,
	}
}

// Index loads the table and the average price side by side, then renders
// the page. Either may fail without affecting the other.
func (h *AdminHandler) Index(w http.ResponseWriter, r *http.Request) {
	// A client going away must not leave the shared board in an error state
	ctx := context.WithoutCancel(r.Context())

	var g errgroup.Group
	g.Go(func() error {
		// The loader reports its own failure on the status line
		_ = h.loader.Refresh(ctx)
		return nil
	})
	g.Go(func() error {
		h.reporter.FetchAveragePrice(ctx)
		return nil
	})
	_ = g.Wait()

	h.renderPage(w, views.NewPage(h.baseURL))
}

// Create handles the creation form
func (h *AdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		logging.Warn("Failed to parse creation form", "error", err)
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	name := r.PostForm.Get("name")
	price := r.PostForm.Get("price")

	page := views.NewPage(h.baseURL)
	page.KeepForm(name, price)
	h.dispatcher.Create(context.WithoutCancel(r.Context()), page, name, price)

	h.renderPage(w, page)
}

// ShowDialog asks for confirmation (delete) or a new price (update)
func (h *AdminHandler) ShowDialog(w http.ResponseWriter, r *http.Request) {
	action := entities.Action(chi.URLParam(r, "action"))
	name := r.URL.Query().Get("name")

	message, err := h.dispatcher.PromptMessage(action, name)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	// Nothing to act on: back to the page as it is
	if name == "" {
		h.renderPage(w, views.NewPage(h.baseURL))
		return
	}

	dialog := views.Dialog{
		Action:   action,
		Name:     name,
		Message:  message,
		AskPrice: action == entities.ActionUpdate,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := h.renderer.Dialog(w, dialog); err != nil {
		logging.Error("Failed to render dialog", "action", action, "error", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

// SubmitDialog runs the row action with the answer given in the dialog
func (h *AdminHandler) SubmitDialog(w http.ResponseWriter, r *http.Request) {
	action := entities.Action(chi.URLParam(r, "action"))

	if err := r.ParseForm(); err != nil {
		logging.Warn("Failed to parse dialog answer", "error", err)
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	prompter := &formPrompter{
		accepted: r.PostForm.Get("decision") == DecisionOK,
		answer:   r.PostForm.Get("price"),
	}

	page := views.NewPage(h.baseURL)
	// The mutation and its follow-up reload run to completion once started
	ctx := context.WithoutCancel(r.Context())
	err := h.dispatcher.Dispatch(ctx, action, page, prompter, r.PostForm.Get("name"))
	if errors.Is(err, dispatcher.ErrUnknownAction) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		logging.Error("Failed to dispatch action", "action", action, "error", err)
		http.Error(w, "Failed to process action", http.StatusInternalServerError)
		return
	}

	h.renderPage(w, page)
}

// HealthCheck reports backend reachability as JSON
func (h *AdminHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status, data, httpStatus := h.health.HealthCheck()

	RespondWithJSON(w, httpStatus, HealthResponse{
		Status:        status,
		Backend:       h.baseURL,
		ProbeInterval: h.health.ProbeInterval().String(),
		Data:          data,
	})
}

func (h *AdminHandler) renderPage(w http.ResponseWriter, page *views.Page) {
	page.Board = h.board.Snapshot()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := h.renderer.Page(w, page); err != nil {
		logging.Error("Failed to render page", "error", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

// formPrompter answers the dispatcher's question with what the dialog posted
type formPrompter struct {
	accepted bool
	answer   string
}

func (p *formPrompter) Confirm(ctx context.Context, message string) bool {
	return p.accepted
}

func (p *formPrompter) Input(ctx context.Context, message string) (string, bool) {
	if !p.accepted {
		return "", false
	}
	return p.answer, true
}
