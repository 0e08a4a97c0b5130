// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-tally/middleware"
)

// Index handles GET /
// Renders the vote form and the current tally
func (h *VotingHandler) Index(w http.ResponseWriter, r *http.Request) {
	machine, err := h.ctrl.Snapshot(r.Context())
	if err != nil {
		slog.Error("failed to read tally", "error", err)
		serverError(w, err)
		return
	}
	render(w, http.StatusOK, "index", newTallyView(h.lex, machine))
}

// Results handles GET /results
// Renders only the tally fragment
func (h *VotingHandler) Results(w http.ResponseWriter, r *http.Request) {
	machine, err := h.ctrl.Snapshot(r.Context())
	if err != nil {
		slog.Error("failed to read tally", "error", err)
		serverError(w, err)
		return
	}
	render(w, http.StatusOK, "results", newTallyView(h.lex, machine))
}

// GetResults handles GET /api/results
func (h *VotingHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	machine, err := h.ctrl.Snapshot(r.Context())
	if err != nil {
		slog.Error("failed to read tally", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Something went wrong: "+err.Error())
		return
	}
	middleware.JSONResponse(w, http.StatusOK, newResultsResponse(machine))
}
