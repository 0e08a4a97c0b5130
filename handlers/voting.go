// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/quickly-tally/controller"
	"github.com/danielhkuo/quickly-tally/lexicon"
	"github.com/danielhkuo/quickly-tally/middleware"
	"github.com/danielhkuo/quickly-tally/models"
)

// VotingHandler serves the web front-end: HTML pages for browsers and a
// JSON API, both backed by the same controller.
type VotingHandler struct {
	ctrl *controller.VotingController
	lex  lexicon.Lexicon
}

func NewVotingHandler(ctrl *controller.VotingController, lex lexicon.Lexicon) *VotingHandler {
	return &VotingHandler{ctrl: ctrl, lex: lex}
}

// Vote handles POST /vote with form fields voter and candidate.
// An empty candidate is a blank vote.
func (h *VotingHandler) Vote(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	voter := strings.TrimSpace(r.PostFormValue("voter"))
	if voter == "" {
		http.Error(w, h.lex.MissingVoter, http.StatusBadRequest)
		return
	}
	candidate := strings.TrimSpace(r.PostFormValue("candidate"))

	outcome, err := h.ctrl.Submit(r.Context(), models.NewBallotPaper(voter, candidate))
	if err != nil {
		slog.Error("failed to submit ballot", "voter", voter, "error", err)
		serverError(w, err)
		return
	}

	// htmx refreshes the results fragment on this event
	w.Header().Set("HX-Trigger", "voted")
	render(w, http.StatusOK, "outcome", h.newBallotResponse(outcome))
}

// SubmitBallot handles POST /api/ballots
func (h *VotingHandler) SubmitBallot(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitBallotRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.Voter = strings.TrimSpace(req.Voter)
	if req.Voter == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, h.lex.MissingVoter)
		return
	}

	outcome, err := h.ctrl.Submit(r.Context(), models.NewBallotPaper(req.Voter, strings.TrimSpace(req.Candidate)))
	if err != nil {
		slog.Error("failed to submit ballot", "voter", req.Voter, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Something went wrong: "+err.Error())
		return
	}

	middleware.JSONResponse(w, http.StatusOK, h.newBallotResponse(outcome))
}

func (h *VotingHandler) newBallotResponse(outcome models.VoteOutcome) models.SubmitBallotResponse {
	return models.SubmitBallotResponse{
		Outcome:   outcome.Kind,
		Voter:     string(outcome.Voter),
		Candidate: string(outcome.Candidate),
		Message:   h.lex.FormatOutcome(outcome),
	}
}
