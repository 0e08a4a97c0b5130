// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-tally/lexicon"
	"github.com/danielhkuo/quickly-tally/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// tallyView is the data behind the index page and the results fragment.
type tallyView struct {
	Lex     lexicon.Lexicon
	Scores  []models.CandidateScore
	Blank   models.Score
	Invalid models.Score
	Voters  []string
}

func newTallyView(lex lexicon.Lexicon, machine *models.VotingMachine) tallyView {
	results := newResultsResponse(machine)
	return tallyView{
		Lex:     lex,
		Scores:  results.Scores,
		Blank:   results.BlankScore,
		Invalid: results.InvalidScore,
		Voters:  results.Voters,
	}
}

// newResultsResponse lists candidates and voters in name order
func newResultsResponse(machine *models.VotingMachine) models.ResultsResponse {
	board := machine.Scoreboard
	resp := models.ResultsResponse{
		Scores:       []models.CandidateScore{},
		BlankScore:   board.Blank,
		InvalidScore: board.Invalid,
		Voters:       []string{},
	}
	for _, candidate := range board.Candidates() {
		resp.Scores = append(resp.Scores, models.CandidateScore{
			Candidate: string(candidate),
			Score:     board.Scores[candidate],
		})
	}
	for _, voter := range machine.Voters.Voters() {
		resp.Voters = append(resp.Voters, string(voter))
	}
	return resp
}

// render executes into a buffer so a template failure still yields a clean 500
func render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
		serverError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func serverError(w http.ResponseWriter, err error) {
	http.Error(w, "Something went wrong: "+err.Error(), http.StatusInternalServerError)
}
