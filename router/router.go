// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/quickly-tally/controller"
	"github.com/danielhkuo/quickly-tally/handlers"
	"github.com/danielhkuo/quickly-tally/lexicon"
	"github.com/danielhkuo/quickly-tally/middleware"
)

func NewRouter(ctrl *controller.VotingController, lex lexicon.Lexicon) *http.ServeMux {
	mux := http.NewServeMux()

	votingHandler := handlers.NewVotingHandler(ctrl, lex)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// HTML pages
	mux.HandleFunc("GET /{$}", middleware.WithLogging(votingHandler.Index))
	mux.HandleFunc("POST /vote", middleware.WithLogging(votingHandler.Vote))
	mux.HandleFunc("GET /results", middleware.WithLogging(votingHandler.Results))

	// JSON API, open to other origins
	api := http.NewServeMux()
	api.HandleFunc("GET /api/results", middleware.WithLogging(votingHandler.GetResults))
	api.HandleFunc("POST /api/ballots", middleware.WithLogging(votingHandler.SubmitBallot))
	mux.Handle("/api/", middleware.CORS(api))

	return mux
}
