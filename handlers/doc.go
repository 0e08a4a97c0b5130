// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the web front-end.

# Handler Types

VotingHandler wraps the shared VotingController and the active lexicon:

	votingHandler := handlers.NewVotingHandler(ctrl, lex)

# HTML Pages

	GET  /        → Index (vote form and current tally)
	POST /vote    → Vote (form fields voter, candidate; empty candidate is blank)
	GET  /results → Results (tally fragment only)

Pages are html/template files embedded from templates/. The index loads
htmx: the form posts without a reload, and the tally fragment refreshes on
the "voted" event sent in the HX-Trigger header of every vote response.

# JSON API

	POST /api/ballots → SubmitBallot ({"voter": "...", "candidate": "..."})
	GET  /api/results → GetResults

# Errors

A missing voter is a 400 carrying the lexicon's MissingVoter string. A
storage failure is a 500 with "Something went wrong: <err>", as plain text
for HTML routes and as an ErrorResponse for the API. Already voted, blank
and invalid ballots are outcomes, not errors, and return 200.
*/
package handlers
