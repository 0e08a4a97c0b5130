// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the web front-end.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(ctrl, lex)

# Endpoints

Health:

	GET /health

HTML (vote form, htmx fragments):

	GET  /         - Vote form and current tally
	POST /vote     - Submit a ballot (form fields voter, candidate)
	GET  /results  - Tally fragment

JSON API (CORS enabled):

	GET  /api/results - Current tally
	POST /api/ballots - Submit a ballot

Every route except /health is wrapped with middleware.WithLogging.
*/
package router
