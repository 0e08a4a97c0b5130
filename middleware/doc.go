// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /results", middleware.WithLogging(handler))

Each request gets a uuid request id, returned in the X-Request-ID header.
Start (method, path, remote) and completion (status, duration_ms) are
logged with that id.

# CORS Middleware

	mux.Handle("/api/", middleware.CORS(api))

Reflects the request origin (or "*") for GET and POST. Preflight requests
are answered with 204 without reaching the wrapped handler.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var req models.SubmitBallotRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

ParseJSONBody reads at most 1 MiB.

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Honors X-Forwarded-For and X-Real-IP, then falls back to RemoteAddr.
*/
package middleware
