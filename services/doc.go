// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package services runs the front-ends that feed ballots to a VotingController.

# Line Services

Stdio, UDP and TCP speak the same line protocol (see package protocol):

	vote <voter> [candidate]
	voters
	scores

  - Stdio: one command per input line, response printed with a newline.
    A storage error prints "error: ..." and the loop continues.
  - UDP: one command per datagram, the response is sent back to the sender.
  - TCP: one command per line on each connection, responses always end in a
    newline. A storage error is written to the client and the connection
    is closed. Lines are limited to 64 KiB; a longer line gets the invalid
    command reply and the connection is closed.

# Web Service

	svc := services.NewWebService(addr, router.NewRouter(ctrl, lex), logger)

WebService wraps an http.Server around the handler built by package router.

# Shutdown

Every Serve method returns when its context is cancelled. Listeners and
connections are closed and in-flight commands finish before Serve returns.
*/
package services
