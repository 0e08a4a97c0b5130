// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Tally voting machine.

Quickly Tally counts votes from named voters for a fixed candidate list.
Each voter votes once; a ballot is accepted, blank or invalid (unknown
candidate). The tally can be fed from stdin, UDP, TCP or a web page, and
kept in memory, in a JSON file, or in SQLite or PostgreSQL.

# Starting the Server

	go run . -c NixOS,Windows

Or a web front-end with a durable tally:

	CANDIDATES=NixOS,Windows go run . -service web -s file -f machine.json

# Configuration

Required settings:

  - CANDIDATES (-c): comma separated candidate list
  - DATABASE_URL (-d): only for -s sqlite and -s postgres

Optional settings:

  - STORAGE (-s): memory, file, sqlite or postgres (default: memory)
  - SERVICE (-service): stdio, udp, tcp or web (default: stdio)
  - PORT (-p), HOST (-host): listen address (default: 127.0.0.1:3318)
  - LANGUAGE (-l): en or fr (default: en)
  - STORAGE_FILE (-f): file backend path (default: machine.json)

A .env file in the working directory is loaded first.

# Architecture

  - models: VotingMachine and the domain types
  - storage: Storage interface with memory, file and SQL backends
  - db: SQL schema creation
  - controller: serialized read, vote, write against a Storage
  - lexicon: English and French strings
  - protocol: the vote/voters/scores line protocol
  - services: stdio, UDP, TCP and web front-ends
  - handlers, router, middleware: the HTTP surface
  - cliparse: configuration parsing

SIGINT and SIGTERM stop the running service cleanly.
*/
package main
