// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Candidates: ballot options (required, no duplicates)
  - Storage: memory, file, sqlite or postgres (default: memory)
  - Service: stdio, udp, tcp or web (default: stdio)
  - Port: listen port for udp, tcp and web (default: 3318)
  - Host: listen host (default: 127.0.0.1)
  - Language: en or fr (default: en)
  - FilePath: machine document for the file backend (default: machine.json)
  - DatabaseURL: DSN for sqlite and postgres (required for those backends)

# CLI Flags

	-c        Comma separated candidates
	-s        Storage backend
	-service  Front-end
	-p        Port
	-host     Host
	-l        Language
	-f        Machine file
	-d        Database URL

# Environment Variables

Flags fall back to environment variables:

	CANDIDATES   → -c
	STORAGE      → -s
	SERVICE      → -service
	PORT         → -p
	HOST         → -host
	LANGUAGE     → -l
	STORAGE_FILE → -f
	DATABASE_URL → -d

CLI flags take precedence over environment variables. LoadDotEnv reads a
.env file into the environment first; variables already set are kept.

# Example

	// In main.go
	if err := cliparse.LoadDotEnv(); err != nil {
		log.Fatal(err)
	}
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
*/
package cliparse
