// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/danielhkuo/quickly-tally/cliparse"
	"github.com/danielhkuo/quickly-tally/controller"
	"github.com/danielhkuo/quickly-tally/lexicon"
	"github.com/danielhkuo/quickly-tally/models"
	"github.com/danielhkuo/quickly-tally/router"
	"github.com/danielhkuo/quickly-tally/services"
	"github.com/danielhkuo/quickly-tally/storage"
)

func main() {
	if err := cliparse.LoadDotEnv(); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	lex, err := lexicon.ForLanguage(cfg.Language)
	if err != nil {
		slog.Error("Error loading lexicon", "error", err)
		os.Exit(1)
	}

	// SIGINT and SIGTERM stop the service
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStorage(ctx, cfg, slog.Default())
	if err != nil {
		slog.Error("storage initialization failed", "storage", cfg.Storage, "error", err)
		os.Exit(1)
	}
	defer closeStore()
	slog.Info("Storage ready", "storage", cfg.Storage, "candidates", cfg.Candidates)

	ctrl := controller.NewVotingController(store, slog.Default())

	svc, err := newService(cfg, ctrl, lex)
	if err != nil {
		slog.Error("service initialization failed", "error", err)
		os.Exit(1)
	}

	if err := svc.Serve(ctx); err != nil {
		slog.Error("Service stopped", "service", cfg.Service, "error", err)
		closeStore()
		os.Exit(1)
	}
	slog.Info("Service stopped", "service", cfg.Service)
}

// openStorage builds the configured backend seeded with an empty machine.
// The returned func releases the backend.
func openStorage(ctx context.Context, cfg cliparse.Config, logger *slog.Logger) (storage.Storage, func(), error) {
	initial := models.NewVotingMachine(cfg.CandidateList())
	noop := func() {}

	switch cfg.Storage {
	case storage.BackendMemory:
		return storage.NewMemoryStore(initial), noop, nil

	case storage.BackendFile:
		store, err := storage.NewFileStore(ctx, cfg.FilePath, initial, logger)
		if err != nil {
			return nil, nil, err
		}
		return store, noop, nil

	case storage.BackendSQLite, storage.BackendPostgres:
		conn, err := storage.OpenSQL(cfg.Storage, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		store, err := storage.NewSQLStore(ctx, conn, initial, logger)
		if err != nil {
			conn.Close()
			return nil, nil, err
		}
		return store, closeDB(conn), nil
	}
	return nil, nil, fmt.Errorf("%w: unknown storage %q", storage.ErrInitialization, cfg.Storage)
}

func closeDB(conn *sql.DB) func() {
	return func() {
		if err := conn.Close(); err != nil {
			slog.Warn("failed to close database", "error", err)
		}
	}
}

func newService(cfg cliparse.Config, ctrl *controller.VotingController, lex lexicon.Lexicon) (services.Service, error) {
	logger := slog.Default()

	switch cfg.Service {
	case cliparse.ServiceStdio:
		return services.NewStdioService(os.Stdin, os.Stdout, ctrl, lex, logger), nil
	case cliparse.ServiceUDP:
		return services.NewUDPService(cfg.Addr(), ctrl, lex, logger), nil
	case cliparse.ServiceTCP:
		return services.NewTCPService(cfg.Addr(), ctrl, lex, logger), nil
	case cliparse.ServiceWeb:
		return services.NewWebService(cfg.Addr(), router.NewRouter(ctrl, lex), logger), nil
	}
	return nil, fmt.Errorf("unknown service %q", cfg.Service)
}
