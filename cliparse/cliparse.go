// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/quickly-tally/lexicon"
	"github.com/danielhkuo/quickly-tally/models"
	"github.com/danielhkuo/quickly-tally/storage"
)

const DefaultPort = 3318

// Front-end names accepted by -service
const (
	ServiceStdio = "stdio"
	ServiceUDP   = "udp"
	ServiceTCP   = "tcp"
	ServiceWeb   = "web"
)

type Config struct {
	Port        int
	Host        string
	Candidates  []string
	Storage     string
	Service     string
	Language    string
	FilePath    string
	DatabaseURL string
}

// Addr is the listen address for the network services.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// CandidateList returns the configured candidates as domain values.
func (c Config) CandidateList() []models.Candidate {
	candidates := make([]models.Candidate, len(c.Candidates))
	for i, name := range c.Candidates {
		candidates[i] = models.Candidate(name)
	}
	return candidates
}

// LoadDotEnv loads variables from the given .env files (".env" when none
// are given). Missing files are ignored and variables already set in the
// environment are kept.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if _, err := os.Stat(file); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return nil
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var candidates string

	fs := flag.NewFlagSet("quickly-tally", flag.ContinueOnError)

	// Ballot
	fs.StringVar(&candidates, "c", "", "Comma separated candidate list")
	fs.StringVar(&cfg.Language, "l", "", "Response language (en or fr)")

	// Storage
	fs.StringVar(&cfg.Storage, "s", "", "Storage backend (memory, file, sqlite or postgres)")
	fs.StringVar(&cfg.FilePath, "f", "", "Machine file for the file backend")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL for the sqlite and postgres backends")

	// Front-end
	fs.StringVar(&cfg.Service, "service", "", "Front-end (stdio, udp, tcp or web)")
	fs.IntVar(&cfg.Port, "p", 0, "Listen port")
	fs.StringVar(&cfg.Host, "host", "", "Listen host")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if candidates == "" {
		candidates = os.Getenv("CANDIDATES")
	}
	for _, c := range models.ParseCandidates(candidates) {
		cfg.Candidates = append(cfg.Candidates, string(c))
	}

	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}

	cfg.Host = withDefault(cfg.Host, "HOST", "127.0.0.1")
	cfg.Storage = withDefault(cfg.Storage, "STORAGE", storage.BackendMemory)
	cfg.Service = withDefault(cfg.Service, "SERVICE", ServiceStdio)
	cfg.Language = withDefault(cfg.Language, "LANGUAGE", lexicon.LanguageEnglish)
	cfg.FilePath = withDefault(cfg.FilePath, "STORAGE_FILE", storage.DefaultFilePath)
	cfg.DatabaseURL = withDefault(cfg.DatabaseURL, "DATABASE_URL", "")

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func withDefault(value, env, def string) string {
	if value != "" {
		return value
	}
	if v := os.Getenv(env); v != "" {
		return v
	}
	return def
}

// Validate checks the values ParseFlags cannot default.
func (c Config) Validate() error {
	if len(c.Candidates) == 0 {
		return errors.New("candidates required (use -c or CANDIDATES env)")
	}
	seen := make(map[string]bool, len(c.Candidates))
	for _, name := range c.Candidates {
		if seen[name] {
			return fmt.Errorf("duplicate candidate %q", name)
		}
		seen[name] = true
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}

	switch c.Storage {
	case storage.BackendMemory, storage.BackendFile:
	case storage.BackendSQLite, storage.BackendPostgres:
		if c.DatabaseURL == "" {
			return errors.New("database URL required (use -d or DATABASE_URL env)")
		}
	default:
		return fmt.Errorf("unknown storage %q", c.Storage)
	}

	switch c.Service {
	case ServiceStdio, ServiceUDP, ServiceTCP, ServiceWeb:
	default:
		return fmt.Errorf("unknown service %q", c.Service)
	}

	if _, err := lexicon.ForLanguage(c.Language); err != nil {
		return err
	}
	return nil
}
