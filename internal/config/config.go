package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Guilhem-Bonnet/Episode-Browser/internal/domain"
)

type Config struct {
	Addr         string
	DBPath       string
	TickInterval time.Duration
	// BulkHistory vaut "replace" ou "push".
	BulkHistory  string
	Clipboard    string
	ShowsFile    string
	Prefetch     bool
	MaxFetches   int
	FetchTimeout time.Duration
	InitialHash  string
}

const (
	ClipboardSystem = "system"
	ClipboardMemory = "memory"
)

func Default() Config {
	return Config{
		Addr:         envOr("EPB_ADDR", "127.0.0.1:8080"),
		DBPath:       envOr("EPB_DB_PATH", "epb.db"),
		TickInterval: envDuration("EPB_TICK_INTERVAL", 250*time.Millisecond),
		BulkHistory:  envOr("EPB_BULK_HISTORY", "replace"),
		Clipboard:    envOr("EPB_CLIPBOARD", ClipboardSystem),
		ShowsFile:    os.Getenv("EPB_SHOWS_FILE"),
		Prefetch:     envBool("EPB_PREFETCH", false),
		MaxFetches:   envInt("EPB_MAX_FETCHES", 2),
		FetchTimeout: envDuration("EPB_FETCH_TIMEOUT", 20*time.Second),
		InitialHash:  os.Getenv("EPB_INITIAL_HASH"),
	}
}

// Validate vérifie les valeurs qui n'ont pas de repli raisonnable.
func (c Config) Validate() error {
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be > 0 (got %s)", c.TickInterval)
	}
	if c.MaxFetches < 1 {
		return fmt.Errorf("max fetches must be >= 1 (got %d)", c.MaxFetches)
	}
	switch c.Clipboard {
	case ClipboardSystem, ClipboardMemory:
	default:
		return fmt.Errorf("invalid clipboard %q (want system|memory)", c.Clipboard)
	}
	return nil
}

// Shows renvoie le registre: le fichier YAML s'il est configuré, sinon les séries par défaut.
func (c Config) Shows() ([]domain.Show, error) {
	if strings.TrimSpace(c.ShowsFile) == "" {
		return domain.DefaultShows(), nil
	}
	return LoadShowsFile(c.ShowsFile)
}

type showsFile struct {
	Shows []domain.Show `yaml:"shows"`
}

// LoadShowsFile lit un registre YAML de la forme:
//
//	shows:
//	  - name: soso no frieren
//	    feed: https://example.org/frieren.xml
func LoadShowsFile(path string) ([]domain.Show, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f showsFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(f.Shows) == 0 {
		return nil, fmt.Errorf("%s: no shows", path)
	}
	for i, s := range f.Shows {
		if s.Name == "" || s.FeedURL == "" {
			return nil, fmt.Errorf("%s: show %d needs name and feed", path, i)
		}
		if domain.HasReservedChars(s.Name) {
			return nil, fmt.Errorf("%s: show name %q contains a reserved character (#, ::, -, _)", path, s.Name)
		}
	}
	return f.Shows, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
