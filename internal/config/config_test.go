package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/Guilhem-Bonnet/Episode-Browser/internal/domain"
)

func TestDefault_Env(t *testing.T) {
	t.Setenv("EPB_ADDR", ":9999")
	t.Setenv("EPB_TICK_INTERVAL", "1s")
	t.Setenv("EPB_BULK_HISTORY", "push")
	t.Setenv("EPB_PREFETCH", "true")
	t.Setenv("EPB_MAX_FETCHES", "not-a-number")

	c := Default()
	if c.Addr != ":9999" || c.TickInterval != time.Second || c.BulkHistory != "push" || !c.Prefetch {
		t.Fatalf("unexpected config: %+v", c)
	}
	if c.MaxFetches != 2 {
		t.Fatalf("invalid int should fall back to default, got %d", c.MaxFetches)
	}
	if c.DBPath != "epb.db" {
		t.Fatalf("db path: got %q", c.DBPath)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	c.Clipboard = "papyrus"
	if err := c.Validate(); err == nil {
		t.Fatalf("expected invalid clipboard error")
	}
}

func TestShows_DefaultRegistry(t *testing.T) {
	shows, err := Config{}.Shows()
	if err != nil {
		t.Fatalf("Shows: %v", err)
	}
	if diff := cmp.Diff(domain.DefaultShows(), shows); diff != "" {
		t.Fatalf("shows mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadShowsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shows.yaml")
	body := "shows:\n  - name: soso no frieren\n    feed: https://example.org/frieren.xml\n  - name: jujutsu kaisen\n    feed: https://example.org/jjk.xml\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	shows, err := Config{ShowsFile: path}.Shows()
	if err != nil {
		t.Fatalf("Shows: %v", err)
	}
	want := []domain.Show{
		{Name: "soso no frieren", FeedURL: "https://example.org/frieren.xml"},
		{Name: "jujutsu kaisen", FeedURL: "https://example.org/jjk.xml"},
	}
	if diff := cmp.Diff(want, shows); diff != "" {
		t.Fatalf("shows mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadShowsFile_RejectsReservedNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shows.yaml")
	body := "shows:\n  - name: spy-x-family\n    feed: https://example.org/spy.xml\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := LoadShowsFile(path)
	if err == nil || !strings.Contains(err.Error(), "reserved") {
		t.Fatalf("expected reserved character error, got %v", err)
	}
}
