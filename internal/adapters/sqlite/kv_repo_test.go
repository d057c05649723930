package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Guilhem-Bonnet/Episode-Browser/internal/app"
	"github.com/Guilhem-Bonnet/Episode-Browser/internal/ports"
)

func TestKVRepository_GetPut(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := NewKVRepository(db.SQL)
	if _, err := repo.Get(ctx, "watched_episode"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := repo.Put(ctx, "watched_episode", []byte(`["a"]`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := repo.Put(ctx, "watched_episode", []byte(`["a","b"]`)); err != nil {
		t.Fatalf("Put (overwrite): %v", err)
	}
	got, err := repo.Get(ctx, "watched_episode")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != `["a","b"]` {
		t.Fatalf("value: want %q, got %q", `["a","b"]`, got)
	}
}

func TestKVRepository_WatchedSetSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "epb.db")

	db, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	store := app.LoadWatchedStore(ctx, zerolog.Nop(), NewKVRepository(db.SQL))
	if err := store.SetWatched(ctx, "Frieren - 01", true); err != nil {
		t.Fatalf("SetWatched: %v", err)
	}
	_ = db.Close()

	db, err = Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	reloaded := app.LoadWatchedStore(ctx, zerolog.Nop(), NewKVRepository(db.SQL))
	if !reloaded.IsWatched("Frieren - 01") {
		t.Fatalf("watched title lost across reopen: %v", reloaded.Titles())
	}
}

func TestUpSection(t *testing.T) {
	got := upSection("-- +migrate Up\nCREATE TABLE a(x);\n-- +migrate Down\nDROP TABLE a;\n")
	if got != "CREATE TABLE a(x);" {
		t.Fatalf("upSection: got %q", got)
	}
}
