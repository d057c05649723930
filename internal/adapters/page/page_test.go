package page

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Guilhem-Bonnet/Episode-Browser/internal/domain"
)

func TestPage_RenderStartsUnchecked(t *testing.T) {
	p := New("")
	p.ShowMessage("loading [x] ..")
	p.Render("x", []domain.Episode{{Title: "a"}, {Title: "b"}})

	if p.Message() != "" {
		t.Fatalf("message should be cleared, got %q", p.Message())
	}
	if p.Len() != 2 || p.Checked(0) || p.Checked(1) {
		t.Fatalf("unexpected items: len=%d", p.Len())
	}
	p.SetChecked(1, true)
	p.SetWatched(0, true)
	if !p.Checked(1) || !p.Watched(0) {
		t.Fatalf("flags not stored")
	}

	// Hors bornes: ignoré.
	p.SetChecked(5, true)
	if p.Checked(5) || p.Checked(-1) {
		t.Fatalf("out-of-range index reported checked")
	}

	p.ShowMessage("failed to load [x]")
	if p.Len() != 0 || p.Show() != "" {
		t.Fatalf("message should clear items")
	}
}

func TestPage_History(t *testing.T) {
	p := New("#x")
	p.ReplaceHash("#x::1")
	p.PushHash("#y")
	p.PushHash("#y::0")

	if diff := cmp.Diff([]string{"#x::1", "#y", "#y::0"}, p.History()); diff != "" {
		t.Fatalf("history mismatch (-want +got):\n%s", diff)
	}
	if p.Hash() != "#y::0" {
		t.Fatalf("hash: got %q", p.Hash())
	}
}
