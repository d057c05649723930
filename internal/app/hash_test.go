package app

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestEncodeHash(t *testing.T) {
	cases := []struct {
		show     string
		selected []int
		want     string
	}{
		{"", nil, "#"},
		{"soso no frieren", nil, "#soso_no_frieren"},
		{"soso no frieren", []int{0, 2}, "#soso_no_frieren::0-2"},
		{"jujutsu kaisen", []int{3, 1, 10}, "#jujutsu_kaisen::3-1-10"},
	}
	for _, tc := range cases {
		if got := EncodeHash(tc.show, tc.selected); got != tc.want {
			t.Fatalf("EncodeHash(%q, %v): want %q, got %q", tc.show, tc.selected, tc.want, got)
		}
	}
}

func TestDecodeHash_EmptyAndNoSelection(t *testing.T) {
	for _, frag := range []string{"", "#"} {
		st := DecodeHash(frag)
		if st.Show != "" || len(st.Selected) != 0 {
			t.Fatalf("DecodeHash(%q): expected empty state, got %+v", frag, st)
		}
	}

	st := DecodeHash("#spy_x_framily_s02")
	if st.Show != "spy x framily s02" {
		t.Fatalf("show: want %q, got %q", "spy x framily s02", st.Show)
	}
	if len(st.Selected) != 0 {
		t.Fatalf("expected no selection without '::', got %v", st.Selected)
	}

	st = DecodeHash("#spy_x_framily_s02::")
	if len(st.Selected) != 0 {
		t.Fatalf("expected no selection for trailing '::', got %v", st.Selected)
	}
}

func TestDecodeHash_DropsGarbageAndDuplicates(t *testing.T) {
	st := DecodeHash("#soso_no_frieren::2-x-0--2-+1-7")
	if diff := cmp.Diff([]int{2, 0, 7}, st.Selected); diff != "" {
		t.Fatalf("selected mismatch (-want +got):\n%s", diff)
	}
}

func TestHashRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	names := []string{"soso no frieren", "jujutsu kaisen", "spy x framily s02", "one", "a b c d"}

	for i := 0; i < 200; i++ {
		name := names[rng.Intn(len(names))]
		set := map[int]struct{}{}
		for j := rng.Intn(8); j > 0; j-- {
			set[rng.Intn(50)] = struct{}{}
		}
		idxs := make([]int, 0, len(set))
		for k := range set {
			idxs = append(idxs, k)
		}

		st := DecodeHash(EncodeHash(name, idxs))
		if st.Show != name {
			t.Fatalf("show: want %q, got %q", name, st.Show)
		}
		sortInts := cmpopts.SortSlices(func(a, b int) bool { return a < b })
		if diff := cmp.Diff(idxs, st.Selected, sortInts, cmpopts.EquateEmpty()); diff != "" {
			t.Fatalf("round trip of %v (-want +got):\n%s", idxs, diff)
		}
	}
}

func TestDecodeThenEncodeKeepsMembership(t *testing.T) {
	in := "#soso_no_frieren::4-1-9"
	st := DecodeHash(in)
	out := DecodeHash(EncodeHash(st.Show, st.Selected))

	a := append([]int(nil), st.Selected...)
	b := append([]int(nil), out.Selected...)
	sort.Ints(a)
	sort.Ints(b)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("membership changed (-first +second):\n%s", diff)
	}
}
