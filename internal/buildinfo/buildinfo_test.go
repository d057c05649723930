package buildinfo

import "testing"

func TestCurrent_InjectedValuesWin(t *testing.T) {
	oldV, oldC := Version, Commit
	t.Cleanup(func() { Version, Commit = oldV, oldC })

	Version, Commit = "v1.2.3", "abcdef"
	got := Current()
	if got.Version != "v1.2.3" || got.Commit != "abcdef" {
		t.Fatalf("unexpected info: %+v", got)
	}
}
