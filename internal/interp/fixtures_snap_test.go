package interp

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestFixtures runs every *.joy program under testdata/fixtures through a
// fresh Interpreter and snapshots its captured stdout: no semantic pass,
// no expected-error categories, just "parse, run, snapshot stdout".
func TestFixtures(t *testing.T) {
	paths, err := filepath.Glob("../../testdata/fixtures/*.joy")
	if err != nil {
		t.Fatalf("glob fixtures: %v", err)
	}
	if len(paths) == 0 {
		t.Fatal("no fixture files found")
	}

	for _, path := range paths {
		path := path
		name := filepath.Base(path)
		t.Run(name, func(t *testing.T) {
			src, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read %s: %v", path, err)
			}

			var buf bytes.Buffer
			it := New(WithOutput(&buf))
			if rerr := it.RunSource(string(src), name); rerr != nil {
				t.Fatalf("running %s: %v", name, rerr)
			}
			it.Flush()

			snaps.MatchSnapshot(t, buf.String())
		})
	}
}
