package server

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRecentFiles_TouchAndList(t *testing.T) {
	list := NewRecentFiles(filepath.Join(t.TempDir(), "recent.txt"))

	list.Touch("/maps/a.gmap")
	list.Touch("/maps/b.gmap")
	list.Touch("/maps/c.gmap")

	got := list.List()
	want := []string{"/maps/c.gmap", "/maps/b.gmap", "/maps/a.gmap"}
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRecentFiles_DedupeMovesToFront(t *testing.T) {
	list := NewRecentFiles(filepath.Join(t.TempDir(), "recent.txt"))

	list.Touch("/maps/a.gmap")
	list.Touch("/maps/b.gmap")
	list.Touch("/maps/a.gmap") // re-open moves to front, no duplicate

	got := list.List()
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %v", got)
	}
	if got[0] != "/maps/a.gmap" || got[1] != "/maps/b.gmap" {
		t.Errorf("unexpected order: %v", got)
	}
}

func TestRecentFiles_Limit(t *testing.T) {
	list := NewRecentFiles(filepath.Join(t.TempDir(), "recent.txt"))

	for i := 0; i < maxRecentFiles+5; i++ {
		list.Touch(filepath.Join("/maps", strings.Repeat("x", i+1)+".gmap"))
	}
	if got := len(list.List()); got != maxRecentFiles {
		t.Errorf("list should be capped at %d, got %d", maxRecentFiles, got)
	}
}

func TestRecentFiles_FileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recent.txt")
	list := NewRecentFiles(path)

	list.Touch("/maps/a.gmap")
	list.Touch("/maps/b.gmap")

	// Newline-delimited, most recent first
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "/maps/b.gmap\n/maps/a.gmap\n" {
		t.Errorf("unexpected file content: %q", data)
	}
}

func TestRecentFiles_Disabled(t *testing.T) {
	list := NewRecentFiles("")
	list.Touch("/maps/a.gmap") // must not panic or write anywhere
	if got := list.List(); got != nil {
		t.Errorf("disabled list should return nil, got %v", got)
	}
}

func TestRecentFiles_MissingFileIsEmpty(t *testing.T) {
	list := NewRecentFiles(filepath.Join(t.TempDir(), "nope.txt"))
	if got := list.List(); len(got) != 0 {
		t.Errorf("missing file should mean empty list, got %v", got)
	}
}
