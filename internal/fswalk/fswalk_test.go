package fswalk

import (
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/gofd/gofd/internal/direntry"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func collect(t *testing.T, dir string, opts Options) []string {
	t.Helper()
	w, err := New(opts)
	if err != nil {
		t.Fatal(err)
	}
	var mu sync.Mutex
	var paths []string
	w.Walk([]string{dir}, func(e *direntry.Entry) State {
		mu.Lock()
		paths = append(paths, e.Path())
		mu.Unlock()
		return Continue
	}, nil)
	sort.Strings(paths)
	return paths
}

func TestWalkVisitsAllEntries(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "x")
	writeFile(t, filepath.Join(dir, "sub", "b.txt"), "x")

	paths := collect(t, dir, Options{Threads: 2})
	if len(paths) != 3 { // a.txt, sub, sub/b.txt
		t.Fatalf("got %d entries: %v", len(paths), paths)
	}
}

func TestWalkHonorsIgnoreHidden(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".hidden"), "x")
	writeFile(t, filepath.Join(dir, "visible.txt"), "x")

	paths := collect(t, dir, Options{Threads: 1, IgnoreHidden: true})
	if len(paths) != 1 {
		t.Fatalf("expected only the visible file, got %v", paths)
	}
}

func TestWalkHonorsGitignore(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".gitignore"), "*.tmp\n")
	writeFile(t, filepath.Join(dir, "a.tmp"), "x")
	writeFile(t, filepath.Join(dir, "a.txt"), "x")

	paths := collect(t, dir, Options{Threads: 1, ReadVCSIgnore: true})
	for _, p := range paths {
		if filepath.Ext(p) == ".tmp" {
			t.Errorf("a.tmp should have been excluded by .gitignore, got %v", paths)
		}
	}
}

func TestWalkHonorsExcludeOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.tmp"), "x")
	writeFile(t, filepath.Join(dir, "a.txt"), "x")

	w, err := New(Options{Threads: 1, ExcludePatterns: []string{"*.tmp"}})
	if err != nil {
		t.Fatal(err)
	}
	var paths []string
	w.Walk([]string{dir}, func(e *direntry.Entry) State {
		paths = append(paths, e.Path())
		return Continue
	}, nil)
	for _, p := range paths {
		if filepath.Ext(p) == ".tmp" {
			t.Errorf("a.tmp should have been excluded, got %v", paths)
		}
	}
}

func TestWalkPruneSkipsDescendants(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "sub", "child.txt"), "x")

	w, err := New(Options{Threads: 1})
	if err != nil {
		t.Fatal(err)
	}
	var paths []string
	w.Walk([]string{dir}, func(e *direntry.Entry) State {
		paths = append(paths, e.Path())
		if filepath.Base(e.Path()) == "sub" {
			return Skip
		}
		return Continue
	}, nil)
	for _, p := range paths {
		if filepath.Base(filepath.Dir(p)) == "sub" {
			t.Errorf("expected no descendants of pruned 'sub', got %v", paths)
		}
	}
}

func TestWalkQuitStopsEarly(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 20; i++ {
		writeFile(t, filepath.Join(dir, "d"+string(rune('a'+i)), "f.txt"), "x")
	}

	w, err := New(Options{Threads: 4})
	if err != nil {
		t.Fatal(err)
	}
	var mu sync.Mutex
	count := 0
	w.Walk([]string{dir}, func(e *direntry.Entry) State {
		mu.Lock()
		count++
		mu.Unlock()
		return Quit
	}, nil)
	if count == 0 {
		t.Fatal("expected at least one visit before quitting")
	}
}

func TestNewRejectsMalformedExcludePattern(t *testing.T) {
	_, err := New(Options{ExcludePatterns: []string{"["}})
	if err == nil {
		t.Fatal("expected error for malformed exclude pattern")
	}
}

func TestWalkReportsReadDirErrors(t *testing.T) {
	dir := t.TempDir()
	unreadable := filepath.Join(dir, "locked")
	if err := os.Mkdir(unreadable, 0o000); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(unreadable, 0o755) })

	w, err := New(Options{Threads: 1})
	if err != nil {
		t.Fatal(err)
	}
	var mu sync.Mutex
	var errPaths []string
	w.Walk([]string{dir}, func(e *direntry.Entry) State {
		return Continue
	}, func(path string, err error) State {
		mu.Lock()
		errPaths = append(errPaths, path)
		mu.Unlock()
		return Continue
	})
	if len(errPaths) == 0 {
		t.Skip("unreadable directory test requires non-root execution")
	}
}
