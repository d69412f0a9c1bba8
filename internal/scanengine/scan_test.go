package scanengine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gofd/gofd/internal/config"
	"github.com/gofd/gofd/internal/exitcode"
	"github.com/gofd/gofd/internal/pattern"
)

func TestScanRejectsEmptyPaths(t *testing.T) {
	re, _ := pattern.Compile(".*")
	_, err := Scan(nil, re, &config.Config{Threads: 1})
	if err == nil {
		t.Fatal("expected error for empty path vector")
	}
}

func TestScanFindsMatchingFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "match.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "other.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	re, err := pattern.Compile(`\.txt$`)
	if err != nil {
		t.Fatal(err)
	}

	code, err := Scan([]string{dir}, re, &config.Config{Threads: 2, Quiet: true})
	if err != nil {
		t.Fatal(err)
	}
	if code != exitcode.HasResultsTrue {
		t.Errorf("code = %v, want HasResultsTrue", code)
	}
}

func TestScanNoMatchesQuietReturnsHasResultsFalse(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	re, err := pattern.Compile(`^nothing-matches-this$`)
	if err != nil {
		t.Fatal(err)
	}

	code, err := Scan([]string{dir}, re, &config.Config{Threads: 1, Quiet: true})
	if err != nil {
		t.Fatal(err)
	}
	if code != exitcode.HasResultsFalse {
		t.Errorf("code = %v, want HasResultsFalse", code)
	}
}
