package main

import (
	"testing"
	"time"

	"github.com/gofd/gofd/internal/filter"
)

func TestSplitPatternAndPathsNoArgs(t *testing.T) {
	pat, roots := splitPatternAndPaths(nil)
	if pat != ".*" || len(roots) != 1 || roots[0] != "." {
		t.Errorf("got (%q, %v)", pat, roots)
	}
}

func TestSplitPatternAndPathsFirstArgIsPath(t *testing.T) {
	dir := t.TempDir()
	pat, roots := splitPatternAndPaths([]string{dir})
	if pat != ".*" || len(roots) != 1 || roots[0] != dir {
		t.Errorf("got (%q, %v)", pat, roots)
	}
}

func TestSplitPatternAndPathsPatternThenRoots(t *testing.T) {
	dir := t.TempDir()
	pat, roots := splitPatternAndPaths([]string{`\.go$`, dir})
	if pat != `\.go$` || len(roots) != 1 || roots[0] != dir {
		t.Errorf("got (%q, %v)", pat, roots)
	}
}

func TestParseSizeFiltersOperators(t *testing.T) {
	cs, err := parseSizeFilters([]string{"+10M", "-1k", "100"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cs) != 3 {
		t.Fatalf("got %d constraints, want 3", len(cs))
	}
	if cs[0].Op != filter.SizeGreater || cs[0].Bytes != 10_000_000 {
		t.Errorf("constraint 0 = %+v", cs[0])
	}
	if cs[1].Op != filter.SizeLess || cs[1].Bytes != 1000 {
		t.Errorf("constraint 1 = %+v", cs[1])
	}
	if cs[2].Op != filter.SizeEqual || cs[2].Bytes != 100 {
		t.Errorf("constraint 2 = %+v", cs[2])
	}
}

func TestParseSizeFiltersRejectsGarbage(t *testing.T) {
	if _, err := parseSizeFilters([]string{"not-a-size"}); err == nil {
		t.Error("expected error for malformed size filter")
	}
}

func TestParseTypesKnownShorthands(t *testing.T) {
	kinds, err := parseTypes([]string{"f", "d", "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []filter.Kind{filter.KindFile, filter.KindDirectory, filter.KindExecutable}
	for i, k := range want {
		if kinds[i] != k {
			t.Errorf("kinds[%d] = %v, want %v", i, kinds[i], k)
		}
	}
}

func TestParseTypesRejectsUnknown(t *testing.T) {
	if _, err := parseTypes([]string{"bogus"}); err == nil {
		t.Error("expected error for unknown --type token")
	}
}

func TestParseRelativeTimeIsInThePast(t *testing.T) {
	ref, err := parseRelativeTime("1h")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ref.Before(time.Now()) {
		t.Error("parseRelativeTime should return a timestamp in the past")
	}
}

func TestBuildConfigWiresExec(t *testing.T) {
	opts := &searchOptions{execCmd: []string{"echo", "{}"}, threads: 1, colorMode: "auto"}
	cfg, err := buildConfig(opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Command == nil || len(cfg.Command.Argv) != 2 {
		t.Fatalf("Command = %+v", cfg.Command)
	}
	if cfg.LSColors.Enabled {
		t.Error("color should be disabled when an exec command is configured")
	}
}

func TestStripLeadingDots(t *testing.T) {
	got := stripLeadingDots([]string{".go", "txt", ".md"})
	want := []string{"go", "txt", "md"}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("got[%d] = %q, want %q", i, got[i], w)
		}
	}
}
