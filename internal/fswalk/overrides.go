package fswalk

import "github.com/bmatcuk/doublestar/v4"

// overrideSet is the compiled form of config.ExcludePatterns: explicit
// excludes layered atop the ignore-file rules (spec.md's "Override"
// glossary entry). A pattern containing no "/" is matched against the
// entry's base name only, matching shell-glob expectations for a bare
// "*.tmp"-style pattern; a pattern with a "/" is matched against the path
// relative to the walk root.
type overrideSet struct {
	patterns []string
}

func newOverrideSet(patterns []string) (*overrideSet, error) {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, &malformedPatternError{pattern: p}
		}
	}
	cp := make([]string, len(patterns))
	copy(cp, patterns)
	return &overrideSet{patterns: cp}, nil
}

// excludes reports whether relPath (forward-slash, root-relative) or base
// matches any configured exclude pattern.
func (o *overrideSet) excludes(relPath, base string) bool {
	if o == nil {
		return false
	}
	for _, p := range o.patterns {
		target := relPath
		if !containsSlash(p) {
			target = base
		}
		if ok, _ := doublestar.Match(p, target); ok {
			return true
		}
	}
	return false
}

func containsSlash(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '/' {
			return true
		}
	}
	return false
}

// malformedPatternError is returned before any traversal begins when an
// exclude pattern fails to compile (spec.md §4.F precondition).
type malformedPatternError struct {
	pattern string
}

func (e *malformedPatternError) Error() string {
	return "malformed exclude pattern: " + e.pattern
}
