// Package pattern wraps a pre-compiled byte-regex as the single narrow
// contract the scan core needs from a regex engine: Match(bytes) -> bool.
//
// The regex engine itself is explicitly out of scope for the core (spec.md
// §1): callers compile the pattern (case sensitivity, smart-case, fixed
// strings, etc. are all CLI/config concerns) and hand the core a Matcher.
// No third-party byte-oriented regex engine appears anywhere in the example
// corpus, so this wraps the standard library's regexp.Regexp, which already
// exposes exactly the needed Match([]byte) bool method (see DESIGN.md).
package pattern

import "regexp"

// Matcher is the narrow interface the worker pool depends on.
type Matcher interface {
	Match(b []byte) bool
}

// Regexp adapts *regexp.Regexp to Matcher.
type Regexp struct {
	re *regexp.Regexp
}

// Compile compiles expr and returns a Matcher, or an error if expr is not a
// valid regular expression.
func Compile(expr string) (*Regexp, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &Regexp{re: re}, nil
}

// Match reports whether b contains any match of the compiled pattern.
func (r *Regexp) Match(b []byte) bool {
	return r.re.Match(b)
}
