package fswalk

import "github.com/gofd/gofd/internal/direntry"

// State is returned by a Visitor to control how the walker proceeds past
// the current entry (spec.md §4.C: Continue/Skip/Quit).
type State int

const (
	// Continue proceeds normally: directories are still descended into.
	Continue State = iota
	// Skip proceeds but does not descend into the current directory; for a
	// non-directory entry it behaves like Continue.
	Skip
	// Quit aborts the entire walk as soon as every in-flight directory read
	// observes it. Used both for cooperative cancellation and for a
	// channel-send failure indicating the receiver has gone away.
	Quit
)

// Visitor is invoked once per entry discovered by the walker, starting at
// depth 1; the root itself (depth 0) is never passed to it.
type Visitor func(entry *direntry.Entry) State
