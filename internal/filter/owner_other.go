//go:build !unix

package filter

import "github.com/gofd/gofd/internal/direntry"

// OwnerConstraint is a no-op outside POSIX platforms: Windows has no
// uid/gid concept to match against (spec.md §4.C step 7 is POSIX-only).
type OwnerConstraint struct{}

// Keep always returns true on non-unix platforms.
func (c OwnerConstraint) Keep(e *direntry.Entry) bool {
	return true
}

// ParseOwner always fails on non-unix platforms; "--owner" is rejected by
// the CLI before a constraint would ever be built.
func ParseOwner(uidField, gidField string) (OwnerConstraint, error) {
	return OwnerConstraint{}, errOwnerUnsupported
}

var errOwnerUnsupported = errNotSupported("owner filtering is not supported on this platform")

type errNotSupported string

func (e errNotSupported) Error() string { return string(e) }
