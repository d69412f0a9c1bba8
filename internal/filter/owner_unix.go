//go:build unix

package filter

import (
	"strconv"
	"syscall"

	"github.com/gofd/gofd/internal/direntry"
)

// OwnerConstraint restricts matches to entries owned by a given uid and/or
// gid ("--owner user:group", spec.md §4.C step 7). A zero value for either
// field with its *Any flag set skips that half of the check.
type OwnerConstraint struct {
	UID    uint32
	AnyUID bool
	GID    uint32
	AnyGID bool
}

// Keep consumes the entry's metadata and reports whether its owning uid/gid
// satisfy the constraint. An entry whose metadata cannot be fetched, or
// whose platform doesn't expose a syscall.Stat_t, never matches.
func (c OwnerConstraint) Keep(e *direntry.Entry) bool {
	info := e.Metadata()
	if info == nil {
		return false
	}
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return false
	}
	if !c.AnyUID && stat.Uid != c.UID {
		return false
	}
	if !c.AnyGID && stat.Gid != c.GID {
		return false
	}
	return true
}

// ParseOwner parses a "uid[:gid]" spec where either side may be "-" to mean
// "any". Only numeric uid/gid strings are accepted; user and group names
// are not resolved, here or in the CLI, and are rejected as parse errors.
func ParseOwner(uidField, gidField string) (OwnerConstraint, error) {
	var c OwnerConstraint
	if uidField == "" || uidField == "-" {
		c.AnyUID = true
	} else {
		uid, err := strconv.ParseUint(uidField, 10, 32)
		if err != nil {
			return OwnerConstraint{}, err
		}
		c.UID = uint32(uid)
	}
	if gidField == "" || gidField == "-" {
		c.AnyGID = true
	} else {
		gid, err := strconv.ParseUint(gidField, 10, 32)
		if err != nil {
			return OwnerConstraint{}, err
		}
		c.GID = uint32(gid)
	}
	return c, nil
}
