// Package config defines the prebuilt configuration bundle the scan engine
// consumes. Argument parsing, help text, and predicate construction are all
// CLI-layer concerns (spec.md §1); cmd/gofd builds a Config and hands it to
// internal/scanengine unchanged.
package config

import (
	"time"

	"github.com/gofd/gofd/internal/executor"
	"github.com/gofd/gofd/internal/filter"
)

// Config is the full set of knobs the core reads. Every field here is read
// by internal/scanengine (which forwards the walker and receiver settings
// to internal/fswalk and internal/receiver) or by internal/worker — nothing
// here is decorative.
type Config struct {
	// Walker toggles (spec.md §3).
	IgnoreHidden     bool
	ReadFdignore     bool
	ReadParentIgnore bool
	ReadVCSIgnore    bool
	ReadGlobalIgnore bool
	FollowLinks      bool
	OneFileSystem    bool

	MaxDepth *uint
	MinDepth *uint

	Threads       uint
	MaxBufferTime time.Duration
	MaxResults    *uint

	ExcludePatterns []string
	IgnoreFiles     []string

	SearchFullPath bool
	Extensions     []string // file extensions without the leading dot

	TypePredicate   *filter.TypePredicate
	OwnerConstraint *filter.OwnerConstraint
	SizeConstraints []filter.SizeConstraint
	TimeConstraints []filter.TimeConstraint

	Prune               bool
	Quiet               bool
	ShowFilesystemErrors bool

	Command  *executor.CommandSpec
	LSColors *LSColors

	// ShowProgress enables the stderr spinner tracking scanned/matched
	// counts while the walk is in flight (supplemented feature, SPEC_FULL.md
	// §9; not part of the distilled spec.md).
	ShowProgress bool
}

// LSColors carries the decoration rules the printer applies. A non-nil
// LSColors with Enabled set, together with no Command, gates installation
// of the Ctrl-C handler (spec.md §4.E): colored interactive output can
// leave the terminal in an inconsistent state if killed mid-write, so only
// that combination installs the signal handler.
type LSColors struct {
	Enabled bool
}

// DefaultMaxBufferTime is the default buffer/stream mode-switch timeout
// (spec.md §4.D.2). The CLI's --max-buffer-time default and the receiver's
// own fallback for a zero MaxBufferTime are both written as the same
// 100 ms literal; neither reads this constant.
const DefaultMaxBufferTime = 100 * time.Millisecond

// EnableOutputBuffering implements spec.md §4.D.2's "Single-thread
// buffering flag": with one thread there is no out-perm contention, so
// per-job buffering before release is pointless.
func (c Config) EnableOutputBuffering() bool {
	return c.Threads > 1
}
