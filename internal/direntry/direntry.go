// Package direntry provides a uniform view over a normal traversal entry
// and a broken-symlink placeholder, with lazily cached metadata.
//
// A broken symlink (one whose target is missing) would otherwise be dropped
// silently by the underlying walker. Lifting it into a first-class Entry
// preserves discoverability while marking its depth and type as best-effort.
package direntry

import (
	"io/fs"
	"os"
	"sync"
)

// Entry is a closed, two-variant sum: a Normal entry produced by the walker,
// or a BrokenSymlink placeholder for a path the walker reported as
// "not found" but which has its own symlink metadata.
type Entry struct {
	path  string
	depth int
	// hasDepth is false only for BrokenSymlink entries, whose depth the
	// walker cannot report.
	hasDepth bool

	fileType    fs.FileMode
	hasFileType bool

	broken bool

	// metaOnce guarantees the stat syscall in Metadata runs at most once
	// per Entry, regardless of how many predicates in the filter pipeline
	// call Metadata()/FileType().
	metaOnce sync.Once
	meta     fs.FileInfo // nil if the stat failed; the failure itself is cached.
}

// NewNormal wraps a traversal-library entry. fileType/hasFileType mirror the
// walker's possibly-unknown file type for this entry; depth is always known
// for normal entries.
func NewNormal(path string, depth int, fileType fs.FileMode, hasFileType bool) *Entry {
	return &Entry{
		path:        path,
		depth:       depth,
		hasDepth:    true,
		fileType:    fileType,
		hasFileType: hasFileType,
	}
}

// NewBrokenSymlink wraps a path whose traversal raised "not found" but whose
// own symlink metadata exists. Its depth is unknown.
func NewBrokenSymlink(path string) *Entry {
	return &Entry{path: path, broken: true}
}

// Path always returns the entry's filesystem path; it never fails.
func (e *Entry) Path() string {
	return e.path
}

// IsBrokenSymlink reports whether this entry is the BrokenSymlink variant.
func (e *Entry) IsBrokenSymlink() bool {
	return e.broken
}

// Depth returns the walker-reported depth for a Normal entry, or
// (0, false) for a BrokenSymlink, whose depth is unknown. The worker
// pipeline treats "unknown depth" as failing any min_depth test.
func (e *Entry) Depth() (depth int, known bool) {
	return e.depth, e.hasDepth
}

// FileType returns the entry's file-type bits, if known. For a Normal entry
// this comes straight from the walker; for a BrokenSymlink it is derived
// from the (lazily fetched) symlink metadata, and is unknown if that stat
// failed.
func (e *Entry) FileType() (fs.FileMode, bool) {
	if e.broken {
		meta := e.Metadata()
		if meta == nil {
			return 0, false
		}
		return meta.Mode().Type(), true
	}
	return e.fileType, e.hasFileType
}

// Metadata lazily fetches and caches this entry's metadata: os.Stat for a
// Normal entry, os.Lstat (symlink metadata) for a BrokenSymlink. The fetch
// happens at most once; a stat failure caches nil and is never retried.
func (e *Entry) Metadata() fs.FileInfo {
	e.metaOnce.Do(func() {
		var info fs.FileInfo
		var err error
		if e.broken {
			info, err = os.Lstat(e.path)
		} else {
			info, err = os.Stat(e.path)
		}
		if err == nil {
			e.meta = info
		}
	})
	return e.meta
}
