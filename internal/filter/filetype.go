package filter

import (
	"io/fs"

	"github.com/gofd/gofd/internal/direntry"
)

// Kind is one of the file-type categories gofd's "--type" flag selects.
type Kind int

const (
	KindFile Kind = iota
	KindDirectory
	KindSymlink
	KindExecutable
	KindEmpty
	KindSocket
	KindPipe
	KindBlockDevice
	KindCharDevice
)

// TypePredicate keeps entries matching any of a set of Kinds. An empty
// TypePredicate keeps everything (spec.md §4.C step 6 is only applied "if
// configured").
type TypePredicate struct {
	kinds []Kind
}

// NewTypePredicate builds a TypePredicate from the requested kinds.
func NewTypePredicate(kinds ...Kind) *TypePredicate {
	return &TypePredicate{kinds: kinds}
}

// Keep consumes the DirEntry (this may trigger a metadata fetch) and
// reports whether it matches at least one configured Kind.
func (p *TypePredicate) Keep(e *direntry.Entry) bool {
	if len(p.kinds) == 0 {
		return true
	}
	for _, k := range p.kinds {
		if matchesKind(e, k) {
			return true
		}
	}
	return false
}

func matchesKind(e *direntry.Entry, k Kind) bool {
	switch k {
	case KindDirectory:
		ft, known := e.FileType()
		return known && ft&fs.ModeDir != 0
	case KindSymlink:
		ft, known := e.FileType()
		return known && ft&fs.ModeSymlink != 0
	case KindSocket:
		ft, known := e.FileType()
		return known && ft&fs.ModeSocket != 0
	case KindPipe:
		ft, known := e.FileType()
		return known && ft&fs.ModeNamedPipe != 0
	case KindBlockDevice:
		ft, known := e.FileType()
		return known && ft&fs.ModeDevice != 0 && ft&fs.ModeCharDevice == 0
	case KindCharDevice:
		ft, known := e.FileType()
		return known && ft&fs.ModeDevice != 0 && ft&fs.ModeCharDevice != 0
	case KindExecutable:
		info := e.Metadata()
		return info != nil && info.Mode().IsRegular() && info.Mode().Perm()&0o111 != 0
	case KindEmpty:
		info := e.Metadata()
		if info == nil {
			return false
		}
		if info.IsDir() {
			return isEmptyDir(e.Path())
		}
		return info.Mode().IsRegular() && info.Size() == 0
	default: // KindFile
		ft, known := e.FileType()
		if known {
			return ft&(fs.ModeDir|fs.ModeSymlink|fs.ModeSocket|fs.ModeNamedPipe|fs.ModeDevice) == 0
		}
		info := e.Metadata()
		return info != nil && info.Mode().IsRegular()
	}
}
