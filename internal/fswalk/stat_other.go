//go:build !unix

package fswalk

import "os"

// deviceID and devIno have no portable equivalent outside POSIX; on these
// platforms one_file_system and symlink-loop detection are simply
// unavailable, matching upstream's "no need to check for supported
// platforms, option is unavailable on unsupported ones" note (spec.md's
// original walker sets same_file_system unconditionally and relies on the
// underlying library to no-op where unsupported).
func deviceID(info os.FileInfo) (uint64, bool) { return 0, false }

func devIno(info os.FileInfo) (dev, ino uint64, ok bool) { return 0, 0, false }

func devInoKey(dev, ino uint64) string { return "" }
