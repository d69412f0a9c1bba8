package fswalk

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// ignoreLevel is the compiled ignore rules contributed by one directory
// (its .gitignore/.ignore/.fdignore, if present). Patterns are matched
// against paths relative to the directory that owns the level, mirroring
// sabhiram/go-gitignore's own matching convention (see
// AbdelazizMoustafa10m-Harvx's GitignoreMatcher, grounding this package).
type ignoreLevel struct {
	dir     string
	matcher *gitignore.GitIgnore
}

// ignoreStack accumulates ignoreLevels from the walk root down to the
// current directory; read_parent_ignore means every ancestor's rules apply
// to descendants, so a child directory's stack is its parent's stack plus
// whatever that child contributes itself.
type ignoreStack struct {
	levels []ignoreLevel
}

func (s ignoreStack) push(dir string, lines []string) ignoreStack {
	if len(lines) == 0 {
		return s
	}
	m, err := gitignore.CompileIgnoreLines(lines...)
	if err != nil || m == nil {
		return s
	}
	next := make([]ignoreLevel, len(s.levels), len(s.levels)+1)
	copy(next, s.levels)
	next = append(next, ignoreLevel{dir: dir, matcher: m})
	return ignoreStack{levels: next}
}

// isIgnored reports whether relPath (relative to the walk root, forward
// slashes) is excluded by any level in the stack. isDir selects whether
// directory-only patterns (trailing "/") are eligible to match.
func (s ignoreStack) isIgnored(relPath string, isDir bool) bool {
	matchPath := relPath
	if isDir && !strings.HasSuffix(matchPath, "/") {
		matchPath += "/"
	}
	for _, lvl := range s.levels {
		rel := matchPath
		if lvl.dir != "" {
			prefix := lvl.dir + "/"
			if !strings.HasPrefix(matchPath, prefix) {
				continue
			}
			rel = strings.TrimPrefix(matchPath, prefix)
		}
		if lvl.matcher.MatchesPath(rel) {
			return true
		}
	}
	return false
}

// ignoreFileNames lists the candidate ignore file basenames a single
// directory may contribute, in the order spec.md §6 enumerates them.
func ignoreFileNames(readVCSIgnore, readFdignore bool) []string {
	var names []string
	if readVCSIgnore {
		names = append(names, ".gitignore")
	}
	if readFdignore {
		names = append(names, ".ignore", ".fdignore")
	}
	return names
}

func readLinesIfExists(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return strings.Split(string(data), "\n")
}

// globalIgnoreFilePath resolves the platform config-dir + "/fd/ignore"
// path spec.md §4.C and the open questions in §9 describe: macOS honors
// XDG_CONFIG_HOME only when it's absolute, falling back to
// $HOME/.config; other platforms use their native config-dir convention.
func globalIgnoreFilePath() string {
	var configDir string
	switch runtime.GOOS {
	case "darwin":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); filepath.IsAbs(xdg) {
			configDir = xdg
		} else if home, err := os.UserHomeDir(); err == nil {
			configDir = filepath.Join(home, ".config")
		}
	case "windows":
		configDir = os.Getenv("APPDATA")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			configDir = xdg
		} else if home, err := os.UserHomeDir(); err == nil {
			configDir = filepath.Join(home, ".config")
		}
	}
	if configDir == "" {
		return ""
	}
	return filepath.Join(configDir, "fd", "ignore")
}
