// Package executor runs the user-supplied command against matched entries,
// the "Command executor" collaborator spec.md §1 declares out of scope for
// the core ("consumes the result channel and runs per-path or batched
// subprocesses; the core hands it the receiver endpoint"). This is the
// concrete implementation internal/receiver drives.
package executor

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Mode selects whether Command is invoked once per entry or once for a
// whole batch of entries.
type Mode int

const (
	// ModePerEntry invokes Command once per accepted path.
	ModePerEntry Mode = iota
	// ModeBatch invokes Command once over every path (no chunking).
	ModeBatch
)

// CommandSpec is a parsed "--exec"/"--exec-batch" template: the command
// name plus its argument tokens, each of which may contain placeholders.
type CommandSpec struct {
	Mode Mode
	Argv []string // argv[0] is the program name
}

// HasPlaceholder reports whether the spec references any path placeholder.
// An exec command with no placeholder implicitly appends "{}" as the final
// argument, matching the convention of every example that wraps a raw
// shell command in an exec-style flag.
func (s CommandSpec) HasPlaceholder() bool {
	for _, tok := range s.Argv {
		if containsPlaceholder(tok) {
			return true
		}
	}
	return false
}

var placeholders = []string{"{}", "{.}", "{/}", "{//}", "{/.}"}

func containsPlaceholder(tok string) bool {
	for _, p := range placeholders {
		if strings.Contains(tok, p) {
			return true
		}
	}
	return false
}

// Expand substitutes every placeholder in tok with its value for path:
//
//	{}    the full path
//	{.}   the path without its file extension
//	{/}   the base name
//	{//}  the parent directory
//	{/.}  the base name without its file extension
func Expand(tok, path string) string {
	r := strings.NewReplacer(
		"{}", path,
		"{.}", stripExt(path),
		"{/}", filepath.Base(path),
		"{//}", filepath.Dir(path),
		"{/.}", stripExt(filepath.Base(path)),
	)
	return r.Replace(tok)
}

func stripExt(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return path
	}
	return strings.TrimSuffix(path, ext)
}

// BuildArgv expands every placeholder token in spec.Argv against paths. For
// ModePerEntry, paths has exactly one element. For ModeBatch, any token
// containing a placeholder is repeated once per path; tokens without a
// placeholder appear once, verbatim.
func BuildArgv(spec CommandSpec, paths []string) []string {
	if !spec.HasPlaceholder() {
		argv := make([]string, 0, len(spec.Argv)+len(paths))
		argv = append(argv, spec.Argv...)
		argv = append(argv, paths...)
		return argv
	}

	argv := make([]string, 0, len(spec.Argv)*len(paths))
	for _, tok := range spec.Argv {
		if !containsPlaceholder(tok) {
			argv = append(argv, tok)
			continue
		}
		for _, p := range paths {
			argv = append(argv, Expand(tok, p))
		}
	}
	return argv
}

// Result is the outcome of one command invocation: stdout/stderr captured
// so the caller can serialize them through out-perm without interleaving
// with a sibling job's output.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Run executes spec against paths and returns its captured output. It
// never returns an error for a nonzero exit: that's surfaced via
// Result.ExitCode so the caller can fold it into the exit-code lattice.
//
// Run always buffers: the caller needs the bytes in hand to release them
// through out-perm without interleaving with a sibling job. RunDirect is
// the uncontended alternative for when no other job can interleave.
func Run(spec CommandSpec, paths []string) (Result, error) {
	argv := BuildArgv(spec, paths)
	if len(argv) == 0 {
		return Result{}, os.ErrInvalid
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if exitErr, ok := err.(*exec.ExitError); ok {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	if err != nil {
		return res, err
	}
	return res, nil
}

// RunDirect executes spec against paths with the child's stdout/stderr
// connected straight through to this process's, skipping the
// capture-then-copy Run performs. Only safe when the caller guarantees no
// sibling job can write over the same out-perm concurrently (the
// single-thread case, where there is no contention to serialize against).
func RunDirect(spec CommandSpec, paths []string) (int, error) {
	argv := BuildArgv(spec, paths)
	if len(argv) == 0 {
		return 0, os.ErrInvalid
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return 0, err
	}
	return 0, nil
}
