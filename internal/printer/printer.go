// Package printer owns writing one formatted entry to stdout and one error
// line to stderr — the "Output printer" spec.md §1 calls out of scope for
// the core ("formats and writes a single entry with color/indicator
// decoration"). internal/receiver drives it through the narrow Printer
// interface; cmd/gofd decides at startup which implementation to build.
package printer

import (
	"bufio"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/gofd/gofd/internal/cancel"
)

// Printer writes one matched path. cancelFlag lets a colored printer skip
// emitting a trailing reset sequence once cancellation has begun, exactly
// as spec.md §4.E describes ("the printer observes before each write").
type Printer interface {
	Print(path string, cancelFlag *cancel.Flag)
	Flush()
}

// Plain writes each path unmodified, one per line.
type Plain struct {
	w *bufio.Writer
}

// NewPlain builds a Plain printer writing to stdout.
func NewPlain() *Plain {
	return &Plain{w: bufio.NewWriter(os.Stdout)}
}

func (p *Plain) Print(path string, _ *cancel.Flag) {
	fmt.Fprintln(p.w, path)
}

func (p *Plain) Flush() { _ = p.w.Flush() }

// Colored decorates each path with lipgloss styles selected by the
// entry's kind (directory/executable/symlink/plain), honoring NO_COLOR.
type Colored struct {
	w        *bufio.Writer
	dirStyle lipgloss.Style
	exeStyle lipgloss.Style
	symStyle lipgloss.Style
	isDir    func(path string) bool
	isExe    func(path string) bool
	isSym    func(path string) bool
}

// NewColored builds a color-decorating printer. classify* predicates let
// the caller reuse whatever metadata it already fetched while filtering
// instead of re-statting every printed path.
func NewColored(isDir, isExe, isSym func(path string) bool) *Colored {
	return &Colored{
		w:        bufio.NewWriter(os.Stdout),
		dirStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
		exeStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		symStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		isDir:    isDir,
		isExe:    isExe,
		isSym:    isSym,
	}
}

func (p *Colored) Print(path string, cancelFlag *cancel.Flag) {
	if cancelFlag != nil && cancelFlag.IsSet() {
		// Cancellation has begun: avoid starting a new styled escape
		// sequence that a second Ctrl-C's immediate exit might leave
		// unterminated on the terminal.
		fmt.Fprintln(p.w, path)
		return
	}

	switch {
	case p.isDir != nil && p.isDir(path):
		fmt.Fprintln(p.w, p.dirStyle.Render(path))
	case p.isExe != nil && p.isExe(path):
		fmt.Fprintln(p.w, p.exeStyle.Render(path))
	case p.isSym != nil && p.isSym(path):
		fmt.Fprintln(p.w, p.symStyle.Render(path))
	default:
		fmt.Fprintln(p.w, path)
	}
}

func (p *Colored) Flush() { _ = p.w.Flush() }

// ColorsEnabled reports whether colored output should be used: lipgloss's
// default renderer already honors NO_COLOR and non-tty detection, but the
// CLI also disables color outright whenever `ls_colors` was never built
// (spec.md §3: "ls_colors: Option<_> (presence gates ...)").
func ColorsEnabled(lsColorsConfigured bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return lsColorsConfigured
}

// PrintError writes one traversal-error line to stderr, used whenever
// show_filesystem_errors is set (spec.md §4.D.2).
func PrintError(err error) {
	fmt.Fprintf(os.Stderr, "gofd: %v\n", err)
}
