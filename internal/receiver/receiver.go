// Package receiver implements the single-consumer mode machine that drains
// the worker pool's results (spec.md §4.D, Component D). It owns the
// buffer-then-stream decision for interactive output; exec.go implements
// the batch/per-entry sub-modes used when a command was configured.
package receiver

import (
	"sort"
	"time"

	"github.com/gofd/gofd/internal/cancel"
	"github.com/gofd/gofd/internal/exitcode"
	"github.com/gofd/gofd/internal/printer"
	"github.com/gofd/gofd/internal/worker"
)

// MaxBufferLength is the buffer-size threshold that forces a transition to
// streaming mode, independent of elapsed time (spec.md §4.D.2).
const MaxBufferLength = 1000

// mode is the Buffering/Streaming state spec.md §3 names "ReceiverMode".
type mode int

const (
	buffering mode = iota
	streaming
)

// Interactive drains results in the no-command case: it buffers up to
// MaxBufferLength entries or MaxBufferTime, whichever comes first, then
// switches to printing immediately as results arrive.
type Interactive struct {
	Printer       printer.Printer
	Quiet         bool
	ShowFSErrors  bool
	MaxResults    *uint
	MaxBufferTime time.Duration
	Cancel        *cancel.Flag
}

// Drain consumes ch until it closes (or quiet/max-results short-circuits)
// and returns the final ExitCode per spec.md §4.D.2.
func (r *Interactive) Drain(ch <-chan worker.Result) exitcode.ExitCode {
	start := time.Now()
	m := buffering
	var buffer []string
	numResults := 0

	for res := range ch {
		if res.Err != nil {
			if r.ShowFSErrors {
				printer.PrintError(res.Err)
			}
			continue
		}

		if r.Quiet {
			return exitcode.HasResultsTrue
		}

		switch m {
		case buffering:
			buffer = append(buffer, res.Path)
			maxBufferTime := r.MaxBufferTime
			if maxBufferTime == 0 {
				maxBufferTime = 100 * time.Millisecond
			}
			if len(buffer) > MaxBufferLength || time.Since(start) > maxBufferTime {
				for _, p := range buffer {
					r.Printer.Print(p, r.Cancel)
				}
				buffer = buffer[:0]
				m = streaming
			}
		case streaming:
			r.Printer.Print(res.Path, r.Cancel)
		}

		numResults++
		if r.MaxResults != nil && numResults >= int(*r.MaxResults) {
			break
		}
	}

	sort.Strings(buffer)
	for _, p := range buffer {
		r.Printer.Print(p, r.Cancel)
	}

	if r.Quiet {
		return exitcode.HasResultsFalse
	}
	return exitcode.Success
}
