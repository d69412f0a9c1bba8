// Package progress adapts a spinner-style progress indicator onto the
// scan — an ambient CLI nicety, not part of the core engine spec.md
// describes. It writes exclusively to stderr so it never interleaves with
// matched paths streamed to stdout, the same separation the original
// dupedog progress bar kept between itself and scan results.
package progress

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
)

const updateInterval = 50 * time.Millisecond

// Stats tracks scan progress with atomic counters so any worker goroutine
// can update them without lock contention.
type Stats struct {
	Scanned   atomic.Int64
	Matched   atomic.Int64
	startTime time.Time
}

func (s *Stats) String() string {
	return fmt.Sprintf("scanned %s entries, matched %s, %.1fs elapsed",
		humanize.Comma(s.Scanned.Load()), humanize.Comma(s.Matched.Load()),
		time.Since(s.startTime).Seconds())
}

// Bar wraps progressbar with enabled/disabled handling; every method is a
// no-op when disabled so callers don't need to branch on whether
// --progress was requested.
type Bar struct {
	bar   *progressbar.ProgressBar
	stats *Stats
}

// New creates a spinner-mode progress bar on stderr. If enabled is false,
// the returned Bar's methods are all no-ops.
func New(enabled bool) *Bar {
	stats := &Stats{startTime: time.Now()}
	if !enabled {
		return &Bar{stats: stats}
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionThrottle(updateInterval),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetElapsedTime(false),
	)
	return &Bar{bar: bar, stats: stats}
}

// Stats exposes the counters for the worker pipeline to update.
func (b *Bar) Stats() *Stats { return b.stats }

// Tick refreshes the spinner's description from the current stats. Safe to
// call frequently; progressbar throttles the actual redraw.
func (b *Bar) Tick() {
	if b.bar != nil {
		b.bar.Describe(b.stats.String())
	}
}

// Finish clears the spinner and prints a final summary line.
func (b *Bar) Finish() {
	if b.bar != nil {
		_ = b.bar.Finish()
		fmt.Fprintln(os.Stderr, "done: "+b.stats.String())
	}
}
