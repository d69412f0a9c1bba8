// Package cancel implements the two-stage Ctrl-C handshake: the first
// SIGINT asks workers and the receiver to wind down cooperatively, the
// second exits the process immediately.
package cancel

import (
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
)

// Flag is a process-wide, monotonic cancellation flag. The zero value is
// ready to use and starts unset.
type Flag struct {
	set      atomic.Bool
	installC chan os.Signal
	once     sync.Once
}

// IsSet reports whether the flag has been raised. Workers check this once
// per visited entry; the printer checks it before each write.
func (f *Flag) IsSet() bool {
	return f.set.Load()
}

// Install registers a SIGINT handler that raises the flag on first Ctrl-C
// and calls os.Exit(130) on the second, bypassing any further cleanup.
// Install is idempotent: calling it more than once on the same Flag has no
// additional effect. Callers gate this on config — it should only run when
// ls_colors is set and no --exec command was given (see spec.md §4.E).
func (f *Flag) Install() {
	f.once.Do(func() {
		f.installC = make(chan os.Signal, 1)
		signal.Notify(f.installC, syscall.SIGINT)
		go f.handle()
	})
}

func (f *Flag) handle() {
	for range f.installC {
		if f.set.Load() {
			// Second Ctrl-C: exit now, skip destructors/deferred cleanup.
			os.Exit(130)
		}
		f.set.Store(true)
	}
}
