package receiver

import (
	"os"
	"sync"

	"github.com/gofd/gofd/internal/exitcode"
	"github.com/gofd/gofd/internal/executor"
	"github.com/gofd/gofd/internal/printer"
	"github.com/gofd/gofd/internal/worker"
)

// Exec drains results when config.command is present (spec.md §4.D.1).
type Exec struct {
	Spec                executor.CommandSpec
	Threads             int
	ShowFSErrors        bool
	EnableOutputBuffering bool
}

// Batch consumes every entry before invoking the command exactly once over
// all of them. The argument list is not split into chunks, however long it
// grows.
func (e *Exec) Batch(ch <-chan worker.Result) exitcode.ExitCode {
	var paths []string
	for res := range ch {
		if res.Err != nil {
			if e.ShowFSErrors {
				printer.PrintError(res.Err)
			}
			continue
		}
		paths = append(paths, res.Path)
	}
	if len(paths) == 0 {
		return exitcode.Success
	}

	result, err := executor.Run(e.Spec, paths)
	if err != nil {
		printer.PrintError(err)
		return exitcode.GeneralError
	}
	os.Stdout.Write(result.Stdout)
	os.Stderr.Write(result.Stderr)
	if result.ExitCode != 0 {
		return exitcode.GeneralError
	}
	return exitcode.Success
}

// PerEntry spawns exactly Threads job goroutines sharing ch and an
// out-perm mutex serializing their output, matching spec.md §4.D.1's
// per-entry sub-mode.
func (e *Exec) PerEntry(ch <-chan worker.Result) exitcode.ExitCode {
	threads := e.Threads
	if threads < 1 {
		threads = 1
	}

	var outPerm sync.Mutex
	codes := make([]exitcode.ExitCode, threads)

	var wg sync.WaitGroup
	for i := 0; i < threads; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = e.job(ch, &outPerm)
		}(i)
	}
	wg.Wait()

	return exitcode.Merge(codes)
}

func (e *Exec) job(ch <-chan worker.Result, outPerm *sync.Mutex) exitcode.ExitCode {
	if e.EnableOutputBuffering {
		return e.bufferedJob(ch, outPerm)
	}
	return e.directJob(ch, outPerm)
}

// bufferedJob captures each command's output fully before acquiring
// out-perm, so one job's write can never interleave mid-write with a
// sibling's (spec.md §4.D.2) — the multi-thread case.
func (e *Exec) bufferedJob(ch <-chan worker.Result, outPerm *sync.Mutex) exitcode.ExitCode {
	code := exitcode.Success
	for res := range ch {
		if res.Err != nil {
			if e.ShowFSErrors {
				outPerm.Lock()
				printer.PrintError(res.Err)
				outPerm.Unlock()
			}
			continue
		}

		result, err := executor.Run(e.Spec, []string{res.Path})

		outPerm.Lock()
		if err != nil {
			printer.PrintError(err)
			code = exitcode.GeneralError
		} else {
			os.Stdout.Write(result.Stdout)
			os.Stderr.Write(result.Stderr)
			if result.ExitCode != 0 {
				code = exitcode.GeneralError
			}
		}
		outPerm.Unlock()
	}
	return code
}

// directJob streams each command's stdout/stderr straight through instead
// of buffering it first: with a single job goroutine there is no sibling
// to interleave with, so the capture-then-copy step buffering exists for
// is pure overhead.
func (e *Exec) directJob(ch <-chan worker.Result, outPerm *sync.Mutex) exitcode.ExitCode {
	code := exitcode.Success
	for res := range ch {
		if res.Err != nil {
			if e.ShowFSErrors {
				outPerm.Lock()
				printer.PrintError(res.Err)
				outPerm.Unlock()
			}
			continue
		}

		exitStatus, err := executor.RunDirect(e.Spec, []string{res.Path})
		if err != nil {
			outPerm.Lock()
			printer.PrintError(err)
			outPerm.Unlock()
			code = exitcode.GeneralError
		} else if exitStatus != 0 {
			code = exitcode.GeneralError
		}
	}
	return code
}
