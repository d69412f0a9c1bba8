// Package scanengine wires the core components together (spec.md §4.F,
// Component F: "Scan Driver"): it builds the walker, spawns the receiver
// and worker pipeline, joins them, and collapses the outcome into a final
// ExitCode.
package scanengine

import (
	"errors"
	"os"
	"regexp"
	"time"

	"github.com/gofd/gofd/internal/cancel"
	"github.com/gofd/gofd/internal/config"
	"github.com/gofd/gofd/internal/executor"
	"github.com/gofd/gofd/internal/exitcode"
	"github.com/gofd/gofd/internal/fswalk"
	"github.com/gofd/gofd/internal/pattern"
	"github.com/gofd/gofd/internal/printer"
	"github.com/gofd/gofd/internal/progress"
	"github.com/gofd/gofd/internal/receiver"
	"github.com/gofd/gofd/internal/worker"
)

// channelSink adapts a chan worker.Result to worker.Sink. Once done is
// closed (the receiver has returned), Send reports false instead of
// blocking on a channel nobody drains any more.
type channelSink struct {
	ch   chan worker.Result
	done <-chan struct{}
}

func (s channelSink) Send(r worker.Result) bool {
	select {
	case s.ch <- r:
		return true
	case <-s.done:
		return false
	}
}

// Scan is the core API entry point: spec.md §6's
// `scan(paths, pattern, config) -> ExitCode`.
func Scan(paths []string, pat pattern.Matcher, cfg *config.Config) (exitcode.ExitCode, error) {
	if len(paths) == 0 {
		return exitcode.GeneralError, errors.New("gofd: path vector can not be empty")
	}

	walker, err := fswalk.New(fswalk.Options{
		IgnoreHidden:     cfg.IgnoreHidden,
		ReadFdignore:     cfg.ReadFdignore,
		ReadParentIgnore: cfg.ReadParentIgnore,
		ReadVCSIgnore:    cfg.ReadVCSIgnore,
		ReadGlobalIgnore: cfg.ReadGlobalIgnore,
		FollowLinks:      cfg.FollowLinks,
		OneFileSystem:    cfg.OneFileSystem,
		MaxDepth:         cfg.MaxDepth,
		Threads:          int(cfg.Threads),
		ExcludePatterns:  cfg.ExcludePatterns,
		IgnoreFiles:      cfg.IgnoreFiles,
	})
	if err != nil {
		return exitcode.GeneralError, err
	}

	var cancelFlag cancel.Flag
	if cfg.LSColors != nil && cfg.LSColors.Enabled && cfg.Command == nil {
		cancelFlag.Install()
	}

	resultCh := make(chan worker.Result, 1000)

	var extRegex pattern.Matcher
	if len(cfg.Extensions) > 0 {
		re, err := extensionMatcher(cfg.Extensions)
		if err != nil {
			return exitcode.GeneralError, err
		}
		extRegex = re
	}

	bar := progress.New(cfg.ShowProgress)

	receiverGone := make(chan struct{})
	pipeline := &worker.Pipeline{
		Cfg:      cfg,
		Pattern:  pat,
		ExtRegex: extRegex,
		Cancel:   &cancelFlag,
		Sink:     channelSink{ch: resultCh, done: receiverGone},
		Stats:    bar.Stats(),
	}

	receiverDone := make(chan exitcode.ExitCode, 1)
	go func() {
		code := runReceiver(cfg, resultCh, &cancelFlag)
		close(receiverGone)
		receiverDone <- code
	}()

	tickDone := make(chan struct{})
	if cfg.ShowProgress {
		go tickProgress(bar, tickDone)
	}

	walker.Walk(paths, pipeline.Visitor(), pipeline.ErrorVisitor())
	close(resultCh)

	if cfg.ShowProgress {
		close(tickDone)
	}
	bar.Finish()

	result := <-receiverDone

	if cancelFlag.IsSet() {
		return exitcode.KilledBySigint, nil
	}
	return result, nil
}

// extensionMatcher builds a single regex matching any of the configured
// extensions (without their leading dot) at the end of a file name,
// mirroring fd's own "--extension" regex construction.
func extensionMatcher(extensions []string) (pattern.Matcher, error) {
	expr := `\.(`
	for i, ext := range extensions {
		if i > 0 {
			expr += "|"
		}
		expr += regexp.QuoteMeta(ext)
	}
	expr += `)$`
	return pattern.Compile(expr)
}

// tickProgress redraws the spinner at a fixed cadence until the walk
// finishes and closes done.
func tickProgress(bar *progress.Bar, done <-chan struct{}) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			bar.Tick()
		case <-done:
			return
		}
	}
}

func runReceiver(cfg *config.Config, ch chan worker.Result, cancelFlag *cancel.Flag) exitcode.ExitCode {
	if cfg.Command != nil {
		ex := &receiver.Exec{
			Spec:                  *cfg.Command,
			Threads:               int(cfg.Threads),
			ShowFSErrors:          cfg.ShowFilesystemErrors,
			EnableOutputBuffering: cfg.EnableOutputBuffering(),
		}
		if cfg.Command.Mode == executor.ModeBatch {
			return ex.Batch(ch)
		}
		return ex.PerEntry(ch)
	}

	var p printer.Printer = printer.NewPlain()
	if printer.ColorsEnabled(cfg.LSColors != nil && cfg.LSColors.Enabled) {
		p = printer.NewColored(isDirPath, isExePath, isSymlinkPath)
	}

	inter := &receiver.Interactive{
		Printer:       p,
		Quiet:         cfg.Quiet,
		ShowFSErrors:  cfg.ShowFilesystemErrors,
		MaxResults:    cfg.MaxResults,
		MaxBufferTime: cfg.MaxBufferTime,
		Cancel:        cancelFlag,
	}
	code := inter.Drain(ch)
	p.Flush()
	return code
}

func isDirPath(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isExePath(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular() && info.Mode().Perm()&0o111 != 0
}

func isSymlinkPath(path string) bool {
	info, err := os.Lstat(path)
	return err == nil && info.Mode()&os.ModeSymlink != 0
}
