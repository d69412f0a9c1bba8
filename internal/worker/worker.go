// Package worker implements the per-entry filter pipeline the walker
// invokes once per visited entry (spec.md §4.C, Component C: "Worker Pool
// (Senders)"). It has no threads of its own — internal/fswalk already
// supplies the thread-per-directory concurrency; this package is the
// closure fswalk.Visitor calls on each thread.
package worker

import (
	"path/filepath"

	"github.com/gofd/gofd/internal/cancel"
	"github.com/gofd/gofd/internal/config"
	"github.com/gofd/gofd/internal/direntry"
	"github.com/gofd/gofd/internal/filter"
	"github.com/gofd/gofd/internal/fswalk"
	"github.com/gofd/gofd/internal/pattern"
	"github.com/gofd/gofd/internal/progress"
)

// Result is one message the pipeline hands to the receiver, mirroring
// spec.md §3's WorkerResult tagged variant.
type Result struct {
	Path string
	Err  error
}

// Sink is the narrow channel-like contract the pipeline sends Results
// through; Send reports false when the receiver has gone away, which maps
// directly onto fswalk.Quit.
type Sink interface {
	Send(Result) bool
}

// Pipeline bundles everything the filter chain (spec.md §4.C steps 2-11)
// needs to classify one entry.
type Pipeline struct {
	Cfg      *config.Config
	Pattern  pattern.Matcher
	ExtRegex pattern.Matcher // nil if no --extension filter configured
	Cancel   *cancel.Flag
	Sink     Sink
	Stats    *progress.Stats // nil disables counting; Scan always supplies one, even without --progress
}

// Visitor builds an fswalk.Visitor closure bound to this pipeline, the
// function the walker calls once per entry.
func (p *Pipeline) Visitor() fswalk.Visitor {
	return func(e *direntry.Entry) fswalk.State {
		return p.visit(e)
	}
}

// ErrorVisitor builds the fswalk.ErrorVisitor that routes per-directory
// traversal errors (e.g. permission denied) into the same Sink as matched
// entries, as spec.md §4.C step 2 requires for non-broken-symlink errors.
func (p *Pipeline) ErrorVisitor() fswalk.ErrorVisitor {
	return func(path string, err error) fswalk.State {
		if !p.SendError(err) {
			return fswalk.Quit
		}
		return fswalk.Continue
	}
}

func (p *Pipeline) visit(e *direntry.Entry) fswalk.State {
	// 1. Cancellation check.
	if p.Cancel != nil && p.Cancel.IsSet() {
		return fswalk.Quit
	}

	if p.Stats != nil {
		p.Stats.Scanned.Add(1)
	}

	// 2. Entry classification already happened in fswalk (Normal vs
	// BrokenSymlink promotion); here we only apply the "depth==0 roots are
	// never emitted" rule.
	if depth, known := e.Depth(); known && depth == 0 {
		return fswalk.Continue
	}

	// 3. min_depth.
	if p.Cfg.MinDepth != nil {
		depth, known := e.Depth()
		if !known || depth < int(*p.Cfg.MinDepth) {
			return fswalk.Continue
		}
	}

	// 4. Name match.
	var searchBytes []byte
	if p.Cfg.SearchFullPath {
		abs, err := filepath.Abs(e.Path())
		if err != nil {
			abs = e.Path()
		}
		searchBytes = []byte(abs)
	} else {
		name := filepath.Base(e.Path())
		searchBytes = []byte(name)
	}
	if !p.Pattern.Match(searchBytes) {
		return fswalk.Continue
	}

	// 5. Extension predicate.
	if p.ExtRegex != nil {
		name := filepath.Base(e.Path())
		if name == "" || !p.ExtRegex.Match([]byte(name)) {
			return fswalk.Continue
		}
	}

	// 6. File-type predicate.
	if p.Cfg.TypePredicate != nil && !p.Cfg.TypePredicate.Keep(e) {
		return fswalk.Continue
	}

	// 7. Owner predicate (POSIX only).
	if p.Cfg.OwnerConstraint != nil && !p.Cfg.OwnerConstraint.Keep(e) {
		return fswalk.Continue
	}

	// 8. Size predicates.
	if len(p.Cfg.SizeConstraints) > 0 {
		info := e.Metadata()
		if info == nil || info.IsDir() || !info.Mode().IsRegular() {
			return fswalk.Continue
		}
		if !filter.AllWithin(p.Cfg.SizeConstraints, uint64(info.Size())) {
			return fswalk.Continue
		}
	}

	// 9. Time predicates.
	if len(p.Cfg.TimeConstraints) > 0 {
		info := e.Metadata()
		if info == nil {
			return fswalk.Continue
		}
		if !filter.AllApply(p.Cfg.TimeConstraints, info.ModTime()) {
			return fswalk.Continue
		}
	}

	// 10. Emit.
	if p.Stats != nil {
		p.Stats.Matched.Add(1)
	}
	if !p.Sink.Send(Result{Path: e.Path()}) {
		return fswalk.Quit
	}

	// 11. Prune.
	if p.Cfg.Prune {
		return fswalk.Skip
	}
	return fswalk.Continue
}

// SendError reports a traversal error through the same sink path.Results
// flow through; a send failure (receiver gone) should also stop the walk.
func (p *Pipeline) SendError(err error) bool {
	return p.Sink.Send(Result{Err: err})
}
