package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/gofd/gofd/internal/config"
	"github.com/gofd/gofd/internal/executor"
	"github.com/gofd/gofd/internal/filter"
	"github.com/gofd/gofd/internal/pattern"
	"github.com/gofd/gofd/internal/scanengine"
)

// exitStatus carries the process exit code computed by runSearch out of
// cobra's Execute/RunE protocol, which only distinguishes "err == nil" from
// "err != nil" (spec.md's ExitCode lattice has five outcomes, not two).
var exitStatus int

// searchOptions holds every CLI flag, bound directly by cobra and later
// translated into a config.Config for internal/scanengine.
type searchOptions struct {
	hidden         bool
	noIgnore       bool
	noIgnoreVCS    bool
	noGlobalIgnore bool
	ignoreFiles    []string
	follow         bool
	oneFileSystem  bool
	maxDepth       int
	minDepth       int
	threads        int
	maxBufferMS    int
	maxResults     int
	exclude        []string
	fullPath       bool
	extensions     []string
	types          []string
	owner          string
	sizeFilters    []string
	changedWithin  string
	changedBefore  string
	prune          bool
	quiet          bool
	showErrors     bool
	colorMode      string
	progress       bool
	execCmd        []string
	execBatch      []string
}

func newSearchCmd() *cobra.Command {
	opts := &searchOptions{threads: runtime.NumCPU(), colorMode: "auto"}

	cmd := &cobra.Command{
		Use:   "gofd [pattern] [paths...]",
		Short: "Find entries in a directory tree by name, type, size, or age",
		Long: `gofd walks one or more directory trees in parallel and prints every entry
whose name matches a regular expression, honoring .gitignore-style ignore
rules the way git and ripgrep do.

Use --exec/--exec-batch to run a command against matches instead of
printing them, with {}/{.}/{/}/{//}/{/.} path placeholders.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return runSearch(args, opts)
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&opts.hidden, "hidden", "H", false, "Include hidden files and directories")
	flags.BoolVarP(&opts.noIgnore, "no-ignore", "I", false, "Do not respect .gitignore/.fdignore files")
	flags.BoolVar(&opts.noIgnoreVCS, "no-ignore-vcs", false, "Do not respect VCS ignore files specifically")
	flags.BoolVar(&opts.noGlobalIgnore, "no-global-ignore-file", false, "Do not read the global ignore file")
	flags.StringSliceVar(&opts.ignoreFiles, "ignore-file", nil, "Additional ignore file to read (repeatable)")
	flags.BoolVarP(&opts.follow, "follow", "L", false, "Follow symbolic links")
	flags.BoolVar(&opts.oneFileSystem, "one-file-system", false, "Do not descend into other filesystems")
	flags.IntVarP(&opts.maxDepth, "max-depth", "d", -1, "Maximum search depth (-1 = unlimited)")
	flags.IntVar(&opts.minDepth, "min-depth", -1, "Minimum search depth (-1 = unset)")
	flags.IntVarP(&opts.threads, "threads", "j", opts.threads, "Number of parallel directory-reading threads")
	flags.IntVar(&opts.maxBufferMS, "max-buffer-time", 100, "Milliseconds to buffer output before streaming")
	flags.IntVar(&opts.maxResults, "max-results", -1, "Stop after this many matches (-1 = unlimited)")
	flags.StringSliceVarP(&opts.exclude, "exclude", "E", nil, "Glob pattern to exclude from traversal (repeatable)")
	flags.BoolVarP(&opts.fullPath, "full-path", "p", false, "Match the pattern against the full path, not just the name")
	flags.StringSliceVarP(&opts.extensions, "extension", "e", nil, "Limit results to entries with this extension (repeatable)")
	flags.StringSliceVarP(&opts.types, "type", "t", nil, "Limit results to a type: f,d,l,x,e,s,p,b,c (repeatable)")
	flags.StringVar(&opts.owner, "owner", "", "Limit results to entries owned by uid[:gid], \"-\" for either side means any")
	flags.StringSliceVarP(&opts.sizeFilters, "size", "S", nil, "Limit results by size, e.g. +10M, -1k, 100 (repeatable)")
	flags.StringVar(&opts.changedWithin, "changed-within", "", "Limit results to entries modified within this duration, e.g. 2h, 30m")
	flags.StringVar(&opts.changedBefore, "changed-before", "", "Limit results to entries modified before this duration ago")
	flags.BoolVar(&opts.prune, "prune", false, "Do not descend into directories that themselves match")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress output; exit 0 iff at least one match was found")
	flags.BoolVar(&opts.showErrors, "show-errors", false, "Print filesystem traversal errors (permission denied, etc.) to stderr")
	flags.StringVar(&opts.colorMode, "color", opts.colorMode, "When to colorize output: auto, always, never")
	flags.BoolVar(&opts.progress, "progress", false, "Show a scan-progress spinner on stderr")
	flags.StringSliceVar(&opts.execCmd, "exec", nil, "Execute a command once per matching entry")
	flags.StringSliceVar(&opts.execBatch, "exec-batch", nil, "Execute a command once for all matching entries")

	return cmd
}

func runSearch(args []string, opts *searchOptions) error {
	exprStr, roots := splitPatternAndPaths(args)

	matcher, err := pattern.Compile(exprStr)
	if err != nil {
		exitStatus = 1
		return fmt.Errorf("invalid pattern %q: %w", exprStr, err)
	}

	cfg, err := buildConfig(opts)
	if err != nil {
		exitStatus = 1
		return err
	}

	code, err := scanengine.Scan(roots, matcher, cfg)
	if err != nil {
		exitStatus = 1
		return err
	}

	exitStatus = code.Int()
	return nil
}

// splitPatternAndPaths mirrors fd's own argv convention: if the first
// argument names an existing path, there is no pattern and every argument
// is a search root; otherwise the first argument is the pattern and the
// rest (or the current directory, if none) are the roots.
func splitPatternAndPaths(args []string) (string, []string) {
	if len(args) == 0 {
		return ".*", []string{"."}
	}
	if info, err := os.Stat(args[0]); err == nil && info != nil {
		return ".*", args
	}
	if len(args) == 1 {
		return args[0], []string{"."}
	}
	return args[0], args[1:]
}

func buildConfig(opts *searchOptions) (*config.Config, error) {
	cfg := &config.Config{
		IgnoreHidden:         !opts.hidden,
		ReadFdignore:         !opts.noIgnore,
		ReadParentIgnore:     !opts.noIgnore,
		ReadVCSIgnore:        !opts.noIgnore && !opts.noIgnoreVCS,
		ReadGlobalIgnore:     !opts.noIgnore && !opts.noGlobalIgnore,
		FollowLinks:          opts.follow,
		OneFileSystem:        opts.oneFileSystem,
		Threads:              uint(maxInt(opts.threads, 1)),
		MaxBufferTime:        time.Duration(opts.maxBufferMS) * time.Millisecond,
		ExcludePatterns:      opts.exclude,
		IgnoreFiles:          opts.ignoreFiles,
		SearchFullPath:       opts.fullPath,
		Extensions:           stripLeadingDots(opts.extensions),
		Prune:                opts.prune,
		Quiet:                opts.quiet,
		ShowFilesystemErrors: opts.showErrors,
		ShowProgress:         opts.progress,
	}

	if opts.maxDepth >= 0 {
		d := uint(opts.maxDepth)
		cfg.MaxDepth = &d
	}
	if opts.minDepth >= 0 {
		d := uint(opts.minDepth)
		cfg.MinDepth = &d
	}
	if opts.maxResults >= 0 {
		m := uint(opts.maxResults)
		cfg.MaxResults = &m
	}

	if len(opts.types) > 0 {
		kinds, err := parseTypes(opts.types)
		if err != nil {
			return nil, err
		}
		cfg.TypePredicate = filter.NewTypePredicate(kinds...)
	}

	if opts.owner != "" {
		uidField, gidField := opts.owner, "-"
		if idx := strings.IndexByte(opts.owner, ':'); idx >= 0 {
			uidField, gidField = opts.owner[:idx], opts.owner[idx+1:]
		}
		oc, err := filter.ParseOwner(uidField, gidField)
		if err != nil {
			return nil, fmt.Errorf("invalid --owner: %w", err)
		}
		cfg.OwnerConstraint = &oc
	}

	if len(opts.sizeFilters) > 0 {
		constraints, err := parseSizeFilters(opts.sizeFilters)
		if err != nil {
			return nil, err
		}
		cfg.SizeConstraints = constraints
	}

	if opts.changedWithin != "" {
		ref, err := parseRelativeTime(opts.changedWithin)
		if err != nil {
			return nil, fmt.Errorf("invalid --changed-within: %w", err)
		}
		cfg.TimeConstraints = append(cfg.TimeConstraints, filter.TimeConstraint{Op: filter.TimeAfter, Reference: ref})
	}
	if opts.changedBefore != "" {
		ref, err := parseRelativeTime(opts.changedBefore)
		if err != nil {
			return nil, fmt.Errorf("invalid --changed-before: %w", err)
		}
		cfg.TimeConstraints = append(cfg.TimeConstraints, filter.TimeConstraint{Op: filter.TimeBefore, Reference: ref})
	}

	switch {
	case len(opts.execBatch) > 0:
		cfg.Command = &executor.CommandSpec{Mode: executor.ModeBatch, Argv: opts.execBatch}
	case len(opts.execCmd) > 0:
		cfg.Command = &executor.CommandSpec{Mode: executor.ModePerEntry, Argv: opts.execCmd}
	}

	colorEnabled := opts.colorMode == "always" || (opts.colorMode != "never" && cfg.Command == nil)
	cfg.LSColors = &config.LSColors{Enabled: colorEnabled}

	return cfg, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func stripLeadingDots(exts []string) []string {
	out := make([]string, len(exts))
	for i, e := range exts {
		out[i] = strings.TrimPrefix(e, ".")
	}
	return out
}

func parseTypes(tokens []string) ([]filter.Kind, error) {
	kinds := make([]filter.Kind, 0, len(tokens))
	for _, t := range tokens {
		switch t {
		case "f", "file":
			kinds = append(kinds, filter.KindFile)
		case "d", "directory":
			kinds = append(kinds, filter.KindDirectory)
		case "l", "symlink":
			kinds = append(kinds, filter.KindSymlink)
		case "x", "executable":
			kinds = append(kinds, filter.KindExecutable)
		case "e", "empty":
			kinds = append(kinds, filter.KindEmpty)
		case "s", "socket":
			kinds = append(kinds, filter.KindSocket)
		case "p", "pipe":
			kinds = append(kinds, filter.KindPipe)
		case "b", "block-device":
			kinds = append(kinds, filter.KindBlockDevice)
		case "c", "char-device":
			kinds = append(kinds, filter.KindCharDevice)
		default:
			return nil, fmt.Errorf("unknown --type %q", t)
		}
	}
	return kinds, nil
}

// parseSizeFilters parses fd's "+10M"/"-1k"/"100" size-filter syntax atop
// humanize.ParseBytes, the same parser dupedog's --min-size flag used.
func parseSizeFilters(tokens []string) ([]filter.SizeConstraint, error) {
	constraints := make([]filter.SizeConstraint, 0, len(tokens))
	for _, tok := range tokens {
		op := filter.SizeEqual
		numeric := tok
		switch {
		case strings.HasPrefix(tok, "+"):
			op = filter.SizeGreater
			numeric = tok[1:]
		case strings.HasPrefix(tok, "-"):
			op = filter.SizeLess
			numeric = tok[1:]
		}
		bytes, err := humanize.ParseBytes(numeric)
		if err != nil {
			return nil, fmt.Errorf("invalid --size %q: %w", tok, err)
		}
		constraints = append(constraints, filter.SizeConstraint{Op: op, Bytes: bytes})
	}
	return constraints, nil
}

// parseRelativeTime parses a Go duration string (e.g. "2h", "10m") and
// returns the timestamp that far in the past.
func parseRelativeTime(s string) (time.Time, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Now().Add(-d), nil
}

