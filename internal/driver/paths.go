package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"stylekit/internal/trace"
)

// Expand resolves files, directories and glob patterns into a sorted list
// of files. Directories contribute every *.css file below them.
func Expand(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	for _, pat := range patterns {
		if strings.ContainsAny(pat, "*?[{") {
			if !doublestar.ValidatePattern(filepath.ToSlash(pat)) {
				return nil, fmt.Errorf("invalid pattern %q", pat)
			}
			matches, err := doublestar.FilepathGlob(pat, doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("%s: %w", pat, err)
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("%s: no files match", pat)
			}
			for _, m := range matches {
				add(m)
			}
			continue
		}
		info, err := os.Stat(pat)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(pat)
			continue
		}
		matches, err := doublestar.FilepathGlob(filepath.Join(pat, "**", "*.css"), doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", pat, err)
		}
		for _, m := range matches {
			add(m)
		}
	}
	slices.Sort(out)
	return out, nil
}

// PathOptions configure ProcessPaths.
type PathOptions struct {
	Options
	// Jobs limits parallelism; 0 uses GOMAXPROCS.
	Jobs  int
	Cache *DiskCache
	Sink  ProgressSink
}

// ProcessPaths processes every file in parallel. Per-file failures are
// reported in Result.Err and do not stop other files; the returned error is
// only set when ctx is cancelled.
func ProcessPaths(ctx context.Context, files []string, opts PathOptions) ([]Result, error) {
	ctx, span := trace.BeginCtx(ctx, trace.ScopeDriver, "process-paths")
	defer span.End("")

	for _, f := range files {
		emit(opts.Sink, Event{File: f, Status: StatusQueued})
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(files))))
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = processFile(gctx, path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	emit(opts.Sink, Event{Stage: StageWrite, Status: StatusDone})
	return results, nil
}

func processFile(ctx context.Context, path string, opts PathOptions) Result {
	start := time.Now()
	emit(opts.Sink, Event{File: path, Stage: StageLoad, Status: StatusWorking})
	// #nosec G304 -- path is provided by the caller
	input, err := os.ReadFile(path)
	if err != nil {
		emit(opts.Sink, Event{File: path, Stage: StageLoad, Status: StatusError, Err: err})
		return Result{Name: path, Err: err}
	}

	var key Key
	if opts.Cache != nil {
		key = CacheKey(input, opts.Options)
		if res := (Result{Name: path}); opts.Cache.load(key, &res) {
			emit(opts.Sink, Event{File: path, Stage: StageWrite, Status: StatusDone, Cached: true, Elapsed: time.Since(start)})
			return res
		}
	}

	res, err := process(ctx, path, input, opts.Options, opts.Sink)
	if err != nil {
		return res
	}
	if opts.Cache != nil {
		if err := opts.Cache.store(key, res); err != nil {
			trace.Point(trace.FromContext(ctx), trace.ScopeFile, "cache-put-failed", err.Error(), 0)
		}
	}
	emit(opts.Sink, Event{File: path, Stage: StageWrite, Status: StatusDone, Elapsed: time.Since(start)})
	return res
}
