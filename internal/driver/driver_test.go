package driver

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stylekit/internal/ast"
	"stylekit/internal/config"
	"stylekit/internal/diag"
	"stylekit/internal/prefix"
	"stylekit/internal/trace"
	"stylekit/internal/writer"
)

func TestProcessModes(t *testing.T) {
	ctx := context.Background()
	res, err := Process(ctx, "a.css", []byte(".a{color:red}"), Options{Mode: writer.Compressed, AutoRefine: true})
	require.NoError(t, err)
	assert.Equal(t, ".a{color:red}", res.Output)

	res, err = Process(ctx, "a.css", []byte(".a{color:red}"), Options{Mode: writer.Verbose})
	require.NoError(t, err)
	assert.Equal(t, ".a {\n  color: red;\n}", res.Output)
	assert.NotNil(t, res.Sheet)
	assert.Positive(t, res.Broadcasts)
	assert.Len(t, res.Timings.Phases, 4)
}

func TestProcessPrefixes(t *testing.T) {
	m := prefix.NewSupportMatrix(nil).Browser(prefix.Chrome, 25)
	require.NoError(t, m.Err())
	res, err := Process(context.Background(), "a.css", []byte(".a{transition:opacity 1s}"),
		Options{Mode: writer.Compressed, AutoRefine: true, Matrix: m})
	require.NoError(t, err)
	assert.Equal(t, ".a{-webkit-transition:opacity 1s;transition:opacity 1s}", res.Output)
	assert.Equal(t, 1, res.Prefixed)
}

func TestProcessSyntaxErrorIsFatal(t *testing.T) {
	res, err := Process(context.Background(), "bad.css", []byte(".a{color:red}\n.b{color red}"), Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, diag.ErrSyntax)
	line, _, ok := diag.Position(err)
	assert.True(t, ok)
	assert.Equal(t, 2, line)
	assert.Empty(t, res.Output)
	require.NotNil(t, res.File)
	assert.Equal(t, "bad.css", filepath.Base(res.File.Path))
}

func TestProcessValidation(t *testing.T) {
	_, err := Process(context.Background(), "a.css", []byte(".a .b .c{color:red}"), Options{SelectorDepth: 3})
	assert.ErrorIs(t, err, diag.ErrValidation)

	res, err := Process(context.Background(), "a.css", []byte(".a{color:red;color:blue}"), Options{Duplicates: true})
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, diag.ValDuplicateDeclaration, res.Warnings[0].Code)
}

func TestProcessTraces(t *testing.T) {
	ring := trace.NewRingTracer(64, trace.LevelDetail)
	ctx := trace.WithTracer(context.Background(), ring)
	_, err := Process(ctx, "a.css", []byte(".a{color:red}"), Options{})
	require.NoError(t, err)
	var names []string
	for _, ev := range ring.Snapshot() {
		names = append(names, ev.Name)
	}
	assert.Contains(t, names, "process")
	assert.Contains(t, names, "parse")
	assert.Contains(t, names, "write")
}

func TestProcessCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Process(ctx, "a.css", []byte(".a{}"), Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Mode = "compressed"
	cfg.Support = []string{"chrome 25"}
	opts, err := OptionsFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, writer.Compressed, opts.Mode)
	require.NotNil(t, opts.Matrix)
	assert.True(t, opts.Matrix.SupportsVersion(prefix.Chrome, 25))

	cfg.Support = []string{"chrome 2"}
	_, err = OptionsFromConfig(cfg)
	assert.ErrorIs(t, err, diag.ErrConfig)
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
}

func TestExpand(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.css":       ".a{}",
		"sub/b.css":   ".b{}",
		"sub/c.txt":   "x",
		"sub/d/e.css": ".e{}",
	})
	got, err := Expand([]string{dir})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.css"),
		filepath.Join(dir, "sub", "b.css"),
		filepath.Join(dir, "sub", "d", "e.css"),
	}, got)

	got, err = Expand([]string{filepath.Join(dir, "sub", "*.css"), filepath.Join(dir, "sub", "b.css")})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "sub", "b.css")}, got)

	_, err = Expand([]string{filepath.Join(dir, "*.scss")})
	assert.Error(t, err)
}

func TestProcessPathsWithCache(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.css": ".a{color:red}",
		"b.css": ".b{margin:0}",
		"c.css": ".c{color red}",
	})
	files, err := Expand([]string{dir})
	require.NoError(t, err)
	cache, err := OpenDiskCache("stylekit", filepath.Join(dir, ".cache"))
	require.NoError(t, err)

	var mu sync.Mutex
	var events []Event
	sink := SinkFunc(func(ev Event) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, ev)
	})
	opts := PathOptions{Options: Options{Mode: writer.Compressed}, Jobs: 2, Cache: cache, Sink: sink}

	results, err := ProcessPaths(context.Background(), files, opts)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, ".a{color:red}", results[0].Output)
	assert.Equal(t, ".b{margin:0}", results[1].Output)
	assert.ErrorIs(t, results[2].Err, diag.ErrSyntax)
	assert.False(t, results[0].Cached)

	results, err = ProcessPaths(context.Background(), files, opts)
	require.NoError(t, err)
	assert.True(t, results[0].Cached)
	assert.Equal(t, ".a{color:red}", results[0].Output)
	assert.False(t, results[2].Cached)

	n, err := cache.Clear()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	results, err = ProcessPaths(context.Background(), files, opts)
	require.NoError(t, err)
	assert.False(t, results[0].Cached)

	var errs int
	for _, ev := range events {
		if ev.Status == StatusError {
			errs++
		}
	}
	assert.Equal(t, 3, errs)
}

func TestCacheKeyDependsOnOptions(t *testing.T) {
	in := []byte(".a{}")
	assert.Equal(t, CacheKey(in, Options{}), CacheKey(in, Options{}))
	assert.NotEqual(t, CacheKey(in, Options{}), CacheKey(in, Options{Mode: writer.Compressed}))
	assert.NotEqual(t, CacheKey(in, Options{}), CacheKey([]byte(".b{}"), Options{}))
}

func TestTokenize(t *testing.T) {
	stmts, _, err := Tokenize("a.css", []byte(".a, .b{color:red}\n@media print{.c{}}"))
	require.NoError(t, err)
	require.Len(t, stmts, 2)
	assert.Equal(t, ast.KindRule, stmts[0].Kind)
	assert.Equal(t, ".a, .b", stmts[0].Head)
	assert.Equal(t, "color: red", stmts[0].Body)
	assert.Equal(t, "@media print", stmts[1].Head)
	assert.Equal(t, 2, stmts[1].Line)
}
