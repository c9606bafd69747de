package driver

import (
	"context"
	"strconv"

	"stylekit/internal/ast"
	"stylekit/internal/broadcast"
	"stylekit/internal/diag"
	"stylekit/internal/lexer"
	"stylekit/internal/observ"
	"stylekit/internal/parser"
	"stylekit/internal/plugin"
	"stylekit/internal/source"
	"stylekit/internal/trace"
	"stylekit/internal/writer"
)

// Result is the outcome of processing one stylesheet.
type Result struct {
	Name   string
	Output string
	// Sheet is nil when the output came from the cache.
	Sheet    *ast.Stylesheet
	File     *source.File
	Warnings []diag.Diagnostic
	Cached   bool
	// Broadcasts counts nodes announced while parsing.
	Broadcasts int
	// Prefixed counts declarations added by the prefixer.
	Prefixed int
	Timings  observ.Report
	Err      error
}

// Process runs the whole pipeline over input. Any syntax, state,
// configuration or validation error aborts the run; Result.File is set
// regardless so the error can be rendered against the source.
func Process(ctx context.Context, name string, input []byte, opts Options) (Result, error) {
	return process(ctx, name, input, opts, nil)
}

func process(ctx context.Context, name string, input []byte, opts Options, sink ProgressSink) (Result, error) {
	ctx, span := trace.BeginCtx(ctx, trace.ScopeFile, "process")
	span.WithExtra("file", name)
	tracer := trace.FromContext(ctx)

	fs := source.NewFileSet()
	file := fs.Get(fs.AddNormalized(name, input, source.FileVirtual, source.LoadOptions{NFC: opts.NFC}))
	res := Result{Name: name, File: file}
	timer := observ.NewTimer()

	fail := func(stage Stage, err error) (Result, error) {
		res.Err = err
		res.Timings = timer.Report(name)
		emit(sink, Event{File: name, Stage: stage, Status: StatusError, Err: err})
		span.End("error: " + err.Error())
		return res, err
	}
	if err := ctx.Err(); err != nil {
		return fail(StageParse, err)
	}

	bag := diag.NewBag(256)
	reg := broadcast.NewRegistry()
	em := broadcast.NewEmitter(reg, tracer)
	refiner := parser.NewRefiner(em, parser.Options{MaxDepth: opts.MaxDepth})
	refiner.SetTracer(tracer)

	plugins := []plugin.Plugin{&plugin.SyntaxTree{}, plugin.NestedAtRules{}, plugin.FontFaces{}, plugin.UnquotedIEFilter{}}
	if opts.AutoRefine {
		plugins = append(plugins, plugin.AllRefinement())
	}
	var prefixer *plugin.Prefixer
	if opts.Matrix != nil {
		prefixer = plugin.NewPrefixer(opts.Matrix)
		prefixer.Rearrange, prefixer.Prune = opts.Rearrange, opts.Prune
		plugins = append(plugins, prefixer)
	}
	if opts.Duplicates {
		plugins = append(plugins, &plugin.DuplicateDeclarations{Reporter: diag.BagReporter{Bag: bag}, Tracer: tracer})
	}
	if opts.SelectorDepth > 0 {
		plugins = append(plugins, &plugin.SelectorDepth{Max: opts.SelectorDepth})
	}
	plugins = append(plugins, opts.Plugins...)
	if _, err := plugin.Install(reg, refiner, plugins...); err != nil {
		return fail(StageParse, err)
	}

	var sheet *ast.Stylesheet
	stages := []struct {
		stage Stage
		run   func() error
	}{
		{StageParse, func() error {
			var err error
			sheet, err = parser.ParseStylesheet(lexer.New(string(file.Content)), em, refiner)
			if err != nil {
				return err
			}
			return em.Err()
		}},
		{StageRework, func() error { return reg.RunPhase(broadcast.PhaseRework, sheet) }},
		{StageValidate, func() error { return reg.RunPhase(broadcast.PhaseValidate, sheet) }},
		{StageWrite, func() error {
			var err error
			res.Output, err = writer.Format(sheet, opts.Mode)
			return err
		}},
	}
	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			return fail(st.stage, err)
		}
		emit(sink, Event{File: name, Stage: st.stage, Status: StatusWorking})
		ps := trace.Begin(tracer, trace.ScopePass, string(st.stage), span.ID())
		err := timer.Measure(string(st.stage), st.run)
		ps.End("")
		if err != nil {
			return fail(st.stage, err)
		}
	}

	res.Sheet = sheet
	res.Warnings = bag.Items()
	res.Broadcasts = em.Count()
	if prefixer != nil {
		res.Prefixed = prefixer.Added()
	}
	res.Timings = timer.Report(name)
	span.WithExtra("nodes", strconv.Itoa(res.Broadcasts))
	span.End("")
	return res, nil
}
