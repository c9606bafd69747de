package parser

import (
	"stylekit/internal/ast"
	"stylekit/internal/diag"
	"stylekit/internal/trace"
)

// Strategy signatures. A strategy returns true when it refined the node;
// false hands the node to the next strategy.
type (
	SelectorStrategy    = func(s *ast.Selector, r *Refiner) (bool, error)
	DeclarationStrategy = func(d *ast.Declaration, r *Refiner) (bool, error)
	FunctionStrategy    = func(f *ast.FunctionValue, r *Refiner) (bool, error)
	AtRuleStrategy      = func(a *ast.AtRule, r *Refiner) (bool, error)
)

type named[S any] struct {
	name string
	fn   S
}

// Refiner is the strategy registry. User strategies run in registration
// order before the built-in one for the same kind; the first to return
// true wins.
//
// A Refiner belongs to one stylesheet run and is not safe for concurrent
// use.
type Refiner struct {
	b       ast.Broadcaster
	factory *Factory
	opts    Options
	tracer  trace.Tracer

	selectors    []named[SelectorStrategy]
	declarations []named[DeclarationStrategy]
	functions    []named[FunctionStrategy]
	atRules      []named[AtRuleStrategy]
	names        map[string]struct{}

	depth int
}

// NewRefiner creates a refiner that announces refined structure through b.
func NewRefiner(b ast.Broadcaster, opts Options) *Refiner {
	opts = opts.withDefaults()
	if b == nil {
		b = discard{}
	}
	return &Refiner{
		b:       b,
		factory: NewFactory(opts.Tokens),
		opts:    opts,
		tracer:  trace.Nop,
		names:   make(map[string]struct{}),
	}
}

type discard struct{}

func (discard) Broadcast(ast.Syntax) {}

// SetBroadcaster replaces the broadcaster used for refined structure.
func (r *Refiner) SetBroadcaster(b ast.Broadcaster) { r.b = b }

func (r *Refiner) Broadcaster() ast.Broadcaster { return r.b }

// SetTracer enables node-level refinement events.
func (r *Refiner) SetTracer(t trace.Tracer) {
	if t == nil {
		t = trace.Nop
	}
	r.tracer = t
}

// Factory returns the parsers used by the built-in strategies.
func (r *Refiner) Factory() *Factory { return r.factory }

// MaxDepth is the configured nesting bound.
func (r *Refiner) MaxDepth() int { return r.opts.MaxDepth }

func (r *Refiner) claim(name string) error {
	if name == "" {
		return nil
	}
	if _, dup := r.names[name]; dup {
		return diag.NewConfigError(diag.CfgDuplicateStrategy, name, "strategy registered twice")
	}
	r.names[name] = struct{}{}
	return nil
}

// RegisterSelector adds a selector strategy. Names must be unique across
// all kinds; an empty name skips the check.
func (r *Refiner) RegisterSelector(name string, s SelectorStrategy) error {
	if err := r.claim(name); err != nil {
		return err
	}
	r.selectors = append(r.selectors, named[SelectorStrategy]{name, s})
	return nil
}

func (r *Refiner) RegisterDeclaration(name string, s DeclarationStrategy) error {
	if err := r.claim(name); err != nil {
		return err
	}
	r.declarations = append(r.declarations, named[DeclarationStrategy]{name, s})
	return nil
}

func (r *Refiner) RegisterFunction(name string, s FunctionStrategy) error {
	if err := r.claim(name); err != nil {
		return err
	}
	r.functions = append(r.functions, named[FunctionStrategy]{name, s})
	return nil
}

func (r *Refiner) RegisterAtRule(name string, s AtRuleStrategy) error {
	if err := r.claim(name); err != nil {
		return err
	}
	r.atRules = append(r.atRules, named[AtRuleStrategy]{name, s})
	return nil
}

// enter guards recursion through nested refinement.
func (r *Refiner) enter(n ast.Syntax) error {
	r.depth++
	if r.depth > r.opts.MaxDepth {
		r.depth--
		return diag.NewSyntaxError(diag.SynMaxDepth, n.Line(), n.Column(), "nesting deeper than %d", r.opts.MaxDepth)
	}
	if r.tracer.Enabled() {
		trace.Point(r.tracer, trace.ScopeNode, "refine:"+n.Kind().String(), "", 0)
	}
	return nil
}

func (r *Refiner) leave() { r.depth-- }

func dispatch[N ast.Syntax](r *Refiner, n N, user []named[func(N, *Refiner) (bool, error)], fallback func(N, *Refiner) (bool, error)) (bool, error) {
	if err := r.enter(n); err != nil {
		return false, err
	}
	defer r.leave()
	for _, s := range user {
		ok, err := s.fn(n, r)
		if err != nil || ok {
			return ok, err
		}
	}
	if fallback == nil {
		return false, nil
	}
	return fallback(n, r)
}

func (r *Refiner) RefineSelector(s *ast.Selector) (bool, error) {
	return dispatch(r, s, r.selectors, StandardSelector)
}

func (r *Refiner) RefineDeclaration(d *ast.Declaration) (bool, error) {
	return dispatch(r, d, r.declarations, StandardDeclaration)
}

func (r *Refiner) RefineFunction(f *ast.FunctionValue) (bool, error) {
	return dispatch(r, f, r.functions, StandardFunction)
}

// RefineAtRule has no built-in fallback; unclaimed at-rules stay
// pass-through.
func (r *Refiner) RefineAtRule(a *ast.AtRule) (bool, error) {
	return dispatch(r, a, r.atRules, nil)
}

var _ ast.Refiner = (*Refiner)(nil)
