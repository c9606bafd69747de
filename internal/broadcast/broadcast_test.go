package broadcast

import (
	"errors"
	"testing"

	"stylekit/internal/ast"
	"stylekit/internal/trace"
)

func kw(s string) *ast.KeywordValue { return ast.NewKeywordValue(1, 1, s) }

type collector struct{ got []string }

func (c *collector) Broadcast(n ast.Syntax) {
	if k, ok := n.(*ast.KeywordValue); ok {
		c.got = append(c.got, k.Keyword)
	}
}

func TestQueueBuffersWhilePaused(t *testing.T) {
	c := &collector{}
	q := NewQueue(c)
	q.Broadcast(kw("a"))
	q.Pause()
	q.Broadcast(kw("b"))
	q.Broadcast(kw("c"))
	if len(c.got) != 1 || q.Pending() != 2 {
		t.Fatalf("paused broadcasts leaked: %v", c.got)
	}
	q.Resume()
	if q.IsPaused() {
		t.Fatalf("queue should be open after resume")
	}
	want := []string{"a", "b", "c"}
	if len(c.got) != len(want) {
		t.Fatalf("got %v", c.got)
	}
	for i := range want {
		if c.got[i] != want[i] {
			t.Fatalf("order: got %v want %v", c.got, want)
		}
	}
	q.Broadcast(kw("d"))
	if c.got[len(c.got)-1] != "d" {
		t.Fatalf("open queue should forward immediately")
	}
}

func TestQueryableWrapsQueue(t *testing.T) {
	c := &collector{}
	q := NewPausedQueue(c)
	qq := NewQueryable(q)
	qq.Broadcast(kw("x"))
	qq.Broadcast(ast.NewNumericalValue(1, 1, "1", "px"))
	qq.Broadcast(kw("y"))

	if len(c.got) != 0 {
		t.Fatalf("downstream saw %v before resume", c.got)
	}
	if n, ok := qq.Find(ast.KindKeywordValue); !ok || n.(*ast.KeywordValue).Keyword != "x" {
		t.Fatalf("Find: %v %v", n, ok)
	}
	if got := qq.Filter(ast.KindKeywordValue); len(got) != 2 {
		t.Fatalf("Filter: %d", len(got))
	}
	if nums := FilterAs[*ast.NumericalValue](qq); len(nums) != 1 || nums[0].Unit != "px" {
		t.Fatalf("FilterAs: %v", nums)
	}
	if _, ok := FindAs[*ast.StringValue](qq); ok {
		t.Fatalf("FindAs found a string value")
	}
	q.Resume()
	if len(c.got) != 2 {
		t.Fatalf("after resume: %v", c.got)
	}
}

func TestEmitterDispatchOrder(t *testing.T) {
	reg := NewRegistry()
	var order []string
	reg.On(PhasePreprocess, ast.KindKeywordValue, func(ast.Syntax) error {
		order = append(order, "first")
		return nil
	})
	reg.OnAny(PhasePreprocess, func(ast.Syntax) error {
		order = append(order, "any")
		return nil
	})
	Handle(reg, PhasePreprocess, ast.KindKeywordValue, func(k *ast.KeywordValue) error {
		order = append(order, "typed:"+k.Keyword)
		return nil
	})
	reg.On(PhaseRework, ast.KindKeywordValue, func(ast.Syntax) error {
		order = append(order, "rework")
		return nil
	})

	e := NewEmitter(reg, trace.Nop)
	n := kw("red")
	e.Broadcast(n)
	if n.Status() != ast.StatusBroadcasted {
		t.Fatalf("status = %v", n.Status())
	}
	want := []string{"first", "any", "typed:red"}
	if len(order) != len(want) {
		t.Fatalf("order = %v", order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestEmitterKeepsFirstError(t *testing.T) {
	reg := NewRegistry()
	boom := errors.New("boom")
	calls := 0
	reg.For("plugin").OnAny(PhasePreprocess, func(ast.Syntax) error {
		calls++
		return boom
	})
	e := NewEmitter(reg, nil)
	e.Broadcast(kw("a"))
	e.Broadcast(kw("b"))
	if !errors.Is(e.Err(), boom) {
		t.Fatalf("Err = %v", e.Err())
	}
	if calls != 1 {
		t.Fatalf("handlers ran after failure: %d", calls)
	}
}

func TestRunPhaseWalksTree(t *testing.T) {
	sheet := ast.NewStylesheet()
	r := ast.NewRule(1, 1)
	sheet.Statements().Append(r)
	r.Declarations().Append(ast.NewDeclarationWith(1, 4, ast.ParsePropertyName("color"),
		ast.NewPropertyValue(1, 11, kw("red"))))

	reg := NewRegistry()
	var kinds []ast.Kind
	reg.OnAny(PhaseValidate, func(n ast.Syntax) error {
		kinds = append(kinds, n.Kind())
		return nil
	})
	if err := reg.RunPhase(PhaseValidate, sheet); err != nil {
		t.Fatal(err)
	}
	if len(kinds) != 5 || kinds[1] != ast.KindRule || kinds[4] != ast.KindKeywordValue {
		t.Fatalf("kinds = %v", kinds)
	}
	if err := reg.RunPhase(PhaseRework, sheet); err != nil {
		t.Fatalf("empty phase: %v", err)
	}
}
