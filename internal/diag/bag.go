package diag

import (
	"cmp"
	"slices"
	"sync"
)

// Bag collects diagnostics up to a limit. It is safe for concurrent use so
// listeners running in different files' pipelines can share one.
type Bag struct {
	mu    sync.Mutex
	items []Diagnostic
	max   int
}

// NewBag creates a bag holding at most max items; max <= 0 means 256.
func NewBag(max int) *Bag {
	if max <= 0 {
		max = 256
	}
	return &Bag{max: max}
}

// Add добавляет диагностику, учитывая лимит.
// Возвращает false, если диагностика не добавлена (достигнут лимит).
func (b *Bag) Add(d Diagnostic) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() int { return b.max }

func (b *Bag) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

// Items возвращает копию диагностик.
func (b *Bag) Items() []Diagnostic {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.items)
}

// Count returns how many items are at least sev.
func (b *Bag) Count(sev Severity) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, d := range b.items {
		if d.Severity >= sev {
			n++
		}
	}
	return n
}

// Worst returns the highest severity held, false for an empty bag.
func (b *Bag) Worst() (Severity, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.items) == 0 {
		return SevInfo, false
	}
	return slices.MaxFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Compare(x.Severity, y.Severity)
	}).Severity, true
}

func (b *Bag) HasErrors() bool   { return b.Count(SevError) > 0 }
func (b *Bag) HasWarnings() bool { return b.Count(SevWarning) > 0 }

// compareDiagnostics orders by position, then the more severe first, then
// by code.
func compareDiagnostics(x, y Diagnostic) int {
	return cmp.Or(
		cmp.Compare(x.Line, y.Line),
		cmp.Compare(x.Column, y.Column),
		cmp.Compare(y.Severity, x.Severity),
		cmp.Compare(x.Code, y.Code),
	)
}

// Sort gives deterministic output order.
func (b *Bag) Sort() {
	b.mu.Lock()
	defer b.mu.Unlock()
	slices.SortStableFunc(b.items, compareDiagnostics)
}

// Dedup drops repeats of the same code at the same position, keeping the
// first.
func (b *Bag) Dedup() {
	type key struct {
		code         Code
		line, column int
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	seen := make(map[key]struct{}, len(b.items))
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool {
		k := key{d.Code, d.Line, d.Column}
		if _, dup := seen[k]; dup {
			return true
		}
		seen[k] = struct{}{}
		return false
	})
}
