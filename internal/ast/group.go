package ast

import (
	"iter"

	"stylekit/internal/diag"
)

// Linked is the constraint for items of a Collection: a node that exposes
// its embedded Groupable links.
type Linked[T any] interface {
	Syntax
	Links() *Groupable[T]
}

// Group is the read side of a Collection as seen from one of its items.
type Group[T any] interface {
	Len() int
	IsEmpty() bool
	First() (T, bool)
	Last() (T, bool)
	All() iter.Seq[T]
	Slice() []T
	Owner() Syntax

	insertAfter(anchor *Groupable[T], item T) error
	insertBefore(anchor *Groupable[T], item T) error
	unlink(g *Groupable[T])
}

// Groupable holds the sibling links of one item. Embed it in a node type to
// make the node storable in a Collection.
//
// The zero value is a detached item.
type Groupable[T any] struct {
	self  T
	prev  *Groupable[T]
	next  *Groupable[T]
	owner Group[T]
}

// Links returns g itself; it satisfies Linked when Groupable is embedded.
func (g *Groupable[T]) Links() *Groupable[T] { return g }

func (g *Groupable[T]) IsDetached() bool { return g.owner == nil }

// IsFirst is false for detached items.
func (g *Groupable[T]) IsFirst() bool { return g.owner != nil && g.prev == nil }

// IsLast is false for detached items.
func (g *Groupable[T]) IsLast() bool { return g.owner != nil && g.next == nil }

// Group returns the owning collection.
func (g *Groupable[T]) Group() (Group[T], error) {
	if g.owner == nil {
		return nil, diag.NewStateError(diag.StaDetached, "group")
	}
	return g.owner, nil
}

// Append inserts sibling right after this item.
func (g *Groupable[T]) Append(sibling T) error {
	if g.owner == nil {
		return diag.NewStateError(diag.StaDetached, "append")
	}
	return g.owner.insertAfter(g, sibling)
}

// Prepend inserts sibling right before this item.
func (g *Groupable[T]) Prepend(sibling T) error {
	if g.owner == nil {
		return diag.NewStateError(diag.StaDetached, "prepend")
	}
	return g.owner.insertBefore(g, sibling)
}

// Detach removes the item from its collection. Detaching a detached item
// does nothing.
func (g *Groupable[T]) Detach() {
	if g.owner == nil {
		return
	}
	g.owner.unlink(g)
}

// Next returns the following sibling.
func (g *Groupable[T]) Next() (T, bool) {
	if g.owner == nil || g.next == nil {
		var zero T
		return zero, false
	}
	return g.next.self, true
}

// Previous returns the preceding sibling.
func (g *Groupable[T]) Previous() (T, bool) {
	if g.owner == nil || g.prev == nil {
		var zero T
		return zero, false
	}
	return g.prev.self, true
}

// Collection is an ordered, intrusive list of nodes owned by one parent.
// An item belongs to at most one collection; adding it elsewhere moves it.
type Collection[T Linked[T]] struct {
	head  *Groupable[T]
	tail  *Groupable[T]
	n     int
	owner Syntax
	bc    Broadcaster
}

// NewCollection creates an empty collection owned by owner (may be nil for
// free-standing lists).
func NewCollection[T Linked[T]](owner Syntax) *Collection[T] {
	return &Collection[T]{owner: owner}
}

func (c *Collection[T]) Owner() Syntax { return c.owner }
func (c *Collection[T]) Len() int      { return c.n }
func (c *Collection[T]) IsEmpty() bool { return c.n == 0 }

// SetBroadcaster links the collection to b. Items appended from now on that
// were never broadcast are announced through it.
func (c *Collection[T]) SetBroadcaster(b Broadcaster) { c.bc = b }

// Broadcaster returns the linked broadcaster, or nil.
func (c *Collection[T]) Broadcaster() Broadcaster { return c.bc }

func (c *Collection[T]) First() (T, bool) {
	if c.head == nil {
		var zero T
		return zero, false
	}
	return c.head.self, true
}

func (c *Collection[T]) Last() (T, bool) {
	if c.tail == nil {
		var zero T
		return zero, false
	}
	return c.tail.self, true
}

// Contains reports whether item is currently in c.
func (c *Collection[T]) Contains(item T) bool {
	return c.owns(item.Links())
}

func (c *Collection[T]) owns(g *Groupable[T]) bool {
	if g.owner == nil {
		return false
	}
	o, ok := g.owner.(*Collection[T])
	return ok && o == c
}

// Append adds item at the end.
func (c *Collection[T]) Append(item T) {
	g := c.adopt(item)
	g.prev = c.tail
	if c.tail != nil {
		c.tail.next = g
	} else {
		c.head = g
	}
	c.tail = g
	c.n++
	c.announce(item)
}

// Prepend adds item at the front.
func (c *Collection[T]) Prepend(item T) {
	g := c.adopt(item)
	g.next = c.head
	if c.head != nil {
		c.head.prev = g
	} else {
		c.tail = g
	}
	c.head = g
	c.n++
	c.announce(item)
}

// AppendAll appends items in order.
func (c *Collection[T]) AppendAll(items ...T) {
	for _, it := range items {
		c.Append(it)
	}
}

// PrependAll puts items at the front, keeping their relative order.
func (c *Collection[T]) PrependAll(items ...T) {
	for i := len(items) - 1; i >= 0; i-- {
		c.Prepend(items[i])
	}
}

// ReplaceExistingWith detaches every current item and appends items.
func (c *Collection[T]) ReplaceExistingWith(items ...T) {
	c.Clear()
	c.AppendAll(items...)
}

// Clear detaches every item.
func (c *Collection[T]) Clear() {
	for g := c.head; g != nil; {
		next := g.next
		g.prev, g.next, g.owner = nil, nil, nil
		g = next
	}
	c.head, c.tail, c.n = nil, nil, 0
}

// Slice returns the items in order. The slice is a copy.
func (c *Collection[T]) Slice() []T {
	out := make([]T, 0, c.n)
	for g := c.head; g != nil; g = g.next {
		out = append(out, g.self)
	}
	return out
}

// All iterates over a snapshot taken when iteration starts. Items removed
// from the collection during the walk are skipped; items added are not
// visited.
func (c *Collection[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, it := range c.Slice() {
			if !c.owns(it.Links()) {
				continue
			}
			if !yield(it) {
				return
			}
		}
	}
}

func (c *Collection[T]) insertAfter(anchor *Groupable[T], item T) error {
	g := item.Links()
	if g == anchor {
		return diag.NewStateError(diag.StaSelfReference, "append")
	}
	g = c.adopt(item)
	g.prev = anchor
	g.next = anchor.next
	if anchor.next != nil {
		anchor.next.prev = g
	} else {
		c.tail = g
	}
	anchor.next = g
	c.n++
	c.announce(item)
	return nil
}

func (c *Collection[T]) insertBefore(anchor *Groupable[T], item T) error {
	g := item.Links()
	if g == anchor {
		return diag.NewStateError(diag.StaSelfReference, "prepend")
	}
	g = c.adopt(item)
	g.next = anchor
	g.prev = anchor.prev
	if anchor.prev != nil {
		anchor.prev.next = g
	} else {
		c.head = g
	}
	anchor.prev = g
	c.n++
	c.announce(item)
	return nil
}

func (c *Collection[T]) unlink(g *Groupable[T]) {
	if g.prev != nil {
		g.prev.next = g.next
	} else {
		c.head = g.next
	}
	if g.next != nil {
		g.next.prev = g.prev
	} else {
		c.tail = g.prev
	}
	g.prev, g.next, g.owner = nil, nil, nil
	c.n--
}

// adopt detaches item from wherever it is and marks it as owned by c.
func (c *Collection[T]) adopt(item T) *Groupable[T] {
	g := item.Links()
	g.Detach()
	g.self = item
	g.owner = c
	return g
}

func (c *Collection[T]) announce(item T) {
	if c.bc != nil && item.Status() == StatusUnbroadcasted {
		c.bc.Broadcast(item)
	}
}
