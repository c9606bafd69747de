package trace

import "time"

// Kind is the type of a trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
	KindHeartbeat
)

var kindNames = nameTable[Kind]{what: "kind", names: map[Kind]string{
	KindSpanBegin: "begin",
	KindSpanEnd:   "end",
	KindPoint:     "point",
	KindHeartbeat: "heartbeat",
}}

func (k Kind) String() string { return kindNames.name(k) }

// Scope is the granularity of an event; lower is coarser.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // whole run
	ScopePass                    // parse, rework, validate, write
	ScopeFile                    // one stylesheet
	ScopeNode                    // single node broadcast or refinement
)

var scopeNames = nameTable[Scope]{what: "scope", names: map[Scope]string{
	ScopeDriver: "driver",
	ScopePass:   "pass",
	ScopeFile:   "file",
	ScopeNode:   "node",
}}

func (s Scope) String() string { return scopeNames.name(s) }

// Event is a single trace record.
type Event struct {
	Time     time.Time
	Seq      uint64 // assigned by the tracer
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for roots
	GID      uint64 // goroutine id
	Name     string // "parse", "process", "broadcast:rule"
	Detail   string
	Extra    map[string]string
}
