package ast

// Status tracks how far a node progressed through the pipeline.
//
//	Unbroadcasted -> Broadcasted -> Refined | PassThrough
type Status uint8

const (
	StatusUnbroadcasted Status = iota
	StatusBroadcasted
	// StatusRefined: raw content was parsed into structure.
	StatusRefined
	// StatusPassThrough: no strategy refined the node; it is written verbatim.
	StatusPassThrough
)

func (s Status) String() string {
	switch s {
	case StatusUnbroadcasted:
		return "unbroadcasted"
	case StatusBroadcasted:
		return "broadcasted"
	case StatusRefined:
		return "refined"
	case StatusPassThrough:
		return "pass-through"
	}
	return "unknown"
}

func (s Status) rank() int {
	if s == StatusPassThrough {
		return int(StatusRefined)
	}
	return int(s)
}

// CanAdvance reports whether moving from s to next keeps status monotonic.
// Refined and PassThrough are both terminal.
func (s Status) CanAdvance(next Status) bool {
	return next.rank() > s.rank()
}
