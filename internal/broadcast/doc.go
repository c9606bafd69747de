// Package broadcast announces parsed nodes to listeners.
//
// Three disciplines share the ast.Broadcaster interface and compose by
// wrapping:
//
//	q := broadcast.NewQueryable(broadcast.NewQueue(emitter))
//
// Emitter dispatches immediately to the registry's preprocess handlers.
// Queue buffers while paused so a composite construct is complete before
// listeners see any of its parts. Queryable records every node so the
// caller can pull out what an inner parse produced.
package broadcast
