// Package driver runs the processing pipeline: parse, rework, validate and
// write, for one stylesheet or many in parallel.
package driver
