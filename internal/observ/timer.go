// Package observ records how long each pipeline stage of a run takes.
package observ

import (
	"fmt"
	"strings"
	"time"
)

// PhaseReport is one measured stage.
type PhaseReport struct {
	Name       string  `json:"name" msgpack:"name"`
	DurationMS float64 `json:"duration_ms" msgpack:"duration_ms"`
	Note       string  `json:"note,omitempty" msgpack:"note,omitempty"`
}

// Report holds the stages of one stylesheet run in order.
type Report struct {
	Name    string        `json:"name,omitempty" msgpack:"name,omitempty"`
	TotalMS float64       `json:"total_ms" msgpack:"total_ms"`
	Phases  []PhaseReport `json:"phases" msgpack:"phases"`
}

// Timer collects stage durations. One Timer per run; not goroutine-safe.
type Timer struct {
	phases []PhaseReport
	total  time.Duration
	now    func() time.Time
}

func NewTimer() *Timer { return &Timer{now: time.Now} }

// Measure runs fn as the stage name. A failing stage is noted as such and
// its error is returned unchanged.
func (t *Timer) Measure(name string, fn func() error) error {
	start := t.now()
	err := fn()
	d := t.now().Sub(start)
	t.total += d
	p := PhaseReport{Name: name, DurationMS: millis(d)}
	if err != nil {
		p.Note = "failed"
	}
	t.phases = append(t.phases, p)
	return err
}

// Report snapshots the stages measured so far under name.
func (t *Timer) Report(name string) Report {
	return Report{
		Name:    name,
		TotalMS: millis(t.total),
		Phases:  append([]PhaseReport(nil), t.phases...),
	}
}

func millis(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }

// Summary renders reports as an indented table with a grand total.
func Summary(reports ...Report) string {
	var b strings.Builder
	b.WriteString("timings:\n")
	var total float64
	for _, r := range reports {
		if r.Name != "" {
			b.WriteString("  " + r.Name + "\n")
		}
		for _, p := range r.Phases {
			line := fmt.Sprintf("    %-16s %8.2f ms", p.Name, p.DurationMS)
			if p.Note != "" {
				line += "  // " + p.Note
			}
			b.WriteString(line + "\n")
		}
		total += r.TotalMS
	}
	fmt.Fprintf(&b, "  %-18s %8.2f ms\n", "total", total)
	return b.String()
}
