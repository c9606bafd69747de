package main

import (
	"fmt"
	"io"

	"stylekit/internal/driver"
	"stylekit/internal/observ"
)

func printTimings(out io.Writer, results []driver.Result) {
	if out == nil || len(results) == 0 {
		return
	}
	reports := make([]observ.Report, 0, len(results))
	cached := 0
	for _, r := range results {
		if r.Cached {
			cached++
			continue
		}
		reports = append(reports, r.Timings)
	}
	if len(reports) > 0 {
		fmt.Fprint(out, observ.Summary(reports...))
	}
	if cached > 0 {
		fmt.Fprintf(out, "%d file(s) served from cache\n", cached)
	}
}
