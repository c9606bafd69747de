package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stylekit/internal/diag"
	"stylekit/internal/diagfmt"
	"stylekit/internal/driver"
)

// errReported is returned once diagnostics have been printed, so main only
// sets the exit status.
var errReported = errors.New("errors reported")

// reportResults prints warnings and errors for every result to stderr and
// returns the number of failed files. With --fail-on warning a file with
// warnings counts as failed too.
func reportResults(cmd *cobra.Command, results []driver.Result) int {
	failOn := diag.SevError
	if name, _ := cmd.Flags().GetString("fail-on"); name != "" {
		if sev, err := diag.ParseSeverity(name); err == nil {
			failOn = sev
		}
	}
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	maxDiagnostics, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	pathName, _ := cmd.Root().PersistentFlags().GetString("path-mode")
	pathMode, err := diagfmt.ParsePathMode(pathName)
	if err != nil {
		pathMode = diagfmt.PathModeAuto
	}
	opts := diagfmt.PrettyOpts{
		Color:    useColor(cmd, os.Stderr),
		Context:  2,
		PathMode: pathMode,
	}
	failed := 0
	for _, res := range results {
		bag := diag.NewBag(maxDiagnostics)
		for _, w := range res.Warnings {
			bag.Add(w)
		}
		opts.Name = res.Name
		if !quiet && bag.Len() > 0 {
			bag.Sort()
			diagfmt.Pretty(os.Stderr, bag, res.File, opts)
		}
		if worst, ok := bag.Worst(); ok && res.Err == nil && worst >= failOn {
			failed++
		}
		if res.Err != nil {
			failed++
			diagfmt.Error(os.Stderr, res.Err, res.File, opts)
		}
	}
	return failed
}

func failedFiles(n int) error {
	if n == 0 {
		return nil
	}
	fmt.Fprintf(os.Stderr, "%d file(s) failed\n", n)
	return errReported
}
