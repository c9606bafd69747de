package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"stylekit/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] file|dir|glob...",
	Short: "Report stylesheets that processing would change",
	Long: `Check processes each stylesheet and prints a unified diff against the file
on disk. It exits with status 1 when any file would change.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	addProcessingFlags(checkCmd)
	checkCmd.Flags().Int("context", 3, "lines of diff context")
	checkCmd.Flags().Int("jobs", 0, "max parallel files (0=auto)")
}

func runCheck(cmd *cobra.Command, args []string) (err error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyOverrides(cmd, &cfg); err != nil {
		return err
	}
	tracing, err := startTracing(cmd, cfg)
	if err != nil {
		return err
	}
	defer func() { tracing.finish(err) }()

	opts, err := driver.OptionsFromConfig(cfg)
	if err != nil {
		return err
	}
	files, err := driver.Expand(args)
	if err != nil {
		return err
	}
	jobs, _ := cmd.Flags().GetInt("jobs")
	ctxLines, _ := cmd.Flags().GetInt("context")

	changed, failed, err := checkFiles(cmd.Context(), cmd, files, driver.PathOptions{Options: opts, Jobs: jobs}, ctxLines)
	if err != nil {
		return err
	}
	if changed > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d file(s) would change\n", changed)
	}
	if changed > 0 || failed > 0 {
		return errReported
	}
	return nil
}

func checkFiles(ctx context.Context, cmd *cobra.Command, files []string, opts driver.PathOptions, ctxLines int) (changed, failed int, err error) {
	results, err := driver.ProcessPaths(ctx, files, opts)
	if err != nil {
		return 0, 0, err
	}
	failed = reportResults(cmd, results)
	colored := useColor(cmd, os.Stdout)
	for _, res := range results {
		if res.Err != nil || res.File == nil {
			continue
		}
		// File.Content уже нормализован, сравниваем с тем, что на диске
		// #nosec G304 -- path comes from Expand
		original, err := os.ReadFile(res.Name)
		if err != nil {
			return changed, failed, err
		}
		diff, err := unifiedDiff(res.Name, string(original), res.Output+"\n", ctxLines)
		if err != nil {
			return changed, failed, err
		}
		if diff == "" {
			continue
		}
		changed++
		printDiff(cmd.OutOrStdout(), diff, colored)
	}
	return changed, failed, nil
}

func unifiedDiff(name, before, after string, ctxLines int) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: name,
		ToFile:   name + " (processed)",
		Context:  ctxLines,
	})
}

func printDiff(w io.Writer, diff string, colored bool) {
	if !colored {
		fmt.Fprint(w, diff)
		return
	}
	add := color.New(color.FgGreen)
	del := color.New(color.FgRed)
	hunk := color.New(color.FgCyan)
	for _, line := range strings.SplitAfter(diff, "\n") {
		switch {
		case line == "":
		case len(line) >= 3 && (line[:3] == "+++" || line[:3] == "---"):
			fmt.Fprint(w, line)
		case line[0] == '+':
			add.Fprint(w, line)
		case line[0] == '-':
			del.Fprint(w, line)
		case line[0] == '@':
			hunk.Fprint(w, line)
		default:
			fmt.Fprint(w, line)
		}
	}
}
