package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"stylekit/internal/prefix"
)

var prefixesCmd = &cobra.Command{
	Use:   "prefixes [flags] [property|function...]",
	Short: "Show which vendor prefixes the supported browsers need",
	Long: `Prefixes lists the supported browser versions and, for every known property
and function (or only the ones named), the vendor prefixes the prefixer would
add.`,
	RunE: runPrefixes,
}

func init() {
	prefixesCmd.Flags().StringSlice("support", nil, "supported browsers, e.g. \"chrome last 2\" (repeatable)")
	prefixesCmd.Flags().Bool("all", false, "include entries that need no prefix")
	prefixesCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type prefixEntry struct {
	Name     string   `json:"name"`
	Kind     string   `json:"kind"`
	Prefixes []string `json:"prefixes"`
}

type prefixReport struct {
	Browsers map[string][]float64 `json:"browsers"`
	Entries  []prefixEntry        `json:"entries"`
}

func runPrefixes(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("support") {
		if cfg.Support, err = cmd.Flags().GetStringSlice("support"); err != nil {
			return err
		}
	}
	matrix, err := cfg.Matrix(nil)
	if err != nil {
		return err
	}
	all, _ := cmd.Flags().GetBool("all")
	format, _ := cmd.Flags().GetString("format")

	report := buildPrefixReport(matrix, prefix.Default(), args, all)
	switch strings.ToLower(format) {
	case "pretty":
		renderPrefixesPretty(cmd.OutOrStdout(), report)
		return nil
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func buildPrefixReport(m *prefix.SupportMatrix, data *prefix.Data, names []string, all bool) prefixReport {
	report := prefixReport{Browsers: make(map[string][]float64)}
	for _, b := range m.SupportedBrowsers() {
		report.Browsers[b.Key()] = m.AllSupportedVersions(b)
	}
	add := func(name, kind string, set prefix.Set) {
		if set.IsEmpty() && !all {
			return
		}
		e := prefixEntry{Name: name, Kind: kind, Prefixes: []string{}}
		for _, p := range set.Slice() {
			e.Prefixes = append(e.Prefixes, p.String())
		}
		report.Entries = append(report.Entries, e)
	}
	if len(names) == 0 {
		for _, p := range data.Properties() {
			add(p, "property", m.PrefixesForProperty(p))
		}
		for _, f := range data.Functions() {
			add(f, "function", m.PrefixesForFunction(f))
		}
		return report
	}
	for _, n := range names {
		n = strings.ToLower(strings.TrimSuffix(n, "()"))
		switch {
		case data.HasProperty(n):
			add(n, "property", m.PrefixesForProperty(n))
		case data.HasFunction(n):
			add(n, "function", m.PrefixesForFunction(n))
		default:
			add(n, "unknown", 0)
		}
	}
	return report
}

func renderPrefixesPretty(w io.Writer, r prefixReport) {
	fmt.Fprintln(w, "supported:")
	for _, b := range prefix.Browsers() {
		versions, ok := r.Browsers[b.Key()]
		if !ok {
			continue
		}
		vs := make([]string, 0, len(versions))
		for _, v := range versions {
			vs = append(vs, fmt.Sprint(v))
		}
		fmt.Fprintf(w, "  %s %s\n", runewidth.FillRight(b.String(), 18), strings.Join(vs, " "))
	}
	if len(r.Entries) == 0 {
		fmt.Fprintln(w, "no prefixes required")
		return
	}
	fmt.Fprintln(w)
	width := 0
	for _, e := range r.Entries {
		width = max(width, runewidth.StringWidth(e.Name))
	}
	for _, e := range r.Entries {
		name := e.Name
		if e.Kind == "function" {
			name += "()"
		}
		prefixes := strings.Join(e.Prefixes, " ")
		if prefixes == "" {
			prefixes = "-"
		}
		fmt.Fprintf(w, "  %s %s\n", runewidth.FillRight(name, width+2), prefixes)
	}
}
