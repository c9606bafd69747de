package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"stylekit/internal/diagfmt"
	"stylekit/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.css",
	Short: "Split a stylesheet into raw statements",
	Long:  `Tokenize shows the top-level statements of a stylesheet as the parser first sees them, before refinement`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type statementJSON struct {
	Kind   string `json:"kind"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Head   string `json:"head"`
	Body   string `json:"body,omitempty"`
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	// #nosec G304 -- path is a CLI argument
	input, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	stmts, file, err := driver.Tokenize(filePath, input)
	if err != nil {
		diagfmt.Error(os.Stderr, err, file, diagfmt.PrettyOpts{Color: useColor(cmd, os.Stderr), Context: 2})
		return errReported
	}

	switch format {
	case "pretty":
		printStatements(cmd.OutOrStdout(), stmts)
		return nil
	case "json":
		out := make([]statementJSON, 0, len(stmts))
		for _, st := range stmts {
			out = append(out, statementJSON{Kind: st.Kind.String(), Line: st.Line, Column: st.Column, Head: st.Head, Body: st.Body})
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func printStatements(w io.Writer, stmts []driver.RawStatement) {
	for _, st := range stmts {
		fmt.Fprintf(w, "%4d:%-3d %-8s %s\n", st.Line, st.Column, st.Kind, st.Head)
		if st.Body != "" {
			fmt.Fprintf(w, "         %s\n", strings.ReplaceAll(st.Body, "\n", " "))
		}
	}
}
