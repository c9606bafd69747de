package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"stylekit/internal/version"
)

const versionTagline = "prefixes so you do not have to"

// buildInfo is the machine readable form of `stylekit version`. Metadata
// fields stay empty unless requested.
type buildInfo struct {
	Tool      string `json:"tool" yaml:"tool"`
	Version   string `json:"version" yaml:"version"`
	Tagline   string `json:"tagline" yaml:"tagline"`
	Commit    string `json:"git_commit,omitempty" yaml:"git_commit,omitempty"`
	Message   string `json:"git_message,omitempty" yaml:"git_message,omitempty"`
	BuildDate string `json:"build_date,omitempty" yaml:"build_date,omitempty"`
}

// collectBuildInfo fills the metadata selected by the --hash, --message
// and --date flags; a selected but unset value reads "unknown".
func collectBuildInfo(hash, message, date bool) buildInfo {
	pick := func(want bool, v string) string {
		if !want {
			return ""
		}
		if v = strings.TrimSpace(v); v == "" {
			return "unknown"
		}
		return v
	}
	return buildInfo{
		Tool:      "stylekit",
		Version:   version.Plain(),
		Tagline:   versionTagline,
		Commit:    pick(hash, version.GitCommit),
		Message:   pick(message, version.GitMessage),
		BuildDate: pick(date, version.BuildDate),
	}
}

func init() {
	versionCmd.Flags().Bool("hash", false, "include git commit hash")
	versionCmd.Flags().Bool("message", false, "include git commit message")
	versionCmd.Flags().Bool("date", false, "include build timestamp")
	versionCmd.Flags().Bool("full", false, "include all build metadata")
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json|yaml)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show stylekit build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		full, _ := cmd.Flags().GetBool("full")
		hash, _ := cmd.Flags().GetBool("hash")
		message, _ := cmd.Flags().GetBool("message")
		date, _ := cmd.Flags().GetBool("date")
		format, _ := cmd.Flags().GetString("format")

		info := collectBuildInfo(hash || full, message || full, date || full)
		return renderVersion(cmd.OutOrStdout(), strings.ToLower(format), info)
	},
}

func renderVersion(out io.Writer, format string, info buildInfo) error {
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(info); err != nil {
			return err
		}
		return enc.Close()
	case "pretty":
		fmt.Fprintf(out, "stylekit %s: %s\n", version.Version(), info.Tagline)
		for _, f := range [][2]string{{"commit", info.Commit}, {"message", info.Message}, {"built", info.BuildDate}} {
			if f[1] != "" {
				fmt.Fprintf(out, "%-8s %s\n", f[0]+":", f[1])
			}
		}
		return nil
	}
	return fmt.Errorf("unsupported format %q (expected pretty|json|yaml)", format)
}
