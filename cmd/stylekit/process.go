package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"stylekit/internal/driver"
)

var processCmd = &cobra.Command{
	Use:   "process [flags] [file|dir|glob...]",
	Short: "Process stylesheets",
	Long: `Process parses each stylesheet, adds the vendor prefixes required by the
supported browsers and writes the result. Without arguments stdin is read
and the result is written to stdout.`,
	RunE: runProcess,
}

func init() {
	addProcessingFlags(processCmd)
	processCmd.Flags().StringP("out", "o", "", "output file, or directory when several inputs are given")
	processCmd.Flags().Bool("stdout", false, "write every result to stdout")
	processCmd.Flags().Int("jobs", 0, "max parallel files (0=auto)")
	processCmd.Flags().Var(new(uiMode), "ui", "progress UI (auto|on|off)")
	processCmd.Flags().Bool("cache", false, "reuse results from the disk cache")
	processCmd.Flags().Bool("cache-clear", false, "drop cached results before processing")
	processCmd.Flags().String("cache-dir", "", "cache directory (default: $XDG_CACHE_HOME/stylekit)")
}

func runProcess(cmd *cobra.Command, args []string) (err error) {
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
	timings, _ := cmd.Root().PersistentFlags().GetBool("timings")

	if len(args) == 0 {
		input, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return err
		}
		res, err := driver.Process(cmd.Context(), "<stdin>", input, opts)
		res.Err = err
		if failed := reportResults(cmd, []driver.Result{res}); failed > 0 {
			return errReported
		}
		if err := writeOutput(cmd, res.Output, ""); err != nil {
			return err
		}
		if timings {
			printTimings(cmd.ErrOrStderr(), []driver.Result{res})
		}
		return nil
	}

	files, err := driver.Expand(args)
	if err != nil {
		return err
	}
	popts := driver.PathOptions{Options: opts}
	if popts.Jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return err
	}
	if useCache, _ := cmd.Flags().GetBool("cache"); useCache {
		dir, _ := cmd.Flags().GetString("cache-dir")
		if popts.Cache, err = driver.OpenDiskCache("stylekit", dir); err != nil {
			return fmt.Errorf("cache: %w", err)
		}
		if drop, _ := cmd.Flags().GetBool("cache-clear"); drop {
			n, err := popts.Cache.Clear()
			if err != nil {
				return fmt.Errorf("cache: %w", err)
			}
			if quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet"); !quiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "cache: dropped %d entries\n", n)
			}
		}
	}

	mode := *cmd.Flags().Lookup("ui").Value.(*uiMode)
	toStdout, _ := cmd.Flags().GetBool("stdout")
	out, _ := cmd.Flags().GetString("out")
	// прогресс и вывод в stdout несовместимы
	showUI := mode.interactive(os.Stdout) && !toStdout && out != "" && len(files) > 1

	var results []driver.Result
	if showUI {
		results, err = runPathsWithUI(cmd.Context(), "stylekit process", files, popts)
	} else {
		results, err = driver.ProcessPaths(cmd.Context(), files, popts)
	}
	if err != nil {
		return err
	}

	failed := reportResults(cmd, results)
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		dest := ""
		switch {
		case toStdout || out == "":
			dest = ""
		case len(files) == 1:
			dest = out
		default:
			dest = filepath.Join(out, filepath.Base(res.Name))
		}
		if err := writeOutput(cmd, res.Output, dest); err != nil {
			return err
		}
	}
	if timings {
		printTimings(cmd.ErrOrStderr(), results)
	}
	return failedFiles(failed)
}

// writeOutput writes output to dest, or to stdout when dest is empty.
func writeOutput(cmd *cobra.Command, output, dest string) error {
	if dest == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), output)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dest, []byte(output+"\n"), 0o600)
}
