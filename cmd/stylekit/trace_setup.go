package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"stylekit/internal/config"
	"stylekit/internal/trace"
)

// traceSession owns the tracer of one command run.
type traceSession struct {
	tracer    trace.Tracer
	heartbeat *trace.Heartbeat
	errOut    io.Writer
}

// startTracing builds a tracer from the --trace flags, falling back to the
// [trace] table of cfg, and attaches it to the command context.
func startTracing(cmd *cobra.Command, cfg config.Config) (*traceSession, error) {
	flags := cmd.Root().PersistentFlags()
	output, _ := flags.GetString("trace")
	levelName, _ := flags.GetString("trace-level")
	modeName, _ := flags.GetString("trace-mode")
	formatName, _ := flags.GetString("trace-format")
	ringSize, _ := flags.GetInt("trace-ring-size")
	interval, _ := flags.GetDuration("trace-heartbeat")

	if levelName == "" {
		levelName = cfg.Trace.Level
	}
	if output == "" && cfg.Trace.Output != "stderr" {
		output = cfg.Trace.Output
	}
	level, err := trace.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}
	// --trace без уровня включает фазы
	if level == trace.LevelOff && output != "" {
		level = trace.LevelPhase
	}
	s := &traceSession{tracer: trace.Nop, errOut: cmd.ErrOrStderr()}
	if level != trace.LevelOff {
		mode, err := trace.ParseMode(modeName)
		if err != nil {
			return nil, err
		}
		format, err := trace.ParseFormat(formatName)
		if err != nil {
			return nil, err
		}
		s.tracer, err = trace.New(trace.Config{
			Level:      level,
			Mode:       mode,
			Format:     format,
			OutputPath: output,
			RingSize:   ringSize,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create tracer: %w", err)
		}
		s.heartbeat = trace.StartHeartbeat(s.tracer, interval)
	}
	cmd.SetContext(trace.WithTracer(cmd.Context(), s.tracer))
	return s, nil
}

// finish stops the heartbeat and closes the tracer. When the run failed,
// the ring buffer (if any) is dumped first.
func (s *traceSession) finish(runErr error) {
	s.heartbeat.Stop()
	if runErr != nil {
		if err := trace.DumpRing(s.tracer, s.errOut, trace.FormatText); err != nil {
			fmt.Fprintf(s.errOut, "trace: dump error: %v\n", err)
		}
	}
	if err := s.tracer.Flush(); err != nil {
		fmt.Fprintf(s.errOut, "trace: flush error: %v\n", err)
	}
	if err := s.tracer.Close(); err != nil {
		fmt.Fprintf(s.errOut, "trace: close error: %v\n", err)
	}
}
