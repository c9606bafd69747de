package fuzztests

import (
	"context"
	"errors"
	"testing"
	"time"

	"stylekit/internal/diag"
	"stylekit/internal/driver"
	"stylekit/internal/prefix"
	"stylekit/internal/testkit"
	"stylekit/internal/writer"
)

// processTimeout is the maximum time allowed for one input. Longer runs
// point at an infinite loop.
const processTimeout = 5 * time.Second

func FuzzProcess(f *testing.F) {
	addCorpusSeeds(f)
	matrix := prefix.NewSupportMatrix(nil).Browser(prefix.Chrome, 25).Browser(prefix.IE, 11)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		for _, mode := range []writer.Mode{writer.Verbose, writer.Compressed} {
			opts := driver.Options{Mode: mode, AutoRefine: true, Matrix: matrix}

			type outcome struct {
				res driver.Result
				err error
			}
			done := make(chan outcome, 1)
			go func() {
				res, err := driver.Process(context.Background(), "fuzz.css", input, opts)
				done <- outcome{res, err}
			}()

			select {
			case out := <-done:
				if out.err != nil {
					if !isDiagError(out.err) {
						t.Fatalf("unexpected error type %T: %v", out.err, out.err)
					}
					continue
				}
				if err := testkit.CheckTreeInvariants(out.res.Sheet, out.res.File); err != nil {
					t.Fatalf("tree invariants: %v\ninput: %q", err, input)
				}
			case <-time.After(processTimeout):
				t.Fatalf("process hung on input %q", input)
			}
		}
	})
}

func isDiagError(err error) bool {
	return errors.Is(err, diag.ErrSyntax) || errors.Is(err, diag.ErrState) ||
		errors.Is(err, diag.ErrValidation) || errors.Is(err, diag.ErrConfig)
}
