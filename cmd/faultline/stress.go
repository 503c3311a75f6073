package main

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/smykla-labs/faultline/pkg/errcode"
	"github.com/smykla-labs/faultline/pkg/thread"
)

var (
	errCrossTalk    = errors.New("thread observed foreign diagnostic state")
	errInvalidCount = errors.New("must be at least 1")
)

// codeCount is the number of non-None error codes.
var codeCount = len(errcode.CodeValues()) - 1

func newStressCmd(a *app) *cobra.Command {
	var threads, passes int

	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Check that error registers and context stacks stay thread-local",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateStress(threads, passes); err != nil {
				return err
			}

			workers := make([]*thread.Thread, threads)

			for i := range workers {
				workers[i] = thread.New(stressBody(passes), fmt.Sprintf("stress-%d", i),
					thread.PriorityNormal, thread.WithDiag(a.diagOptions()...))
			}

			g, ctx := errgroup.WithContext(cmd.Context())

			for i, t := range workers {
				if err := t.Start(i); err != nil {
					return err
				}

				g.Go(func() error { return joinStress(ctx, t) })
			}

			if err := g.Wait(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "stress: %d threads x %d passes ok\n", threads, passes)

			return nil
		},
	}

	cmd.Flags().IntVar(&threads, "threads", 32, "number of threads")
	cmd.Flags().IntVar(&passes, "passes", 512, "passes per thread")

	return cmd
}

func validateStress(threads, passes int) error {
	if threads < 1 {
		return errors.Wrapf(errInvalidCount, "--threads %d", threads)
	}

	if passes < 1 {
		return errors.Wrapf(errInvalidCount, "--passes %d", passes)
	}

	return nil
}

func stressBody(passes int) thread.Func {
	return func(self *thread.Thread, arg any) any {
		st := self.Diag()
		code := errcode.Code(arg.(int)%codeCount + 1)

		for pass := range passes {
			st.Report(errcode.LevelDebug, code)
			st.PushContext(self.Name(), fmt.Sprint(pass))

			if got := st.Error(); got != code {
				return errors.Wrapf(errCrossTalk, "%s read %s, want %s", self.Name(), got, code)
			}

			if ec := st.Context(); ec != nil {
				top := ec.Frame[ec.Depth-1]
				if top.Name != self.Name() {
					return errors.Wrapf(errCrossTalk, "%s saw frame %q", self.Name(), top.Name)
				}
			}

			st.PopContext()

			if ec := st.Context(); ec != nil && ec.Depth != 0 {
				return errors.Wrapf(errCrossTalk, "%s left depth %d", self.Name(), ec.Depth)
			}
		}

		return nil
	}
}

func joinStress(ctx context.Context, t *thread.Thread) error {
	res, err := t.Join(ctx)
	if err != nil {
		return err
	}

	if err, ok := res.(error); ok {
		return err
	}

	return nil
}
