package main

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/smykla-labs/faultline/pkg/crashguard"
	"github.com/smykla-labs/faultline/pkg/diag"
	"github.com/smykla-labs/faultline/pkg/thread"
)

var errNoCallback = errors.New("dump handler was not called")

func newThreadCrashCmd(a *app) *cobra.Command {
	var (
		label   string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "thread-crash",
		Short: "Fault inside a thread running under the process thread guard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if label == "" {
				label = a.cfg.Guard.GetLabel()
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			dumps := make(chan string, 1)

			a.engine.SetThreadGuard(func(path string) { dumps <- path }, label)
			defer a.engine.ClearThreadGuard()

			t := thread.New(func(self *thread.Thread, _ any) any {
				if st, ok := diag.FromContext(self.Context()); ok {
					st.PushContext("Crashing thread", self.Name())
				}

				crashguard.TriggerFault()

				return nil
			}, "crasher", thread.PriorityNormal,
				thread.WithGuard(a.engine),
				thread.WithDiag(a.diagOptions()...),
			)

			if err := t.Start(nil); err != nil {
				return err
			}

			var path string

			select {
			case path = <-dumps:
			case <-ctx.Done():
				return errors.Wrapf(errNoCallback, "after %s", timeout)
			}

			if err := thread.WaitForFinish(ctx, t); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "thread: %s (%d)\n", t.Name(), t.ID())
			fmt.Fprintf(out, "crashed: %t\n", t.Crashed())

			if path == "" {
				return errDumpFailed
			}

			fmt.Fprintf(out, "dump: %s\n", path)

			return nil
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "guard label used in the dump name")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "how long to wait for the dump handler")

	return cmd
}
