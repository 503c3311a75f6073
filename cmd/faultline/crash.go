package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/smykla-labs/faultline/pkg/crashguard"
	"github.com/smykla-labs/faultline/pkg/diag"
)

var (
	errUnknownWorkload = errors.New("unknown workload")
	errDumpFailed      = errors.New("fault contained but no dump was written")
)

var workloads = map[string]func(int) int{
	"memory": func(int) int {
		crashguard.TriggerFault()
		return 0
	},
	"divide": func(d int) int {
		return 1 / d
	},
	"panic": func(int) int {
		panic("deliberate abort")
	},
}

func workloadNames() []string {
	names := make([]string, 0, len(workloads))
	for name := range workloads {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

func newCrashCmd(a *app) *cobra.Command {
	var (
		label string
		kind  string
	)

	cmd := &cobra.Command{
		Use:   "crash",
		Short: "Run a faulting workload under a crash guard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			work, ok := workloads[kind]
			if !ok {
				return errors.Wrapf(errUnknownWorkload, "%q (want one of %s)", kind, strings.Join(workloadNames(), ", "))
			}

			if label == "" {
				label = a.cfg.Guard.GetLabel()
			}

			st := diag.NewState(a.diagOptions()...)
			st.PushContext("Running workload", kind)

			var dumpPath string

			handler := func(path string) { dumpPath = path }

			guarded := crashguard.Run[int, int]
			if a.cfg.Guard.IsDebuggerCheckEnabled() {
				guarded = crashguard.RunChecked[int, int]
			}

			_, status := guarded(a.engine, work, 0, handler, label, crashguard.WithDiag(st))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "status: %s\n", status)

			if dumpPath != "" {
				fmt.Fprintf(out, "dump: %s\n", dumpPath)
			}

			if status == crashguard.StatusDumpFailed {
				return errDumpFailed
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "guard label used in the dump name")
	cmd.Flags().StringVar(&kind, "kind", "memory", "workload ("+strings.Join(workloadNames(), ", ")+")")

	return cmd
}
