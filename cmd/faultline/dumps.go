package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/smykla-labs/faultline/internal/crashdump"
	"github.com/smykla-labs/faultline/pkg/diag"
)

var errConfirmationRequired = errors.New("refusing to prune without confirmation: pass --yes")

const (
	idWidth    = 48
	labelWidth = 16
	kindWidth  = 14
	ageWidth   = 18
)

func newDumpsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dumps",
		Short: "Inspect and prune crash dumps",
	}

	cmd.AddCommand(newDumpsListCmd(a), newDumpsShowCmd(a), newDumpsPruneCmd(a))

	return cmd
}

type filterFlags struct {
	label string
	kind  string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.label, "label", "", "only dumps whose label matches this glob or regex")
	cmd.Flags().StringVar(&f.kind, "kind", "", "only dumps of this fault kind")
}

func (f *filterFlags) filter() (crashdump.Filter, error) {
	return crashdump.NewFilter(f.label, f.kind)
}

func newDumpsListCmd(a *app) *cobra.Command {
	var ff filterFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List dumps, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := ff.filter()
			if err != nil {
				return err
			}

			summaries, err := a.store.Find(filter)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if len(summaries) == 0 {
				fmt.Fprintf(out, "no dumps in %s\n", a.store.Dir())
				return nil
			}

			printSummaries(out, summaries, time.Now())

			return nil
		},
	}

	ff.register(cmd)

	return cmd
}

func printSummaries(out io.Writer, summaries []crashdump.DumpSummary, now time.Time) {
	fmt.Fprintln(out, row("ID", "LABEL", "KIND", "AGE", "SIZE"))

	for _, s := range summaries {
		fmt.Fprintln(out, row(s.ID, s.Label, s.FaultKind, age(now, s.Timestamp), humanize.Bytes(uint64(s.Size))))
	}
}

func row(id, label, kind, age, size string) string {
	return cell(id, idWidth) + cell(label, labelWidth) + cell(kind, kindWidth) + cell(age, ageWidth) + size
}

func cell(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width-1, "…"), width)
}

func age(now, then time.Time) string {
	d := now.Sub(then).Truncate(time.Second)
	if d < time.Second {
		return "just now"
	}

	return durafmt.Parse(d).LimitFirstN(2).String() + " ago"
}

func newDumpsShowCmd(a *app) *cobra.Command {
	var (
		asJSON    bool
		withStack bool
	)

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a dump",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := a.store.Get(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")

				return errors.Wrap(enc.Encode(info), "encoding dump")
			}

			printInfo(out, info, withStack)

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw dump document")
	cmd.Flags().BoolVar(&withStack, "stack", false, "include the stack trace")

	return cmd
}

func printInfo(out io.Writer, info *crashdump.CrashInfo, withStack bool) {
	fmt.Fprintf(out, "id:       %s\n", info.ID)
	fmt.Fprintf(out, "label:    %s\n", info.Label)
	fmt.Fprintf(out, "time:     %s\n", info.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(out, "fault:    %s\n", info.FaultKind)
	fmt.Fprintf(out, "value:    %s\n", info.PanicValue)

	if info.FaultAddr != 0 {
		fmt.Fprintf(out, "address:  %#x\n", info.FaultAddr)
	}

	fmt.Fprintf(out, "runtime:  %s %s/%s pid %d\n",
		info.Runtime.GoVersion, info.Runtime.GOOS, info.Runtime.GOARCH, info.Runtime.PID)

	if info.Thread != nil {
		fmt.Fprintf(out, "thread:   %d\n", info.Thread.ID)
	}

	if info.LastError != "" {
		fmt.Fprintf(out, "error:    %s\n", info.LastError)
	}

	for _, f := range info.Context {
		fmt.Fprintln(out, diag.FormatFrame(diag.Frame{Name: f.Name, Data: f.Data}))
	}

	if withStack {
		fmt.Fprintf(out, "\n%s\n", info.StackTrace)
	}
}

func newDumpsPruneCmd(a *app) *cobra.Command {
	var (
		keep   int
		maxAge time.Duration
		dryRun bool
		yes    bool
		ff     filterFlags
	)

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete dumps beyond the configured count and age",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := ff.filter()
			if err != nil {
				return err
			}

			opts := crashdump.PruneOptions{
				MaxDumps: a.cfg.Dumps.GetMaxDumps(),
				MaxAge:   a.cfg.Dumps.GetMaxAge(),
				DryRun:   true,
				Filter:   filter,
			}

			if cmd.Flags().Changed("keep") {
				opts.MaxDumps = keep
			}

			if cmd.Flags().Changed("max-age") {
				opts.MaxAge = maxAge
			}

			candidates, err := a.store.Prune(opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if len(candidates) == 0 {
				fmt.Fprintln(out, "nothing to prune")
				return nil
			}

			if dryRun {
				printSummaries(out, candidates, time.Now())
				fmt.Fprintf(out, "would remove %d dump(s)\n", len(candidates))

				return nil
			}

			if !yes {
				ok, err := confirm(fmt.Sprintf("Remove %d dump(s) from %s?", len(candidates), a.store.Dir()))
				if err != nil {
					return err
				}

				if !ok {
					fmt.Fprintln(out, "aborted")
					return nil
				}
			}

			opts.DryRun = false

			removed, err := a.store.Prune(opts)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "removed %d dump(s)\n", len(removed))

			return nil
		},
	}

	cmd.Flags().IntVar(&keep, "keep", 0, "number of newest dumps to keep (default from config)")
	cmd.Flags().DurationVar(&maxAge, "max-age", 0, "remove dumps older than this (default from config)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "only list what would be removed")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	ff.register(cmd)

	return cmd
}

func confirm(title string) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, errConfirmationRequired
	}

	var ok bool

	err := huh.NewConfirm().
		Title(title).
		Affirmative("Remove").
		Negative("Keep").
		Value(&ok).
		Run()
	if err != nil {
		return false, errors.Wrap(err, "asking for confirmation")
	}

	return ok, nil
}
