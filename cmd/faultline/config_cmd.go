package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/smykla-labs/faultline/pkg/config"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create and inspect configuration",
	}

	cmd.AddCommand(newConfigInitCmd(), newConfigShowCmd(a))

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var global, force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with every default",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := config.GlobalConfigPath()

			if !global {
				wd, err := os.Getwd()
				if err != nil {
					return errors.Wrap(err, "resolving working directory")
				}

				path = filepath.Join(wd, config.ProjectFileName)
			}

			if err := config.NewWriter().WriteFile(path, config.DefaultConfig(), force); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)

			return nil
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "write the global file instead of the project file")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}

func newConfigShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := config.NewWriter().Render(a.cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			files := a.provider.Files()
			if len(files) == 0 {
				fmt.Fprintln(out, "# no config files loaded")
			}

			for _, path := range files {
				fmt.Fprintf(out, "# loaded from %s\n", path)
			}

			_, err = out.Write(data)

			return errors.Wrap(err, "writing configuration")
		},
	}
}
