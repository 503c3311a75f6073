package main

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/smykla-labs/faultline/internal/config/provider"
	"github.com/smykla-labs/faultline/internal/crashdump"
	"github.com/smykla-labs/faultline/internal/metrics"
	"github.com/smykla-labs/faultline/pkg/config"
	"github.com/smykla-labs/faultline/pkg/crashguard"
	"github.com/smykla-labs/faultline/pkg/diag"
	"github.com/smykla-labs/faultline/pkg/logger"
)

var errConfigNotFound = errors.New("config file not found")

type globalFlags struct {
	configFile string
	logLevel   string
	logFormat  string
	dumpDir    string
	quiet      bool
}

// app is the state shared by every command once configuration is loaded.
type app struct {
	flags    globalFlags
	cfg      *config.Config
	provider *provider.Provider
	log      logger.Logger
	engine   *crashguard.Engine
	store    *crashdump.Store
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "faultline",
		Short:         "Contain faults in guarded work and manage the resulting dumps",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configFile, "config", "", "configuration file to load over the project and global ones")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level (trace, debug, info, warn, error, disabled)")
	pf.StringVar(&a.flags.logFormat, "log-format", "", "log format (console, json)")
	pf.StringVar(&a.flags.dumpDir, "dump-dir", "", "directory dumps are written to")
	pf.BoolVarP(&a.flags.quiet, "quiet", "q", false, "suppress log output")

	root.AddCommand(
		newCrashCmd(a),
		newThreadCrashCmd(a),
		newStressCmd(a),
		newDumpsCmd(a),
		newConfigCmd(a),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return err
	}

	a.cfg = cfg

	level, _ := logger.ParseLevel(cfg.Log.GetLevel())

	a.log = logger.New(logger.Options{
		Writer:    cmd.ErrOrStderr(),
		Format:    logger.Format(cfg.Log.GetFormat()),
		Level:     level,
		Timestamp: cfg.Log.IsTimestampEnabled(),
		NoColor:   !cfg.Log.IsColorEnabled(),
		Quiet:     cfg.Log.IsQuiet(),
	})

	dir := cfg.Dumps.Dir
	if dir == "" {
		dir = crashdump.DefaultDir()
	}

	a.store = crashdump.NewStore(dir)
	a.engine = crashguard.New(
		crashguard.WithDumpDir(dir),
		crashguard.WithVersion(version),
		crashguard.WithLogger(a.log),
		crashguard.WithMetrics(metrics.Default()),
	)
	crashguard.SetDefault(a.engine)

	return nil
}

func (a *app) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := map[string]any{}

	changed := cmd.Flags().Changed
	if changed("log-level") {
		flags["log.level"] = a.flags.logLevel
	}

	if changed("log-format") {
		flags["log.format"] = a.flags.logFormat
	}

	if changed("dump-dir") {
		flags["dumps.dir"] = a.flags.dumpDir
	}

	if changed("quiet") {
		flags["log.quiet"] = a.flags.quiet
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "resolving working directory")
	}

	sources := []provider.Source{provider.NewFlagSource(flags), provider.NewEnvSource()}

	if a.flags.configFile != "" {
		explicit := provider.NewFileSource(a.flags.configFile)
		if !explicit.IsAvailable() {
			return nil, errors.Wrapf(errConfigNotFound, "%s", a.flags.configFile)
		}

		sources = append(sources, explicit)
	}

	sources = append(sources, provider.NewProjectFileSource(wd), provider.NewGlobalFileSource())

	a.provider = provider.NewProvider(sources...)

	return a.provider.Load()
}

func (a *app) diagOptions() []diag.Option {
	return []diag.Option{
		diag.WithLogger(a.log),
		diag.WithMetrics(metrics.Default()),
		diag.WithMaxDepth(a.cfg.Context.GetMaxDepth()),
		diag.WithMaxFieldLength(a.cfg.Context.GetMaxFieldLength()),
		diag.WithReportLevel(a.cfg.Guard.GetReportLevel()),
	}
}
