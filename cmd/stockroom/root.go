package main

import (
	"github.com/spf13/cobra"

	"github.com/erazemk/stockroom/internal/config"
	"github.com/erazemk/stockroom/internal/logging"
)

// app carries state shared by subcommands once the root has loaded the
// configuration.
type app struct {
	configPath string
	dbPath     string
	logPath    string
	logLevel   string

	cfg      *config.Config
	closeLog func()
}

func newRootCmd() *cobra.Command {
	a := &app{closeLog: func() {}}

	root := &cobra.Command{
		Use:           "stockroom",
		Short:         "Laboratory inventory tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			a.closeLog()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "stockroom.yaml", "YAML configuration file")
	flags.StringVarP(&a.dbPath, "db", "d", "", "SQLite database path (overrides config)")
	flags.StringVarP(&a.logPath, "log", "l", "", "also append logs to this file (overrides config)")
	flags.StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error (overrides config)")

	root.AddCommand(
		newInitCmd(a),
		newServeCmd(a),
		newAddUserCmd(a),
		newImportCmd(a),
		newTemplateCmd(a),
	)

	return root
}

// load reads the config file, applies flag overrides and sets up logging.
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.DB = a.dbPath
	}
	if flags.Changed("log") {
		cfg.LogFile = a.logPath
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	closeLog, err := logging.Setup(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.closeLog = closeLog
	return nil
}
