// Package cli wires the command line to the browser and the headless search.
package cli

import (
	"fmt"

	"github.com/kk-code-lab/fxplorer/internal/app"
	"github.com/kk-code-lab/fxplorer/internal/config"
	"github.com/kk-code-lab/fxplorer/internal/logger"
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// globalOptions are flags shared by every command.
type globalOptions struct {
	configPath string
	logLevel   string
	logFile    string
	hidden     bool
}

// NewRootCommand creates the fxplorer command tree.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}
	cmd := &cobra.Command{
		Use:   "fxplorer [DIR]",
		Short: "Terminal file browser with incremental search",
		Long: `fxplorer browses directories in the terminal and searches a
directory tree for names containing a term, showing matches as they are
found. A new search or any navigation cancels the running one.`,
		Args:    cobra.MaximumNArgs(1),
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) == 1 {
				dir = args[0]
			}
			return runBrowser(cmd, opts, dir)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	flags.StringVar(&opts.logFile, "log-file", "", "write logs to this file")
	flags.BoolVarP(&opts.hidden, "hidden", "a", false, "show and search hidden entries")

	cmd.AddCommand(newSearchCommand(opts))
	cmd.AddCommand(newVersionCommand())
	return cmd
}

// loadSettings reads the config file and applies flags given explicitly.
func loadSettings(cmd *cobra.Command, opts *globalOptions) (*config.Config, error) {
	path := opts.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("hidden") {
		cfg.ShowHidden = opts.hidden
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("log-file") {
		cfg.LogFile = opts.logFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openLogger returns a file logger, or a no-op one when no file is set.
func openLogger(cfg *config.Config) (logger.Logger, func(), error) {
	if cfg.LogFile == "" {
		return logger.Nop(), func() {}, nil
	}
	l, err := logger.NewFileLogger(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return l, func() { _ = l.Close() }, nil
}

func runBrowser(cmd *cobra.Command, opts *globalOptions, dir string) error {
	cfg, err := loadSettings(cmd, opts)
	if err != nil {
		return err
	}
	log, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	start, err := cfg.ResolveStartDir(dir)
	if err != nil {
		return err
	}
	log.Infof("fxplorer %s starting in %s", Version, start)

	a, err := app.NewApplication(app.Options{Config: cfg, StartDir: start, Logger: log})
	if err != nil {
		return err
	}
	defer func() {
		_ = a.Close()
	}()

	a.Run()
	log.Infof("exit in %s", a.CurrentPath())
	return nil
}
