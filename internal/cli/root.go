// Package cli defines the root Cobra command and global flag/context setup.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/f9-o/pulse/internal/cli/commands"
	"github.com/f9-o/pulse/internal/core/config"
	"github.com/f9-o/pulse/internal/core/logger"
	"github.com/f9-o/pulse/internal/core/state"
	"github.com/f9-o/pulse/pkg/errs"
	"github.com/f9-o/pulse/pkg/pprint"
)

// globalFlags holds values bound to persistent global flags.
var globalFlags struct {
	configFile string
	debug      bool
	jsonOutput bool
	timeout    time.Duration
}

// rootCmd is the base command for pulse.
var rootCmd = &cobra.Command{
	Use:           "pulse",
	Short:         "Pulse — Smoke Tests for Locally Running Services",
	Long:          ``, // overridden by SetHelpFunc below
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Bare `pulse` — help func already prints banner
		return cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "completion" || cmd.Name() == "init" {
			return nil
		}
		return initRuntime(cmd)
	},
}

// Execute runs the CLI. Called by main().
func Execute() {
	// Show banner before every help screen
	origHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		pprint.PrintBanner(commands.Version, commands.BuildDate)
		origHelp(cmd, args)
	})

	if err := rootCmd.Execute(); err != nil {
		if pe := errs.AsPulse(err); pe != nil {
			pprint.Error("%s", pe.UserMessage())
		} else {
			pprint.Error("%s", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&globalFlags.configFile, "config", "c", "", "Path to pulse.yaml (defaults to auto-discovery)")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.debug, "debug", false, "Enable debug-level logging")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.jsonOutput, "json", false, "Output in machine-readable JSON")
	rootCmd.PersistentFlags().DurationVarP(&globalFlags.timeout, "timeout", "t", 0, "Default per-check timeout (overrides config)")

	// Register all subcommands
	rootCmd.AddCommand(
		commands.NewInitCmd(),
		commands.NewRunCmd(),
		commands.NewChecksCmd(),
		commands.NewHistoryCmd(),
		commands.NewWatchCmd(),
		commands.NewVersionCmd(),
	)
}

// initRuntime loads config, logger, and history DB before each command runs.
func initRuntime(cmd *cobra.Command) error {
	// Load config
	cfg, err := config.Load(globalFlags.configFile)
	if err != nil {
		return errs.Wrap(err, errs.ErrConfig, "config.load").
			WithAdvice("Check pulse.yaml syntax, or run `pulse init` to scaffold a fresh one.")
	}

	// Initialise logger
	pulseHome := config.PulseHome()
	logFile := cfg.Log.File
	if logFile == "" {
		logFile = filepath.Join(pulseHome, "logs", "pulse.log")
	}

	log, err := logger.Init(cfg.Log.Level, cfg.Log.Format, logFile, globalFlags.debug)
	if err != nil {
		return fmt.Errorf("logger init: %w", err)
	}

	// Open history DB
	if err := os.MkdirAll(pulseHome, 0750); err != nil {
		return fmt.Errorf("create pulse home: %w", err)
	}
	db, err := state.Open(filepath.Join(pulseHome, "history.db"))
	if err != nil {
		return fmt.Errorf("history db: %w", err)
	}

	// Store in command context
	cmd.SetContext(commands.NewContext(cmd.Context(), &commands.Runtime{
		Config:  cfg,
		Log:     log,
		History: db,
		Flags: commands.GlobalFlags{
			Debug:      globalFlags.debug,
			JSONOutput: globalFlags.jsonOutput,
			Timeout:    globalFlags.timeout,
		},
	}))

	return nil
}
