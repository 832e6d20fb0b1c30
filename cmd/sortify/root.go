package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"sortify/internal/config"
	"sortify/internal/interactive"
	"sortify/internal/logging"
	"sortify/internal/preflight"
	"sortify/internal/runlock"
	"sortify/internal/sorter"
)

type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string

	destDir         string
	dryRun          bool
	includeDotfiles bool
	includeCode     bool
	interactive     bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "sortify [root]",
		Short: "Sort files into folders named after their extensions",
		Long: "Sortify walks a directory tree and moves every matching file into\n" +
			"<destination>/<extension>/, grouping extensionless files under no_ext.\n" +
			"Hidden files, code files, and the root README are left alone unless\n" +
			"the matching --include flags say otherwise.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSort(cmd, args, opts)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Configuration file path")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "Log format (console, json)")

	cmd.Flags().StringVarP(&opts.destDir, "dest-dir", "d", "", "Destination directory for sorted files")
	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "n", false, "Preview moves without changing anything")
	cmd.Flags().BoolVar(&opts.includeDotfiles, "include-dotfiles", false, "Also sort hidden files")
	cmd.Flags().BoolVar(&opts.includeCode, "include-code", false, "Also sort source code files")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "Run the guided interactive flow")

	cmd.AddCommand(newConfigCommand(opts))

	return cmd
}

func runSort(cmd *cobra.Command, args []string, opts *rootOptions) error {
	fileCfg, cfgPath, cfgExists, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	logLevel := fileCfg.Logging.Level
	if cmd.Flags().Changed("log-level") {
		logLevel = opts.logLevel
	}
	logFormat := fileCfg.Logging.Format
	if cmd.Flags().Changed("log-format") {
		logFormat = opts.logFormat
	}
	logger, err := logging.New(logging.Options{
		Level:  logLevel,
		Format: logFormat,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	logger = logger.With(logging.String(logging.FieldRunID, uuid.NewString()))
	if cfgExists {
		logger.Debug("configuration loaded", logging.String(logging.FieldPath, cfgPath))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()

	runCfg := sorter.Config{
		Root:            ".",
		DestDir:         fileCfg.Defaults.DestDir,
		IncludeDotfiles: fileCfg.Defaults.IncludeDotfiles,
		IncludeCode:     fileCfg.Defaults.IncludeCode,
		DryRun:          opts.dryRun,
	}
	if len(args) == 1 {
		runCfg.Root = args[0]
	}
	if cmd.Flags().Changed("dest-dir") {
		runCfg.DestDir = opts.destDir
	}
	if cmd.Flags().Changed("include-dotfiles") {
		runCfg.IncludeDotfiles = opts.includeDotfiles
	}
	if cmd.Flags().Changed("include-code") {
		runCfg.IncludeCode = opts.includeCode
	}

	if opts.interactive {
		colorize := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
		flow := interactive.New(cmd.InOrStdin(), out, colorize, logger)
		chosen, err := flow.Run(ctx, runCfg.Root)
		if err != nil {
			return err
		}
		runCfg = chosen
	}

	if !runCfg.DryRun {
		if err := runPreflight(cmd, runCfg); err != nil {
			return err
		}

		dest, err := runCfg.DestinationRoot()
		if err != nil {
			return err
		}
		lock, err := runlock.Acquire(dest)
		if err != nil {
			return err
		}
		defer lock.Release()
	}

	summary, err := sorter.NewRunner(runCfg, logger, out).Run(ctx)
	if err != nil {
		return err
	}

	if table := renderRunSummary(summary); table != "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, table)
	}

	if failed := summary.Failures(); len(failed) > 0 {
		return fmt.Errorf("%d file(s) could not be moved", len(failed))
	}
	return nil
}

// runPreflight verifies permissions before any filesystem change. Every
// failing check is reported, not just the first one.
func runPreflight(cmd *cobra.Command, cfg sorter.Config) error {
	root, err := cfg.RootPath()
	if err != nil {
		return err
	}
	dest, err := cfg.DestinationRoot()
	if err != nil {
		return err
	}

	failed := false
	for _, res := range preflight.Evaluate(root, dest) {
		if !res.Passed {
			failed = true
			fmt.Fprintf(cmd.ErrOrStderr(), "Preflight check failed: %s: %s\n", res.Name, res.Detail)
		}
	}
	if failed {
		return errors.New("preflight checks failed")
	}
	return nil
}
