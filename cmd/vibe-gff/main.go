// Package main provides the vibe-gff command-line tool.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pterm.SetDefaultOutput(os.Stderr)

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		printError(err)
		var usage *usageError
		if errors.As(err, &usage) {
			return ExitUsage
		}
		return ExitError
	}
	return ExitSuccess
}

// usageError marks errors caused by invalid command-line usage.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func printError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	if hint := errors.FlattenHints(err); hint != "" {
		fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
	}
}

func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:   "vibe-gff",
		Short: "Summarise gene annotations in GFF3 files",
		Long: `vibe-gff reads GFF3 gene annotation, builds the gene, transcript and exon
hierarchy, and writes per-gene summaries and genome coverage statistics to
DuckDB, SQLite or tab-delimited output.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cfgFile)
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ~/.vibe-gff.yaml)")
	root.PersistentFlags().BoolP("verbose", "v", false, "Log debug messages")
	root.PersistentFlags().BoolP("quiet", "q", false, "Only print errors")
	viper.BindPFlag("log.verbose", root.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("log.quiet", root.PersistentFlags().Lookup("quiet"))

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	root.AddCommand(newSummariseCmd())
	root.AddCommand(newLoadCmd())
	root.AddCommand(newRegionsCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newVersionCmd())

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "vibe-gff version %s (%s) built %s\n", version, commit, date)
		},
	}
}

// newLogger builds the console logger. Level comes from log.level, raised
// to debug by --verbose and lowered to error by --quiet.
func newLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		return nil, errors.WithHint(errors.Wrap(err, "parse log.level"),
			"use one of debug, info, warn, error")
	}
	switch {
	case viper.GetBool("log.verbose"):
		level = zapcore.DebugLevel
	case viper.GetBool("log.quiet"):
		level = zapcore.ErrorLevel
		pterm.DisableOutput()
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true
	return cfg.Build()
}
