// Package cli implements the ratiomerge command-line interface.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ratiomerge/pkg/buildinfo"
	"github.com/matzehuels/ratiomerge/pkg/errors"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// usageLine is the synopsis shown in usage and help output.
const usageLine = "ratiomerge in_1 [in_2 ...] out_1 [out_2 ...]"

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for the command.
type CLI struct {
	Logger *log.Logger

	// out receives summaries and usage text.
	out io.Writer

	strict     bool
	configPath string
}

// New creates a CLI that writes results to out and logs to logOut.
func New(out, logOut io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(logOut, level),
		out:    out,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command. The root command is the
// merge itself; it has no subcommands because every positional argument
// is a path.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   usageLine,
		Short: "Merge x/y streams onto a shared logarithmic baseline",
		Long: `ratiomerge reads several time-ordered x/y data files and writes one output
file per input. Records are consumed in global x order across all inputs;
each output line holds the original x and log(y) minus a shared baseline
that only ever rises.

The first half of the arguments are input files, the second half are the
output files they are written to, paired in order. At least one pair is
required: running without arguments prints this usage and exits 1.`,
		Example: `  ratiomerge ans-1.dat ans-2.dat ans-1.norm ans-2.norm
  ratiomerge --config job.toml`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          c.checkArgs,
		RunE:          c.runMerge,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.out)
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.Wrap(errors.ErrCodeInvalidArgs, err, "invalid flags")
	})

	root.Flags().BoolVar(&c.strict, "strict", false, "fail on the first malformed input line instead of skipping it")
	root.Flags().StringVarP(&c.configPath, "config", "c", "", "read input/output pairs from a TOML job file")

	return root
}

// checkArgs rejects paths given together with --config. The shape of the
// positional arguments is checked by config.FromArgs.
func (c *CLI) checkArgs(cmd *cobra.Command, args []string) error {
	if c.configPath != "" && len(args) > 0 {
		return errors.New(errors.ErrCodeInvalidArgs, "paths cannot be combined with --config")
	}
	return nil
}

// PrintUsage writes the usage text of root to the CLI's output.
func (c *CLI) PrintUsage(root *cobra.Command) {
	_, _ = io.WriteString(c.out, root.UsageString())
}
