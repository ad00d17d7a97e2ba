package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ratiomerge/pkg/config"
	"github.com/matzehuels/ratiomerge/pkg/observability"
	"github.com/matzehuels/ratiomerge/pkg/pipeline"
)

// runMerge is the RunE of the root command.
func (c *CLI) runMerge(cmd *cobra.Command, args []string) error {
	job, err := c.loadJob(args)
	if err != nil {
		return err
	}
	if c.strict {
		job.Strict = true
	}

	logger := runLogger(c.Logger)
	observability.SetMergeHooks(&logHooks{logger: logger})

	logger.Debug("starting merge", "streams", len(job.Streams), "strict", job.Strict)
	prog := newProgress(logger)

	res, err := pipeline.NewRunner(logger).Execute(cmd.Context(), job)
	if err != nil {
		return err
	}

	prog.done("merge complete", "records", res.Stats.Records, "skipped", res.Stats.Skipped)
	c.printSummary(res)
	return nil
}

// loadJob builds the job from --config or from positional arguments.
func (c *CLI) loadJob(args []string) (*config.Job, error) {
	if c.configPath != "" {
		return config.Load(c.configPath)
	}
	return config.FromArgs(args)
}

// printSummary writes the per-output record counts and the final baseline.
func (c *CLI) printSummary(res *pipeline.Result) {
	stats := res.Stats
	printSuccess(c.out, "Merged %d records from %d streams", stats.Records, len(res.Outputs))
	for i, path := range res.Outputs {
		printFile(c.out, path, stats.Streams[i].Written)
	}
	if stats.Skipped > 0 {
		printWarning(c.out, "Skipped %d malformed lines", stats.Skipped)
	}
	printKeyValue(c.out, "baseline", fmt.Sprintf("%f", stats.FinalCenter))
}
