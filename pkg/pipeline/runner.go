// Package pipeline runs a merge job end to end: open the files of a
// [config.Job], merge them, and release every file again.
//
// The CLI builds a [Runner] once and executes one job per invocation:
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, job)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Stats.Records)
//
// [config.Job]: github.com/matzehuels/ratiomerge/pkg/config.Job
package pipeline

import (
	"context"
	stderrors "errors"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ratiomerge/pkg/config"
	pkgio "github.com/matzehuels/ratiomerge/pkg/io"
	"github.com/matzehuels/ratiomerge/pkg/merge"
)

// Runner executes merge jobs against the filesystem.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Result describes a finished job.
type Result struct {
	// Outputs holds the output paths in stream order.
	Outputs []string

	// Stats holds the merge statistics. It is also set when Execute fails
	// after the merge started, describing the records written so far.
	Stats *merge.Stats
}

// Execute runs job. Inputs are opened before any output is created, so a
// missing input leaves existing outputs untouched. Outputs are flushed and
// closed on every path, including failures and cancellation.
func (r *Runner) Execute(ctx context.Context, job *config.Job) (res *Result, err error) {
	if err := job.Validate(); err != nil {
		return nil, err
	}
	res = &Result{Outputs: job.Outputs()}

	readers := make([]*pkgio.Reader, 0, len(job.Streams))
	defer func() {
		for _, rd := range readers {
			_ = rd.Close()
		}
	}()
	for _, p := range job.Streams {
		rd, err := pkgio.OpenInput(p.Input)
		if err != nil {
			return res, err
		}
		readers = append(readers, rd)
	}

	writers := make([]*pkgio.Writer, 0, len(job.Streams))
	defer func() {
		for _, w := range writers {
			if cerr := w.Close(); cerr != nil {
				err = stderrors.Join(err, cerr)
			}
		}
	}()
	for _, p := range job.Streams {
		w, err := pkgio.CreateOutput(p.Output)
		if err != nil {
			return res, err
		}
		writers = append(writers, w)
	}

	streams := make([]merge.Stream, len(job.Streams))
	for i, p := range job.Streams {
		streams[i] = merge.Stream{Name: p.Input, Source: readers[i], Sink: writers[i]}
		r.Logger.Debug("opened stream", "index", i, "input", p.Input, "output", p.Output)
	}

	m, err := merge.New(streams, merge.Options{Strict: job.Strict, Logger: r.Logger})
	if err != nil {
		return res, err
	}
	res.Stats, err = m.Run(ctx)
	return res, err
}
