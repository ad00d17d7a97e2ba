package merge

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ratiomerge/pkg/errors"
	"github.com/matzehuels/ratiomerge/pkg/observability"
)

// Source yields the records of one input stream in order.
//
// Next returns io.EOF once the input is exhausted. A line that does not
// hold a record is reported as an INVALID_RECORD error; the merger may
// skip it and call Next again.
type Source interface {
	Next() (Point, error)
}

// Sink receives the normalized records of one output stream.
type Sink interface {
	Write(x, dy float64) error
}

// Stream pairs an input with its output.
type Stream struct {
	// Name identifies the stream in logs and statistics, usually the
	// input path.
	Name   string
	Source Source
	Sink   Sink
}

// Options configures a merge run.
type Options struct {
	// Strict makes a malformed input line fail the run instead of being
	// logged and skipped.
	Strict bool

	// Logger receives diagnostics. Defaults to log.Default().
	Logger *log.Logger
}

// StreamStats counts the records of one stream.
type StreamStats struct {
	Name    string
	Read    int // well-formed records read
	Written int // records written to the sink
	Skipped int // malformed lines skipped
}

// Stats summarizes a merge run.
type Stats struct {
	Streams     []StreamStats
	Records     int     // records written across all streams
	Skipped     int     // malformed lines skipped across all streams
	FinalCenter float64 // baseline after the last record
	Duration    time.Duration
}

// Merger runs the merge over a fixed set of streams.
//
// A Merger is single-use and not safe for concurrent use. It does not own
// the sources and sinks; the caller opens and closes them.
type Merger struct {
	streams  []Stream
	opts     Options
	frontier *Frontier
	stats    Stats
}

// New returns a merger over streams. At least one stream is required, and
// every stream needs a source and a sink.
func New(streams []Stream, opts Options) (*Merger, error) {
	if len(streams) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "at least one stream is required")
	}
	for i, s := range streams {
		if s.Source == nil || s.Sink == nil {
			return nil, errors.New(errors.ErrCodeInternal, "stream %d (%s) is missing a source or sink", i, s.Name)
		}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	m := &Merger{
		streams:  streams,
		opts:     opts,
		frontier: NewFrontier(len(streams)),
	}
	m.stats.Streams = make([]StreamStats, len(streams))
	for i, s := range streams {
		m.stats.Streams[i].Name = s.Name
	}
	return m, nil
}

// Run primes every stream and then emits records until all streams are
// exhausted. The returned stats describe the records processed so far,
// also when Run fails. Cancelling ctx stops the run between records.
func (m *Merger) Run(ctx context.Context) (*Stats, error) {
	hooks := observability.Merge()
	hooks.OnMergeStart(ctx, len(m.streams))

	start := time.Now()
	err := m.run(ctx)
	m.stats.Duration = time.Since(start)

	hooks.OnMergeComplete(ctx, m.stats.Records, m.stats.Duration, err)
	return &m.stats, err
}

func (m *Merger) run(ctx context.Context) error {
	for i := range m.streams {
		if err := m.fetch(ctx, i); err != nil {
			return err
		}
	}

	center := 0.0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		e, ok := Step(m.frontier, center)
		if !ok {
			break
		}
		if err := m.emit(ctx, e); err != nil {
			return err
		}
		if err := m.fetch(ctx, e.Index); err != nil {
			return err
		}
		center = e.Center
		m.stats.FinalCenter = center
	}
	return nil
}

func (m *Merger) emit(ctx context.Context, e Emission) error {
	s := m.streams[e.Index]
	if err := s.Sink.Write(e.Point.X, e.DY); err != nil {
		return err
	}
	m.stats.Streams[e.Index].Written++
	m.stats.Records++
	observability.Merge().OnEmit(ctx, e.Index, e.Point.X, e.DY, e.Center)
	return nil
}

// fetch reads the next record of stream i into the frontier, skipping
// malformed lines unless the run is strict.
func (m *Merger) fetch(ctx context.Context, i int) error {
	s := m.streams[i]
	st := &m.stats.Streams[i]
	for {
		p, err := s.Source.Next()
		switch {
		case err == nil:
			st.Read++
			m.frontier.Set(i, Live(p))
			return nil

		case err == io.EOF:
			m.frontier.Set(i, Exhausted)
			m.opts.Logger.Debug("stream exhausted", "stream", s.Name, "records", st.Read)
			observability.Merge().OnStreamExhausted(ctx, i, st.Read)
			return nil

		case errors.Is(err, errors.ErrCodeInvalidRecord) && !m.opts.Strict:
			st.Skipped++
			m.stats.Skipped++
			m.opts.Logger.Warn("skipping malformed line", "stream", s.Name, "err", errors.UserMessage(err))
			observability.Merge().OnMalformedRecord(ctx, i, err)

		default:
			return err
		}
	}
}
