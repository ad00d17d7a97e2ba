package merge

import (
	"bytes"
	"context"
	"io"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/ratiomerge/pkg/errors"
	"github.com/matzehuels/ratiomerge/pkg/observability"
)

// fakeSource yields its items in order: a Point is returned as a record,
// an error is returned as-is.
type fakeSource struct {
	items []any
	pos   int
}

func source(items ...any) *fakeSource { return &fakeSource{items: items} }

func (s *fakeSource) Next() (Point, error) {
	if s.pos >= len(s.items) {
		return Point{}, io.EOF
	}
	item := s.items[s.pos]
	s.pos++
	switch v := item.(type) {
	case Point:
		return v, nil
	case error:
		return Point{}, v
	}
	panic("unexpected item")
}

type record struct{ X, DY float64 }

type fakeSink struct {
	records []record
	err     error
}

func (s *fakeSink) Write(x, dy float64) error {
	if s.err != nil {
		return s.err
	}
	s.records = append(s.records, record{x, dy})
	return nil
}

func malformed(line int) error {
	return errors.Wrap(errors.ErrCodeInvalidRecord, &errors.RecordError{Line: line, Text: "7"}, "expected two fields, found 1")
}

func newTestMerger(t *testing.T, opts Options, sources ...Source) (*Merger, []*fakeSink) {
	t.Helper()
	sinks := make([]*fakeSink, len(sources))
	streams := make([]Stream, len(sources))
	for i, src := range sources {
		sinks[i] = &fakeSink{}
		streams[i] = Stream{Name: string(rune('a' + i)), Source: src, Sink: sinks[i]}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	m, err := New(streams, opts)
	require.NoError(t, err)
	return m, sinks
}

func TestNewRequiresStreams(t *testing.T) {
	_, err := New(nil, Options{})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))

	_, err = New([]Stream{{Name: "a", Source: source()}}, Options{})
	assert.True(t, errors.Is(err, errors.ErrCodeInternal))
}

func TestRunTwoStreamScenario(t *testing.T) {
	m, sinks := newTestMerger(t, Options{},
		source(Point{X: 1, Y: 10}),
		source(Point{X: 2, Y: 5}),
	)

	stats, err := m.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, sinks[0].records, 1)
	require.Len(t, sinks[1].records, 1)
	assert.Equal(t, 1.0, sinks[0].records[0].X)
	assert.InDelta(t, 0.346574, sinks[0].records[0].DY, 1e-6)
	assert.Equal(t, 2.0, sinks[1].records[0].X)
	assert.InDelta(t, -0.346574, sinks[1].records[0].DY, 1e-6)

	assert.Equal(t, 2, stats.Records)
	assert.InDelta(t, (math.Log(10)+math.Log(5))/2, stats.FinalCenter, 1e-12)
	assert.Equal(t, "a", stats.Streams[0].Name)
	assert.Equal(t, 1, stats.Streams[1].Written)
}

func TestRunEmptyInputs(t *testing.T) {
	m, sinks := newTestMerger(t, Options{}, source(), source())

	stats, err := m.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sinks[0].records)
	assert.Empty(t, sinks[1].records)
	assert.Equal(t, 0, stats.Records)
	assert.Equal(t, 0.0, stats.FinalCenter)
}

func TestRunKeepsStreamOrderAndCounts(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	inputs := make([][]Point, 4)
	sources := make([]Source, len(inputs))
	for i := range inputs {
		x := 0.0
		items := []any{}
		for j := 0; j < 50+rng.Intn(50); j++ {
			x += rng.Float64()
			p := Point{X: x, Y: rng.Float64() * 1000}
			inputs[i] = append(inputs[i], p)
			items = append(items, p)
		}
		sources[i] = source(items...)
	}

	m, sinks := newTestMerger(t, Options{}, sources...)
	stats, err := m.Run(context.Background())
	require.NoError(t, err)

	total := 0
	for i, in := range inputs {
		require.Len(t, sinks[i].records, len(in))
		for j, p := range in {
			assert.Equal(t, p.X, sinks[i].records[j].X)
		}
		assert.Equal(t, len(in), stats.Streams[i].Read)
		assert.Equal(t, len(in), stats.Streams[i].Written)
		total += len(in)
	}
	assert.Equal(t, total, stats.Records)
}

func TestRunSkipsMalformedLines(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)

	m, sinks := newTestMerger(t, Options{Logger: logger},
		source(malformed(1), Point{X: 1, Y: 3}),
	)

	stats, err := m.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, sinks[0].records, 1)
	assert.Equal(t, 1.0, sinks[0].records[0].X)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 1, stats.Streams[0].Skipped)
	assert.Contains(t, buf.String(), "skipping malformed line")
}

func TestRunStrictFailsOnMalformedLine(t *testing.T) {
	m, sinks := newTestMerger(t, Options{Strict: true},
		source(Point{X: 1, Y: 3}),
		source(Point{X: 0.5, Y: 3}, malformed(2)),
	)

	stats, err := m.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidRecord))
	assert.Equal(t, 1, stats.Records)
	assert.Len(t, sinks[1].records, 1)
	assert.Empty(t, sinks[0].records)
}

func TestRunPropagatesParseErrors(t *testing.T) {
	parseErr := errors.New(errors.ErrCodeParse, "x field %q is not a number", "abc")
	m, _ := newTestMerger(t, Options{}, source(parseErr))

	_, err := m.Run(context.Background())
	assert.True(t, errors.Is(err, errors.ErrCodeParse))
}

func TestRunPropagatesSinkErrors(t *testing.T) {
	m, sinks := newTestMerger(t, Options{}, source(Point{X: 1, Y: 1}))
	sinks[0].err = errors.New(errors.ErrCodeIO, "disk full")

	_, err := m.Run(context.Background())
	assert.True(t, errors.Is(err, errors.ErrCodeIO))
}

func TestRunStopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m, sinks := newTestMerger(t, Options{}, source(Point{X: 1, Y: 1}))
	_, err := m.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, sinks[0].records)
}

type countingHooks struct {
	observability.NoopMergeHooks
	started, emitted, malformed, exhausted int
	records                                int
	centers                                []float64
}

func (h *countingHooks) OnMergeStart(context.Context, int) { h.started++ }
func (h *countingHooks) OnEmit(_ context.Context, _ int, _, _, center float64) {
	h.emitted++
	h.centers = append(h.centers, center)
}
func (h *countingHooks) OnMalformedRecord(context.Context, int, error) { h.malformed++ }
func (h *countingHooks) OnStreamExhausted(context.Context, int, int)   { h.exhausted++ }
func (h *countingHooks) OnMergeComplete(_ context.Context, records int, _ time.Duration, _ error) {
	h.records = records
}

func TestRunReportsToHooks(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetMergeHooks(hooks)
	defer observability.Reset()

	m, _ := newTestMerger(t, Options{},
		source(Point{X: 1, Y: 2}, Point{X: 3, Y: 50}),
		source(malformed(1), Point{X: 2, Y: 400}),
	)
	_, err := m.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, hooks.started)
	assert.Equal(t, 3, hooks.emitted)
	assert.Equal(t, 1, hooks.malformed)
	assert.Equal(t, 2, hooks.exhausted)
	assert.Equal(t, 3, hooks.records)
	for i := 1; i < len(hooks.centers); i++ {
		assert.GreaterOrEqual(t, hooks.centers[i], hooks.centers[i-1])
	}
}
