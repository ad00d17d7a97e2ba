// Package merge implements the streaming log-ratio merge.
//
// # Overview
//
// A merge owns N paired streams. Each stream reads (x, y) records from a
// [Source] and writes (x, dy) records to its own [Sink]. The merge advances
// the streams in lock-step by always consuming the record with the globally
// smallest x, so every stream's output keeps its input's order while the
// normalization sees all streams interleaved on a common x axis.
//
// # Normalization
//
// Each record's y is mapped to a log scale with [SafeLog], which clamps its
// argument at 1 so that values at or below 1 (including negatives) map to 0.
// A shared center is recomputed before every emitted record:
//
//	midpoint = (SafeLog(minY) + SafeLog(maxY)) / 2
//	center   = max(oldCenter, midpoint)
//	dy       = SafeLog(y) - center
//
// where minY and maxY range over the heads of all streams that still have
// data. Because of the max, the center never decreases over a run.
//
// # Structure
//
// The buffered record of a stream is a [Head], which is either [Live] or
// [Exhausted]. The heads live in a [Frontier], which keeps them indexed by
// x and by y so that selection and range queries do not rescan every stream.
//
// [Step] is a pure function of the frontier and the previous center: it
// returns the [Emission] for the next record without changing anything.
// [Merger.Run] applies emissions to the sinks, advances the selected stream,
// and threads the center from one step to the next.
//
//	m, err := merge.New(streams, merge.Options{Logger: logger})
//	if err != nil {
//	    return err
//	}
//	stats, err := m.Run(ctx)
package merge
