package merge

import "math"

// Emission is the outcome of one merge step: the record to write, the
// stream it belongs to, and the center it was normalized against.
type Emission struct {
	// Index is the stream whose head is consumed.
	Index int

	// Point is the consumed record.
	Point Point

	// DY is SafeLog(Point.Y) - Center.
	DY float64

	// Center is the baseline for this step. It becomes the old center
	// of the next step.
	Center float64
}

// Center returns the baseline for a step given the y range of the live
// heads and the previous baseline. The result is never below oldCenter.
func Center(minY, maxY, oldCenter float64) float64 {
	midpoint := (SafeLog(minY) + SafeLog(maxY)) / 2
	return math.Max(oldCenter, midpoint)
}

// Step computes the next emission from the frontier and the previous
// center. It returns false when every stream is exhausted. Step does not
// modify f.
func Step(f *Frontier, oldCenter float64) (Emission, bool) {
	minY, maxY, ok := f.Range()
	if !ok {
		return Emission{}, false
	}
	center := Center(minY, maxY, oldCenter)

	idx, ok := f.MinX()
	if !ok {
		return Emission{}, false
	}
	p, _ := f.Head(idx).Point()

	return Emission{
		Index:  idx,
		Point:  p,
		DY:     SafeLog(p.Y) - center,
		Center: center,
	}, true
}
