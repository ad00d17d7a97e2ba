package merge

import "math"

// Point is one (x, y) record read from an input stream.
type Point struct {
	X float64
	Y float64
}

// Head is the buffered record of a stream. A head is either live, holding
// the next unconsumed point, or exhausted. The zero Head is exhausted.
type Head struct {
	point Point
	live  bool
}

// Exhausted is the head of a stream that has no records left.
var Exhausted = Head{}

// Live returns a head holding p.
func Live(p Point) Head {
	return Head{point: p, live: true}
}

// IsLive reports whether the head holds a point.
func (h Head) IsLive() bool { return h.live }

// Point returns the buffered point and whether the head is live.
func (h Head) Point() (Point, bool) {
	return h.point, h.live
}

// SafeLog returns the natural logarithm of v clamped at 1: every v <= 1,
// including negative values, yields 0.
func SafeLog(v float64) float64 {
	return math.Log(math.Max(v, 1))
}
