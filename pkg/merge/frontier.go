package merge

import (
	"github.com/google/btree"
)

// btreeDegree is small because a frontier holds one entry per stream.
const btreeDegree = 4

// entry orders a live head by one coordinate, with the stream index
// breaking ties so that the lowest index wins.
type entry struct {
	value float64
	index int
}

func lessEntry(a, b entry) bool {
	if a.value != b.value {
		return a.value < b.value
	}
	return a.index < b.index
}

// Frontier holds the current head of every stream, addressable by stream
// index, together with ordered indexes over the live heads.
//
// Points stored in a frontier must not contain NaN, since NaN has no place
// in the x or y order.
//
// A Frontier is not safe for concurrent use.
type Frontier struct {
	heads []Head
	byX   *btree.BTreeG[entry]
	byY   *btree.BTreeG[entry]
}

// NewFrontier returns a frontier of n streams, all exhausted.
func NewFrontier(n int) *Frontier {
	return &Frontier{
		heads: make([]Head, n),
		byX:   btree.NewG(btreeDegree, lessEntry),
		byY:   btree.NewG(btreeDegree, lessEntry),
	}
}

// Len returns the number of streams, live or exhausted.
func (f *Frontier) Len() int { return len(f.heads) }

// Live returns the number of live streams.
func (f *Frontier) Live() int { return f.byX.Len() }

// Head returns the head of stream i.
func (f *Frontier) Head(i int) Head { return f.heads[i] }

// Set replaces the head of stream i.
func (f *Frontier) Set(i int, h Head) {
	if old, ok := f.heads[i].Point(); ok {
		f.byX.Delete(entry{value: old.X, index: i})
		f.byY.Delete(entry{value: old.Y, index: i})
	}
	f.heads[i] = h
	if p, ok := h.Point(); ok {
		f.byX.ReplaceOrInsert(entry{value: p.X, index: i})
		f.byY.ReplaceOrInsert(entry{value: p.Y, index: i})
	}
}

// Range returns the smallest and largest y over the live heads.
// ok is false when no head is live.
func (f *Frontier) Range() (minY, maxY float64, ok bool) {
	lo, ok := f.byY.Min()
	if !ok {
		return 0, 0, false
	}
	hi, _ := f.byY.Max()
	return lo.value, hi.value, true
}

// MinX returns the index of the live head with the smallest x. When several
// heads share that x, the lowest index is returned. ok is false when no
// head is live.
func (f *Frontier) MinX() (index int, ok bool) {
	e, ok := f.byX.Min()
	if !ok {
		return -1, false
	}
	return e.index, true
}
