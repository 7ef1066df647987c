// Package osd implements the ordered subdivisible dictionary: an ordered
// dictionary whose values are themselves ordered collections, addressed down
// to a sub-element either by index (Position) or by key (Pointer).
//
// A Position is only meaningful against the dictionary it was computed from.
// A Pointer survives edits that do not touch its element.
package osd

import (
	"sort"

	"github.com/burntcarrot/composer/ordered"
)

// Traits describes how a value can be subdivided.
type Traits[V any] struct {
	// Count returns the number of sub-elements of v.
	Count func(v V) int

	// ContainsIndex reports whether i is a valid offset into v.
	ContainsIndex func(i int, v V) bool

	// Slice returns the sub-elements of v in [start, end).
	Slice func(start, end int, v V) V

	// RemoveSlice returns v without the sub-elements in [start, end).
	RemoveSlice func(start, end int, v V) V
}

// Position addresses a sub-element by element index and offset.
type Position struct {
	Index  int `json:"index"`
	Offset int `json:"offset"`
}

// Pointer addresses a sub-element by element key and offset.
type Pointer[K comparable] struct {
	Key    K   `json:"key"`
	Offset int `json:"offset"`
}

// Compare orders positions by index, then offset. It returns -1, 0 or 1.
func Compare(a, b Position) int {
	switch {
	case a.Index < b.Index:
		return -1
	case a.Index > b.Index:
		return 1
	case a.Offset < b.Offset:
		return -1
	case a.Offset > b.Offset:
		return 1
	}
	return 0
}

// SortPositionsAscending returns a stably sorted copy of positions.
func SortPositionsAscending(positions []Position) []Position {
	out := append([]Position{}, positions...)
	sort.SliceStable(out, func(i, j int) bool {
		return Compare(out[i], out[j]) < 0
	})
	return out
}

// Dictionary bundles the operations of an ordered subdivisible dictionary
// over values described by its Traits.
type Dictionary[K comparable, V any] struct {
	traits Traits[V]
}

// New returns the operations for dictionaries of values described by t.
func New[K comparable, V any](t Traits[V]) Dictionary[K, V] {
	return Dictionary[K, V]{traits: t}
}

// TotalCount returns the sum of the counts of every element.
func (o Dictionary[K, V]) TotalCount(d ordered.Dict[K, V]) int {
	total := 0
	for _, v := range d.Values() {
		total += o.traits.Count(v)
	}
	return total
}

func (o Dictionary[K, V]) countAt(index int, d ordered.Dict[K, V]) (int, bool) {
	v, ok := d.Nth(index)
	if !ok {
		return 0, false
	}
	return o.traits.Count(v), true
}

// PositionFromPointer resolves ptr to a Position. It fails if ptr's key is
// not in d.
func (o Dictionary[K, V]) PositionFromPointer(ptr Pointer[K], d ordered.Dict[K, V]) (Position, bool) {
	index := d.IndexOf(ptr.Key)
	if index == -1 {
		return Position{}, false
	}
	return Position{Index: index, Offset: ptr.Offset}, true
}

// PointerFromPosition resolves pos to a Pointer. It fails if pos's index is
// out of range.
func (o Dictionary[K, V]) PointerFromPosition(pos Position, d ordered.Dict[K, V]) (Pointer[K], bool) {
	key, ok := d.KeyAtIndex(pos.Index)
	if !ok {
		return Pointer[K]{}, false
	}
	return Pointer[K]{Key: key, Offset: pos.Offset}, true
}

// ContainsPosition reports whether pos addresses an existing element and a
// valid offset within it.
func (o Dictionary[K, V]) ContainsPosition(pos Position, d ordered.Dict[K, V]) bool {
	v, ok := d.Nth(pos.Index)
	if !ok {
		return false
	}
	return o.traits.ContainsIndex(pos.Offset, v)
}

// ContainsPointer reports whether ptr addresses an existing element and a
// valid offset within it.
func (o Dictionary[K, V]) ContainsPointer(ptr Pointer[K], d ordered.Dict[K, V]) bool {
	pos, ok := o.PositionFromPointer(ptr, d)
	if !ok {
		return false
	}
	return o.ContainsPosition(pos, d)
}

// PositionFromAbsoluteOffset resolves an offset counted from the start of the
// whole dictionary. An offset on the boundary between two elements belongs to
// the following element, except the offset equal to the total count, which
// resolves to the end of the last element. Negative offsets and offsets past
// the end fail.
func (o Dictionary[K, V]) PositionFromAbsoluteOffset(offset int, d ordered.Dict[K, V]) (Position, bool) {
	if offset < 0 || d.Count() == 0 {
		return Position{}, false
	}

	acc := 0
	for i, v := range d.Values() {
		n := o.traits.Count(v)
		if offset < acc+n {
			return Position{Index: i, Offset: offset - acc}, true
		}
		acc += n
	}

	if offset == acc {
		last := d.Count() - 1
		n, _ := o.countAt(last, d)
		return Position{Index: last, Offset: n}, true
	}
	return Position{}, false
}

// AbsoluteOffset is the inverse of PositionFromAbsoluteOffset.
func (o Dictionary[K, V]) AbsoluteOffset(pos Position, d ordered.Dict[K, V]) (int, bool) {
	if !d.ContainsIndex(pos.Index) {
		return 0, false
	}
	acc := 0
	for _, v := range d.Values()[:pos.Index] {
		acc += o.traits.Count(v)
	}
	return acc + pos.Offset, true
}

// StartPosition returns the position before the first sub-element.
func (o Dictionary[K, V]) StartPosition(d ordered.Dict[K, V]) (Position, bool) {
	if d.Count() == 0 {
		return Position{}, false
	}
	return Position{Index: 0, Offset: 0}, true
}

// EndPosition returns the position after the last sub-element.
func (o Dictionary[K, V]) EndPosition(d ordered.Dict[K, V]) (Position, bool) {
	last := d.Count() - 1
	n, ok := o.countAt(last, d)
	if !ok {
		return Position{}, false
	}
	return Position{Index: last, Offset: n}, true
}

// IncrementPositionByOffset moves pos by delta sub-elements. Crossing the
// boundary between two elements takes one step, so the end of one element and
// the start of the next are distinct positions. Moving before the start of
// the first element fails. Moving past the end of the last element is not
// checked: the offset is allowed to exceed the element's count, so several
// increments can be composed before the result is validated with
// ContainsPosition.
func (o Dictionary[K, V]) IncrementPositionByOffset(pos Position, delta int, d ordered.Dict[K, V]) (Position, bool) {
	n, ok := o.countAt(pos.Index, d)
	if !ok {
		return Position{}, false
	}

	switch {
	case delta == 0:
		return pos, true

	case delta > 0:
		remaining := n - pos.Offset
		if delta <= remaining || pos.Index == d.Count()-1 {
			return Position{Index: pos.Index, Offset: pos.Offset + delta}, true
		}
		return o.IncrementPositionByOffset(
			Position{Index: pos.Index + 1, Offset: 0},
			delta-remaining-1,
			d)

	default:
		if -delta <= pos.Offset {
			return Position{Index: pos.Index, Offset: pos.Offset + delta}, true
		}
		if pos.Index == 0 {
			return Position{}, false
		}
		prev, _ := o.countAt(pos.Index-1, d)
		return o.IncrementPositionByOffset(
			Position{Index: pos.Index - 1, Offset: prev},
			delta+pos.Offset+1,
			d)
	}
}

// NextPosition moves pos forward by one.
func (o Dictionary[K, V]) NextPosition(pos Position, d ordered.Dict[K, V]) (Position, bool) {
	return o.IncrementPositionByOffset(pos, 1, d)
}

// PreviousPosition moves pos back by one.
func (o Dictionary[K, V]) PreviousPosition(pos Position, d ordered.Dict[K, V]) (Position, bool) {
	return o.IncrementPositionByOffset(pos, -1, d)
}

// SplitElementInPlace replaces the element at pos.Index with its sub-elements
// before pos.Offset under beforeKey, followed by the remaining sub-elements
// under afterKey. If pos.Index is out of range, d is returned unchanged.
func (o Dictionary[K, V]) SplitElementInPlace(pos Position, beforeKey, afterKey K, d ordered.Dict[K, V]) ordered.Dict[K, V] {
	key, ok := d.KeyAtIndex(pos.Index)
	if !ok {
		return d
	}
	v, _ := d.Get(key)
	before := o.traits.Slice(0, pos.Offset, v)
	after := o.traits.Slice(pos.Offset, o.traits.Count(v), v)

	return d.
		Remove(key).
		Insert(beforeKey, before, pos.Index).
		Insert(afterKey, after, pos.Index+1)
}

// RemoveSliceAtSubelement removes the sub-elements between start and end.
//
// Within a single element the element keeps its key. Across elements, every
// element strictly between start and end is dropped and the two boundary
// elements are trimmed in place; they are not merged with each other. If
// either index is out of range, d is returned unchanged.
func (o Dictionary[K, V]) RemoveSliceAtSubelement(start, end Position, d ordered.Dict[K, V]) ordered.Dict[K, V] {
	if Compare(start, end) > 0 {
		start, end = end, start
	}
	startKey, ok := d.KeyAtIndex(start.Index)
	if !ok {
		return d
	}
	endKey, ok := d.KeyAtIndex(end.Index)
	if !ok {
		return d
	}
	startValue, _ := d.Get(startKey)

	if start.Index == end.Index {
		return d.Set(startKey, o.traits.RemoveSlice(start.Offset, end.Offset, startValue))
	}

	endValue, _ := d.Get(endKey)
	out := ordered.Merge(
		d.Slice(0, start.Index+1),
		d.Slice(end.Index, d.Count()))

	return out.
		Set(startKey, o.traits.Slice(0, start.Offset, startValue)).
		Set(endKey, o.traits.Slice(end.Offset, o.traits.Count(endValue), endValue))
}

// SliceBySubelements returns the sub-elements between start and end,
// keeping the keys of the elements they come from.
func (o Dictionary[K, V]) SliceBySubelements(start, end Position, d ordered.Dict[K, V]) ordered.Dict[K, V] {
	if Compare(start, end) > 0 {
		start, end = end, start
	}
	if !d.ContainsIndex(start.Index) || !d.ContainsIndex(end.Index) {
		return ordered.Empty[K, V]()
	}

	out := d.Slice(start.Index, end.Index+1)
	end.Index -= start.Index
	last, _ := o.EndPosition(out)

	// Trimming the tail first leaves start's offset valid.
	out = o.RemoveSliceAtSubelement(end, last, out)
	return o.RemoveSliceAtSubelement(
		Position{Index: 0, Offset: 0},
		Position{Index: 0, Offset: start.Offset},
		out)
}

// SplitAtSubelement splits d into the sub-elements before pos and those
// after it. The element at pos.Index appears, trimmed, in both halves.
func (o Dictionary[K, V]) SplitAtSubelement(pos Position, d ordered.Dict[K, V]) (before, after ordered.Dict[K, V]) {
	first, ok := o.StartPosition(d)
	if !ok {
		return d, d
	}
	last, _ := o.EndPosition(d)
	return o.SliceBySubelements(first, pos, d), o.SliceBySubelements(pos, last, d)
}

// SortPointersAscending returns a stably sorted copy of pointers, in the
// order of the positions they resolve to in d. Pointers whose keys are not
// in d sort first.
func (o Dictionary[K, V]) SortPointersAscending(pointers []Pointer[K], d ordered.Dict[K, V]) []Pointer[K] {
	out := append([]Pointer[K]{}, pointers...)
	sort.SliceStable(out, func(i, j int) bool {
		a := Position{Index: d.IndexOf(out[i].Key), Offset: out[i].Offset}
		b := Position{Index: d.IndexOf(out[j].Key), Offset: out[j].Offset}
		return Compare(a, b) < 0
	})
	return out
}
