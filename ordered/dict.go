// Package ordered implements an insertion-ordered dictionary.
//
// Every operation returns a new Dict; the receiver is never modified.
// Lookups of absent keys return false (or -1 for IndexOf) instead of
// failing, and updates of absent keys are no-ops.
package ordered

// Dict is a keyed mapping which remembers the order of its keys.
//
// Order lists every key of All exactly once. The JSON encoding of a Dict,
// {"order": [...], "all": {...}}, is the interchange form of documents and
// paragraphs.
type Dict[K comparable, V any] struct {
	Order []K     `json:"order"`
	All   map[K]V `json:"all"`
}

// Entry is a single key/value pair of a Dict.
type Entry[K comparable, V any] struct {
	Key   K `json:"key"`
	Value V `json:"value"`
}

// newDict allocates a dictionary with room for n entries.
func newDict[K comparable, V any](n int) Dict[K, V] {
	return Dict[K, V]{
		Order: make([]K, 0, n),
		All:   make(map[K]V, n),
	}
}

// Empty returns a dictionary with no entries.
func Empty[K comparable, V any]() Dict[K, V] {
	return newDict[K, V](0)
}

// FromArray builds a dictionary from entries, in order. A key appearing more
// than once keeps the last value, at the position of its last occurrence.
func FromArray[K comparable, V any](entries []Entry[K, V]) Dict[K, V] {
	d := newDict[K, V](len(entries))
	for _, e := range entries {
		if _, ok := d.All[e.Key]; ok {
			d.Order = removeKey(d.Order, e.Key)
		}
		d.Order = append(d.Order, e.Key)
		d.All[e.Key] = e.Value
	}
	return d
}

// Merge appends the entries of d2 after those of d1. Keys of d2 that are
// already present in d1 overwrite them.
func Merge[K comparable, V any](d1, d2 Dict[K, V]) Dict[K, V] {
	entries := make([]Entry[K, V], 0, d1.Count()+d2.Count())
	entries = append(entries, d1.ToList()...)
	entries = append(entries, d2.ToList()...)
	return FromArray(entries)
}

func (d Dict[K, V]) clone() Dict[K, V] {
	out := newDict[K, V](len(d.Order) + 1)
	out.Order = append(out.Order, d.Order...)
	for k, v := range d.All {
		out.All[k] = v
	}
	return out
}

func removeKey[K comparable](order []K, key K) []K {
	out := make([]K, 0, len(order))
	for _, k := range order {
		if k != key {
			out = append(out, k)
		}
	}
	return out
}

// Count returns the number of entries.
func (d Dict[K, V]) Count() int {
	return len(d.Order)
}

// Contains reports whether key is present.
func (d Dict[K, V]) Contains(key K) bool {
	_, ok := d.All[key]
	return ok
}

// ContainsIndex reports whether index addresses an entry.
func (d Dict[K, V]) ContainsIndex(index int) bool {
	return index >= 0 && index < d.Count()
}

// Insert places key at index, shifting later entries back. An index of -1
// (or any index past the end) appends. If key is already present it is
// moved; index is interpreted after its removal.
func (d Dict[K, V]) Insert(key K, value V, index int) Dict[K, V] {
	out := d.clone()
	if _, ok := out.All[key]; ok {
		out.Order = removeKey(out.Order, key)
	}
	out.All[key] = value

	if index < 0 || index > len(out.Order) {
		out.Order = append(out.Order, key)
		return out
	}
	order := make([]K, 0, len(out.Order)+1)
	order = append(order, out.Order[:index]...)
	order = append(order, key)
	order = append(order, out.Order[index:]...)
	out.Order = order
	return out
}

// Push appends key to the end of the dictionary.
func (d Dict[K, V]) Push(key K, value V) Dict[K, V] {
	return d.Insert(key, value, -1)
}

// Get returns the value stored under key.
func (d Dict[K, V]) Get(key K) (V, bool) {
	v, ok := d.All[key]
	return v, ok
}

// Nth returns the value at index.
func (d Dict[K, V]) Nth(index int) (V, bool) {
	key, ok := d.KeyAtIndex(index)
	if !ok {
		var zero V
		return zero, false
	}
	return d.Get(key)
}

// Set replaces the value under key. Absent keys are left absent.
func (d Dict[K, V]) Set(key K, value V) Dict[K, V] {
	if !d.Contains(key) {
		return d
	}
	out := d.clone()
	out.All[key] = value
	return out
}

// Update replaces the value under key with fn applied to it.
func (d Dict[K, V]) Update(key K, fn func(V) V) Dict[K, V] {
	v, ok := d.Get(key)
	if !ok {
		return d
	}
	return d.Set(key, fn(v))
}

// Remove drops key and its value.
func (d Dict[K, V]) Remove(key K) Dict[K, V] {
	if !d.Contains(key) {
		return d
	}
	out := d.clone()
	out.Order = removeKey(out.Order, key)
	delete(out.All, key)
	return out
}

// IndexOf returns the position of key, or -1 if key is absent.
func (d Dict[K, V]) IndexOf(key K) int {
	for i, k := range d.Order {
		if k == key {
			return i
		}
	}
	return -1
}

// KeyAtIndex returns the key at index.
func (d Dict[K, V]) KeyAtIndex(index int) (K, bool) {
	if !d.ContainsIndex(index) {
		var zero K
		return zero, false
	}
	return d.Order[index], true
}

// Keys returns a copy of the key order.
func (d Dict[K, V]) Keys() []K {
	return append([]K{}, d.Order...)
}

// Values returns the values in key order.
func (d Dict[K, V]) Values() []V {
	out := make([]V, 0, len(d.Order))
	for _, k := range d.Order {
		out = append(out, d.All[k])
	}
	return out
}

// ToList flattens the dictionary into its entries, in order.
func (d Dict[K, V]) ToList() []Entry[K, V] {
	out := make([]Entry[K, V], 0, len(d.Order))
	for _, k := range d.Order {
		out = append(out, Entry[K, V]{Key: k, Value: d.All[k]})
	}
	return out
}

// Slice copies the entries in [startIndex, endIndex) into a new dictionary.
// Indices are clamped to the dictionary bounds.
func (d Dict[K, V]) Slice(startIndex, endIndex int) Dict[K, V] {
	if startIndex < 0 {
		startIndex = 0
	}
	if startIndex > d.Count() {
		startIndex = d.Count()
	}
	if endIndex > d.Count() {
		endIndex = d.Count()
	}
	if endIndex < startIndex {
		endIndex = startIndex
	}
	out := newDict[K, V](endIndex - startIndex)
	for _, k := range d.Order[startIndex:endIndex] {
		out.Order = append(out.Order, k)
		out.All[k] = d.All[k]
	}
	return out
}

// MapValues applies fn to every value.
func (d Dict[K, V]) MapValues(fn func(V) V) Dict[K, V] {
	out := newDict[K, V](d.Count())
	for _, k := range d.Order {
		out.Order = append(out.Order, k)
		out.All[k] = fn(d.All[k])
	}
	return out
}

// Filter keeps the entries for which keep returns true.
func (d Dict[K, V]) Filter(keep func(K, V) bool) Dict[K, V] {
	out := newDict[K, V](d.Count())
	for _, k := range d.Order {
		if keep(k, d.All[k]) {
			out.Order = append(out.Order, k)
			out.All[k] = d.All[k]
		}
	}
	return out
}

// MergeElements replaces the count entries starting at startIndex with the
// single entry returned by merge.
//
//	d := FromArray([]Entry[string, int]{{"a", 1}, {"b", 2}, {"c", 3}})
//	d.MergeElements(1, 2, func(es []Entry[string, int]) Entry[string, int] {
//		return Entry[string, int]{Key: "d", Value: es[0].Value + es[1].Value}
//	})
//	// a:1, d:5
func (d Dict[K, V]) MergeElements(startIndex, count int, merge func([]Entry[K, V]) Entry[K, V]) Dict[K, V] {
	if count <= 0 || !d.ContainsIndex(startIndex) {
		return d
	}
	merged := merge(d.Slice(startIndex, startIndex+count).ToList())

	out := d.Slice(0, startIndex)
	rest := d.Slice(startIndex+count, d.Count())
	out = out.Push(merged.Key, merged.Value)
	return Merge(out, rest)
}
