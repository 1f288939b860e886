package variantset

import (
	"fmt"
	"reflect"
	"strings"
)

// Set holds at most one value of the union type T per variant tag V.
// It behaves like a hash set whose membership is decided by variant
// alone, while still giving access to the payload stored under each
// variant. A Set is not safe for concurrent use; callers needing
// shared access must synchronize externally.
type Set[T Value[V], V Variant] struct {
	data *table[T, V]
}

// New creates an empty set with a default capacity.
func New[T Value[V], V Variant]() *Set[T, V] {
	return &Set[T, V]{data: newTable[T, V](defaultBuckets)}
}

// WithCapacity creates an empty set able to hold at least n values
// without growing. n may exceed the number of variants of T.
func WithCapacity[T Value[V], V Variant](n int) *Set[T, V] {
	size, ok := bucketsFor(n)
	if !ok {
		size = defaultBuckets
	}
	return &Set[T, V]{data: newTable[T, V](size)}
}

// Of builds a set from the given values. Values sharing a variant are
// resolved left to right, the last one wins.
func Of[T Value[V], V Variant](values ...T) *Set[T, V] {
	s := WithCapacity[T, V](len(values))
	s.Extend(values...)
	return s
}

// Insert stores value if no value exists for its variant and reports
// whether it was stored. When the variant is already occupied the set
// is left unchanged and the argument is discarded, even if the stored
// payload differs.
func (s *Set[T, V]) Insert(value T) bool {
	return s.data.insert(value.Variant(), value)
}

// Put stores value unconditionally. The value previously held for the
// same variant is returned, with replaced reporting whether one existed.
func (s *Set[T, V]) Put(value T) (prev T, replaced bool) {
	return s.data.put(value.Variant(), value)
}

// GetOrInsert returns the value stored for def's variant, inserting def
// first when the variant is absent.
func (s *Set[T, V]) GetOrInsert(def T) T {
	if e := s.data.lookup(def.Variant()); e != nil {
		return e.value
	}
	s.data.add(def.Variant(), def)
	return def
}

// Contains reports whether a value is stored for the tag.
func (s *Set[T, V]) Contains(tag V) bool {
	return s.data.lookup(tag) != nil
}

// ContainsExact reports whether the value stored for value's variant
// equals value, payload included. A variant match alone is not enough.
func (s *Set[T, V]) ContainsExact(value T) bool {
	e := s.data.lookup(value.Variant())
	return e != nil && valuesEqual(e.value, value)
}

// Get returns the value stored for the tag, if any.
func (s *Set[T, V]) Get(tag V) (T, bool) {
	if e := s.data.lookup(tag); e != nil {
		return e.value, true
	}
	var zero T
	return zero, false
}

// Remove deletes and returns the value stored for the tag, if any.
func (s *Set[T, V]) Remove(tag V) (T, bool) {
	return s.data.remove(tag)
}

// Take is Remove under the name used by set-like containers.
func (s *Set[T, V]) Take(tag V) (T, bool) {
	return s.data.remove(tag)
}

// RemoveExact deletes the value stored for value's variant only when it
// equals value, payload included. Otherwise the set is left unchanged
// and ok is false, even if a different payload occupies the variant.
func (s *Set[T, V]) RemoveExact(value T) (removed T, ok bool) {
	e := s.data.lookup(value.Variant())
	if e == nil || !valuesEqual(e.value, value) {
		var zero T
		return zero, false
	}
	return s.data.remove(e.tag)
}

// Clear removes all values, keeping the allocated capacity for reuse.
func (s *Set[T, V]) Clear() {
	s.data.clear()
}

// Drain returns a one-shot iterator that removes each value as it is
// produced. Once exhausted the set is empty; values not yet produced
// are still in the set.
func (s *Set[T, V]) Drain() *Drainer[T, V] {
	return &Drainer[T, V]{t: s.data}
}

// Iter returns a read-only iterator over the stored values in
// unspecified order. It is valid only while the set is not mutated.
func (s *Set[T, V]) Iter() *Iterator[T, V] {
	return &Iterator[T, V]{t: s.data}
}

// Len returns the number of stored values.
func (s *Set[T, V]) Len() int {
	return s.data.count
}

// IsEmpty reports whether the set holds no values.
func (s *Set[T, V]) IsEmpty() bool {
	return s.data.count == 0
}

// Capacity returns the number of values the set holds without growing.
func (s *Set[T, V]) Capacity() int {
	return s.data.capacity()
}

// Reserve grows the set so that at least additional more values fit
// without reallocation. It panics when the resulting capacity cannot
// be represented; use TryReserve to handle that case.
func (s *Set[T, V]) Reserve(additional int) {
	if err := s.data.reserve(additional); err != nil {
		panic(err)
	}
}

// TryReserve is Reserve reporting capacity overflow as
// ErrCapacityOverflow instead of panicking.
func (s *Set[T, V]) TryReserve(additional int) error {
	return s.data.reserve(additional)
}

// ShrinkTo reduces the capacity towards n, best effort, never below the
// current length. A no-op when the capacity is already at most n.
func (s *Set[T, V]) ShrinkTo(n int) {
	if n < 0 {
		n = 0
	}
	s.data.shrink(n)
}

// ShrinkToFit reduces the capacity as much as the current length allows.
func (s *Set[T, V]) ShrinkToFit() {
	s.data.shrink(0)
}

// Extend stores every value in turn with Put semantics: later values
// replace earlier ones sharing a variant.
func (s *Set[T, V]) Extend(values ...T) {
	for _, v := range values {
		s.data.put(v.Variant(), v)
	}
}

// Equal reports whether both sets hold equal values for the same
// variants, regardless of internal order.
func (s *Set[T, V]) Equal(other *Set[T, V]) bool {
	if s.data.count != other.data.count {
		return false
	}
	for _, head := range s.data.buckets {
		for e := head; e != nil; e = e.next {
			o := other.data.lookup(e.tag)
			if o == nil || !valuesEqual(o.value, e.value) {
				return false
			}
		}
	}
	return true
}

// Clone returns a copy of the set. Values are copied by assignment, so
// payloads behind pointers remain shared.
func (s *Set[T, V]) Clone() *Set[T, V] {
	c := &Set[T, V]{data: newTable[T, V](len(s.data.buckets))}
	for _, head := range s.data.buckets {
		for e := head; e != nil; e = e.next {
			c.data.add(e.tag, e.value)
		}
	}
	return c
}

// String formats the stored tag/value pairs in unspecified order.
func (s *Set[T, V]) String() string {
	var b strings.Builder
	b.WriteString("VariantSet{")
	first := true
	for _, head := range s.data.buckets {
		for e := head; e != nil; e = e.next {
			if !first {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%v: %v", e.tag, e.value)
			first = false
		}
	}
	b.WriteByte('}')
	return b.String()
}

// valuesEqual prefers the value type's own Equal method and falls back
// to reflect.DeepEqual.
func valuesEqual[T any](a, b T) bool {
	if eq, ok := any(a).(interface{ Equal(T) bool }); ok {
		return eq.Equal(b)
	}
	return reflect.DeepEqual(a, b)
}
