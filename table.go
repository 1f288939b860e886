package variantset

import "math"

const (
	loadFactor     = 0.7
	defaultBuckets = 8
)

type entry[T Value[V], V Variant] struct {
	tag   V
	value T
	next  *entry[T, V]
}

// table is a chained-bucket hash table keyed by variant tag. The bucket
// index is the tag ordinal itself, taken modulo the bucket count.
type table[T Value[V], V Variant] struct {
	buckets []*entry[T, V]
	count   int
}

func newTable[T Value[V], V Variant](size int) *table[T, V] {
	return &table[T, V]{buckets: make([]*entry[T, V], size)}
}

// bucketsFor returns the bucket count needed to hold n entries below
// the load factor. The second result is false when the count would
// overflow int.
func bucketsFor(n int) (int, bool) {
	size := defaultBuckets
	for int(float64(size)*loadFactor) < n {
		if size > math.MaxInt/2 {
			return 0, false
		}
		size *= 2
	}
	return size, true
}

// capacity is the number of entries the table holds without growing.
func (t *table[T, V]) capacity() int {
	return int(float64(len(t.buckets)) * loadFactor)
}

func (t *table[T, V]) index(tag V) int {
	return tag.Ordinal() % len(t.buckets)
}

func (t *table[T, V]) lookup(tag V) *entry[T, V] {
	for e := t.buckets[t.index(tag)]; e != nil; e = e.next {
		if e.tag == tag {
			return e
		}
	}
	return nil
}

// add links a new entry for a tag that must not already be present,
// growing the table first when the load factor would be exceeded.
func (t *table[T, V]) add(tag V, value T) {
	if t.capacity() < t.count+1 {
		if size, ok := bucketsFor(t.count + 1); ok {
			t.rehash(size)
		}
	}
	i := t.index(tag)
	t.buckets[i] = &entry[T, V]{tag: tag, value: value, next: t.buckets[i]}
	t.count++
}

func (t *table[T, V]) insert(tag V, value T) bool {
	if t.lookup(tag) != nil {
		return false
	}
	t.add(tag, value)
	return true
}

func (t *table[T, V]) put(tag V, value T) (prev T, replaced bool) {
	if e := t.lookup(tag); e != nil {
		prev, e.value = e.value, value
		return prev, true
	}
	t.add(tag, value)
	return prev, false
}

func (t *table[T, V]) remove(tag V) (T, bool) {
	i := t.index(tag)
	var prev *entry[T, V]
	for e := t.buckets[i]; e != nil; e = e.next {
		if e.tag == tag {
			if prev == nil {
				t.buckets[i] = e.next
			} else {
				prev.next = e.next
			}
			t.count--
			return e.value, true
		}
		prev = e
	}
	var zero T
	return zero, false
}

// clear empties the table in place, keeping the bucket allocation.
func (t *table[T, V]) clear() {
	for i := range t.buckets {
		t.buckets[i] = nil
	}
	t.count = 0
}

// rehash relinks every entry into a bucket slice of the given size.
func (t *table[T, V]) rehash(size int) {
	old := t.buckets
	t.buckets = make([]*entry[T, V], size)
	for _, e := range old {
		for e != nil {
			next := e.next
			i := e.tag.Ordinal() % size
			e.next = t.buckets[i]
			t.buckets[i] = e
			e = next
		}
	}
}

func (t *table[T, V]) reserve(additional int) error {
	if additional <= 0 {
		return nil
	}
	need := t.count + additional
	if need < 0 {
		return ErrCapacityOverflow
	}
	if t.capacity() >= need {
		return nil
	}
	size, ok := bucketsFor(need)
	if !ok {
		return ErrCapacityOverflow
	}
	t.rehash(size)
	return nil
}

// shrink reduces the bucket count to what min entries need, but never
// below the current entry count.
func (t *table[T, V]) shrink(min int) {
	if min < t.count {
		min = t.count
	}
	if size, ok := bucketsFor(min); ok && size < len(t.buckets) {
		t.rehash(size)
	}
}
