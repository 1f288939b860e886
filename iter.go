package variantset

// Iterator walks the stored values of a Set in unspecified order.
// It is invalidated by any mutation of the set.
type Iterator[T Value[V], V Variant] struct {
	t   *table[T, V]
	idx int
	cur *entry[T, V]
}

// Next returns the next value, or ok=false once the iterator is done.
func (it *Iterator[T, V]) Next() (value T, ok bool) {
	for it.cur == nil {
		if it.idx >= len(it.t.buckets) {
			var zero T
			return zero, false
		}
		it.cur = it.t.buckets[it.idx]
		it.idx++
	}
	e := it.cur
	it.cur = e.next
	return e.value, true
}

// Drainer produces the stored values of a Set in unspecified order,
// removing each one from the set as it is produced. It is one-shot and
// not restartable.
type Drainer[T Value[V], V Variant] struct {
	t   *table[T, V]
	idx int
}

// Next removes and returns the next value, or ok=false once the set is
// empty.
func (d *Drainer[T, V]) Next() (value T, ok bool) {
	for d.idx < len(d.t.buckets) {
		if e := d.t.buckets[d.idx]; e != nil {
			d.t.buckets[d.idx] = e.next
			d.t.count--
			return e.value, true
		}
		d.idx++
	}
	var zero T
	return zero, false
}
