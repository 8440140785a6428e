package qedarray

import "iter"

// All iterates over all elements in row-major order, i.e., the index along
// the last axis varies fastest. For side-effect-only arrays the values are
// zero values of T.
//
// The cursor is re-used between iterations and must not be retained; use
// Cursor.Clone instead.
func (a *Array[T]) All() iter.Seq2[Cursor, T] {
	return func(yield func(Cursor, T) bool) {
		if a.Size() == 0 {
			return
		}
		cursor := make(Cursor, a.axes)
		a.forEachLeaf(a.root, 0, cursor, yield)
	}
}

func (a *Array[T]) forEachLeaf(n *node[T], level int, cursor Cursor, yield func(Cursor, T) bool) bool {
	if level < a.axes-1 {
		for i, c := range n.children {
			cursor[level] = i
			if !a.forEachLeaf(c, level+1, cursor, yield) {
				return false
			}
		}
		return true
	}
	var zero T
	for i := 0; i < n.leafCount(a.store); i++ {
		cursor[level] = i
		v := zero
		if a.store {
			v = n.values[i]
		}
		if !yield(cursor, v) {
			return false
		}
	}
	return true
}
