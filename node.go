package qedarray

// node is a node of an array's ownership tree.
//
// Nodes at level < axes-1 are inner nodes and hold one child per index along
// their axis. Nodes at level axes-1 are bottom nodes and hold the leaves: the
// element values for value-storing arrays, or just a leaf count otherwise.
type node[T any] struct {
	children []*node[T] // inner nodes
	values   []T        // bottom nodes of value-storing arrays
	width    int        // bottom nodes of side-effect-only arrays
}

// span describes the insertion walk below a node: current extents (dims),
// insertion position, block size and target extents, per axis.
//
// Subtrees which are built from scratch use a fresh span, with zero dims and
// position and block == target.
type span struct {
	dims, pos, block, target []int
}

func freshSpan(target []int) *span {
	zeros := make([]int, len(target))
	return &span{
		dims:   zeros,
		pos:    zeros,
		block:  target,
		target: target,
	}
}

// isFresh is a predicate: does index i along axis level lie within the
// inserted block?
func (sp *span) isFresh(level, i int) bool {
	return i >= sp.pos[level] && i < sp.pos[level]+sp.block[level]
}

// grow makes room for the inserted block along axis level. Existing entries
// at [pos, dims) move to [pos+block, dims+block). Moving is done from the
// highest index downwards, otherwise entries would overwrite entries not yet
// moved. Vacated slots are cleared.
func (n *node[T]) grow(level int, bottom, store bool, sp *span) {
	d, at, b := sp.dims[level], sp.pos[level], sp.block[level]
	switch {
	case !bottom:
		assert(len(n.children) == d, "inner node inconsistent with extents")
		if b == 0 {
			return
		}
		n.children = append(n.children, make([]*node[T], b)...)
		for i := d - 1; i >= at; i-- {
			n.children[i+b] = n.children[i]
		}
		for i := at; i < at+b; i++ {
			n.children[i] = nil
		}
	case store:
		assert(len(n.values) == d, "bottom node inconsistent with extents")
		if b == 0 {
			return
		}
		n.values = append(n.values, make([]T, b)...)
		for i := d - 1; i >= at; i-- {
			n.values[i+b] = n.values[i]
		}
		var zero T
		for i := at; i < at+b; i++ {
			n.values[i] = zero
		}
	default:
		assert(n.width == d, "bottom node inconsistent with extents")
		n.width += b
	}
}

// leafCount returns the number of leaves of a bottom node.
func (n *node[T]) leafCount(store bool) int {
	if store {
		return len(n.values)
	}
	return n.width
}
