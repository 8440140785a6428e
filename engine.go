package qedarray

import (
	"github.com/npillmayer/qedarray/schedule"
)

// insertion carries the state of a single insert, shared by all levels of
// the walk.
type insertion[T any] struct {
	array    *Array[T]
	req      *span  // span for the root node
	fresh    *span  // span for newly built subtrees
	cursor   Cursor // shared index cursor
	onFinish func() // called when the tree has been fully updated
	leaves   int    // number of initializer calls so far
	visits   int    // number of nodes entered so far
}

func newInsertion[T any](a *Array[T], pos, block []int, onFinish func()) *insertion[T] {
	target := make([]int, a.axes)
	for i := range target {
		target[i] = a.extents[i] + block[i]
	}
	return &insertion[T]{
		array:    a,
		req:      &span{dims: a.extents, pos: pos, block: block, target: target},
		fresh:    freshSpan(target),
		cursor:   make(Cursor, a.axes),
		onFinish: onFinish,
	}
}

func (ins *insertion[T]) isBottom(level int) bool {
	return level == ins.array.axes-1
}

// enter grows node n at axis level and returns the index range to process:
// every child index for inner nodes, the inserted block for bottom nodes.
func (ins *insertion[T]) enter(n *node[T], level int, sp *span) (from, to int) {
	ins.visits++
	bottom := ins.isBottom(level)
	n.grow(level, bottom, ins.array.store, sp)
	if bottom {
		return sp.pos[level], sp.pos[level] + sp.block[level]
	}
	return 0, sp.target[level]
}

// child returns the child of inner node n at index i, together with the span
// to continue with. Children within the inserted block are allocated here.
// Children in front of the block are untouched at this level, children behind
// it have already been moved by grow; both keep the parent's span, as deeper
// axes may receive insertions as well.
func (ins *insertion[T]) child(n *node[T], level, i int, sp *span) (*node[T], *span) {
	if sp.isFresh(level, i) {
		c := &node[T]{}
		n.children[i] = c
		return c, ins.fresh
	}
	c := n.children[i]
	assert(c != nil, "missing child of inner node")
	return c, sp
}

// initLeaf calls the initializer for leaf i of bottom node n. then is called
// after the value has been delivered.
func (ins *insertion[T]) initLeaf(n *node[T], i int, then func()) {
	ins.leaves++
	delivered := false
	store := ins.array.store
	ins.array.init.Init(ins.cursor, func(v T) {
		assert(!delivered, "initializer delivered a value twice")
		delivered = true
		if store {
			n.values[i] = v
		}
		then()
	})
}

// --- Direct mode -----------------------------------------------------------

// walk performs the insertion below n by plain recursion. Stack depth is
// bounded by the number of axes.
func (ins *insertion[T]) walk(n *node[T], level int, sp *span) {
	from, to := ins.enter(n, level, sp)
	if !ins.isBottom(level) {
		for i := from; i < to; i++ {
			ins.cursor[level] = i
			c, csp := ins.child(n, level, i, sp)
			ins.walk(c, level+1, csp)
		}
		return
	}
	for i := from; i < to; i++ {
		ins.cursor[level] = i
		ok := false
		ins.initLeaf(n, i, func() { ok = true })
		assert(ok, "initializer did not deliver synchronously; use a cooperative array")
	}
}

func (ins *insertion[T]) runDirect() {
	ins.walk(ins.array.root, 0, ins.req)
	ins.onFinish()
}

// --- Cooperative mode ------------------------------------------------------

// frame is the state of one level of a stepped insertion walk: the node,
// its span and the remaining index range.
type frame[T any] struct {
	n      *node[T]
	level  int
	sp     *span
	i, end int
}

// stepper advances an insertion one step per scheduler turn. A step either
// enters a node or initializes a leaf; completion happens within the last step.
type stepper[T any] struct {
	ins     *insertion[T]
	sched   *schedule.Scheduler
	stack   []frame[T]
	started bool
}

func (st *stepper[T]) push(n *node[T], level int, sp *span) {
	from, to := st.ins.enter(n, level, sp)
	st.stack = append(st.stack, frame[T]{n: n, level: level, sp: sp, i: from, end: to})
}

// turn is the scheduler task.
func (st *stepper[T]) turn() {
	if !st.started {
		st.started = true
		st.push(st.ins.array.root, 0, st.ins.req)
		st.next()
		return
	}
	f := &st.stack[len(st.stack)-1]
	i := f.i
	f.i++
	st.ins.cursor[f.level] = i
	if !st.ins.isBottom(f.level) {
		c, csp := st.ins.child(f.n, f.level, i, f.sp)
		st.push(c, f.level+1, csp) // invalidates f
		st.next()
		return
	}
	st.ins.initLeaf(f.n, i, st.next)
}

// next drops exhausted frames and either submits the next step or finishes
// the insertion.
func (st *stepper[T]) next() {
	for len(st.stack) > 0 {
		top := st.stack[len(st.stack)-1]
		if top.i < top.end {
			break
		}
		st.stack = st.stack[:len(st.stack)-1]
	}
	if len(st.stack) == 0 {
		st.ins.onFinish()
		return
	}
	if err := st.sched.Submit(st.turn); err != nil {
		tracer().P("insert", "step").Errorf("cannot submit next step: %v; parking it", err)
		st.sched.Park(st.turn)
	}
}
