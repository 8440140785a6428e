package qedarray

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import (
	"fmt"
	"sync/atomic"

	"github.com/guiguan/caster"
	"github.com/npillmayer/qedarray/schedule"
)

// Array is an N-dimensional array which grows by inserting hyper-boxes of new
// elements.
//
// An Array is created with all extents zero. It changes exclusively through
// Insert. T is the element type; for side-effect-only arrays (see
// WithoutValues) T is irrelevant and may be struct{}.
type Array[T any] struct {
	axes    int
	extents []int
	root    *node[T]
	init    Initializer[T]
	store   bool                // store leaf values?
	sched   *schedule.Scheduler // nil for direct mode
	budget  int                 // turns per Pump, ≤ 0 is unbounded
	busy    atomic.Bool         // an insert is in flight
	defunct atomic.Bool         // an insert has been aborted half-way
	cast    *caster.Caster      // completion events, created on first Watch
}

// New creates an array with axes axes and all extents zero. init is called for
// every element inserted later on.
//
// If option WithInitialExtents is given, New performs a first insert at the
// origin. For cooperative arrays this insert completes only after the host has
// drained the scheduler.
func New[T any](axes int, init Initializer[T], opts ...Option) (*Array[T], error) {
	if axes < 1 || init == nil {
		return nil, fmt.Errorf("%w: array needs at least one axis and an initializer", ErrIllegalArguments)
	}
	o := options{store: true}
	for _, opt := range opts {
		opt(&o)
	}
	a := &Array[T]{
		axes:    axes,
		extents: make([]int, axes),
		root:    &node[T]{},
		init:    init,
		store:   o.store,
		budget:  o.budget,
	}
	if o.cooperative {
		a.sched = o.sched
		if a.sched == nil {
			a.sched = schedule.New()
		}
	}
	if o.initial != nil {
		if len(o.initial) != axes {
			return nil, fmt.Errorf("%w: initial extents have %d axes, expected %d",
				ErrIllegalArguments, len(o.initial), axes)
		}
		if err := a.Insert(make([]int, axes), o.initial, nil); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Build creates a value-storing array in direct mode with the given extents,
// calling fn for every element.
func Build[T any](extents []int, fn func(Cursor) T) (*Array[T], error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: nil initializer function", ErrIllegalArguments)
	}
	return New[T](len(extents), InitFunc[T](fn), WithInitialExtents(extents...))
}

// Axes returns the number of axes.
func (a *Array[T]) Axes() int {
	return a.axes
}

// Extents returns a copy of the current extents.
func (a *Array[T]) Extents() []int {
	ext := make([]int, a.axes)
	copy(ext, a.extents)
	return ext
}

// Size returns the number of elements, i.e. the product of the extents.
func (a *Array[T]) Size() int {
	s := 1
	for i := a.axes - 1; i >= 0; i-- {
		s *= a.extents[i]
	}
	return s
}

// StoresValues is a predicate: does the array store element values?
func (a *Array[T]) StoresValues() bool {
	return a.store
}

// Busy is a predicate: is an insert in flight?
func (a *Array[T]) Busy() bool {
	return a.busy.Load()
}

// Scheduler returns the scheduler of a cooperative array, nil otherwise.
func (a *Array[T]) Scheduler() *schedule.Scheduler {
	return a.sched
}

// Pump drains the array's scheduler, executing at most the configured
// drain budget of steps. It returns the number of steps executed.
// For direct-mode arrays Pump does nothing.
func (a *Array[T]) Pump() int {
	if a.sched == nil {
		return 0
	}
	return a.sched.DrainN(a.budget)
}

// Insert inserts a hyper-box of new elements. The box starts at position and
// spans block[i] indices along axis i. Afterwards the extents have grown by
// block.
//
// position[i] must be within [0, extents[i]] and block[i] must not be negative,
// otherwise Insert returns ErrOutOfRange and leaves the array unchanged.
// onComplete, which may be nil, is called after the tree has been fully
// updated. For direct-mode arrays this happens before Insert returns.
// For cooperative arrays Insert only submits the first step to the scheduler;
// onComplete runs within the last step.
//
// Calling Insert while another insert is in flight returns ErrInsertInFlight,
// which also matches schedule.ErrReentrancy.
func (a *Array[T]) Insert(position, block []int, onComplete func()) error {
	if err := a.validate(position, block); err != nil {
		tracer().P("insert", position).Errorf("rejected: %v", err)
		return err
	}
	if a.defunct.Load() {
		return ErrDefunct
	}
	if !a.busy.CompareAndSwap(false, true) {
		return fmt.Errorf("%w: %w", ErrInsertInFlight, schedule.ErrReentrancy)
	}
	pos, blk := clone(position), clone(block)
	tracer().P("insert", pos).Debugf("block %v on extents %v", blk, a.extents)
	var ins *insertion[T]
	ins = newInsertion(a, pos, blk, func() {
		a.extents = ins.req.target
		a.busy.Store(false)
		tracer().P("insert", pos).Debugf("complete: %d nodes entered, %d leaves initialized, extents now %v",
			ins.visits, ins.leaves, a.extents)
		a.publish(InsertEvent{Position: pos, Block: blk, Extents: a.Extents()})
		if onComplete != nil {
			onComplete()
		}
	})
	if a.sched == nil {
		defer func() {
			if r := recover(); r != nil {
				if a.busy.Load() { // tree has been left half-grown
					tracer().P("insert", pos).Errorf("aborted: %v", r)
					a.defunct.Store(true)
					a.busy.Store(false)
				}
				panic(r)
			}
		}()
		ins.runDirect()
		return nil
	}
	st := &stepper[T]{ins: ins, sched: a.sched}
	if err := a.sched.Submit(st.turn); err != nil {
		a.busy.Store(false)
		return err
	}
	return nil
}

func (a *Array[T]) validate(position, block []int) error {
	if len(position) != a.axes || len(block) != a.axes {
		return fmt.Errorf("%w: position and block must have %d axes", ErrIllegalArguments, a.axes)
	}
	for i := 0; i < a.axes; i++ {
		if position[i] < 0 || position[i] > a.extents[i] {
			return fmt.Errorf("%w: position %d on axis %d, extent is %d",
				ErrOutOfRange, position[i], i, a.extents[i])
		}
		if block[i] < 0 {
			return fmt.Errorf("%w: negative block size %d on axis %d", ErrOutOfRange, block[i], i)
		}
	}
	return nil
}

// Get returns the element at index.
func (a *Array[T]) Get(index ...int) (T, error) {
	var zero T
	n, err := a.bottom(index)
	if err != nil {
		return zero, err
	}
	return n.values[index[a.axes-1]], nil
}

// Set replaces the element at index.
func (a *Array[T]) Set(value T, index ...int) error {
	n, err := a.bottom(index)
	if err != nil {
		return err
	}
	n.values[index[a.axes-1]] = value
	return nil
}

// bottom locates the bottom node holding the leaf at index.
func (a *Array[T]) bottom(index []int) (*node[T], error) {
	if !a.store {
		return nil, ErrNoValues
	}
	if len(index) != a.axes {
		return nil, fmt.Errorf("%w: index has %d axes, expected %d", ErrIllegalArguments, len(index), a.axes)
	}
	for i, x := range index {
		if x < 0 || x >= a.extents[i] {
			return nil, fmt.Errorf("%w: index %d on axis %d, extent is %d",
				ErrIndexOutOfBounds, x, i, a.extents[i])
		}
	}
	n := a.root
	for level := 0; level < a.axes-1; level++ {
		n = n.children[index[level]]
	}
	return n, nil
}

func clone(s []int) []int {
	c := make([]int, len(s))
	copy(c, s)
	return c
}
