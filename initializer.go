package qedarray

import "fmt"

// Cursor is a tuple of per-axis indices.
//
// The engine hands a cursor to initializers to report the absolute
// coordinates of the element being produced. The engine re-uses the
// cursor buffer between calls, so clients must not retain a cursor past
// their own invocation; use Clone instead.
type Cursor []int

// Clone returns a copy of the cursor which is safe to retain.
func (c Cursor) Clone() Cursor {
	if c == nil {
		return nil
	}
	cc := make(Cursor, len(c))
	copy(cc, c)
	return cc
}

// At returns the index along axis.
func (c Cursor) At(axis int) int {
	return c[axis]
}

func (c Cursor) String() string {
	return fmt.Sprint([]int(c))
}

// Initializer produces the value of a single new element.
//
// Init is called once for every new element, with cursor set to the element's
// index. It must call done exactly once with the element value. Calling done
// before Init returns is the synchronous style; calling it later, possibly
// from another goroutine, is the asynchronous style. The latter is allowed
// for cooperative arrays only.
//
// For side-effect-only arrays the value passed to done is discarded.
type Initializer[T any] interface {
	Init(cursor Cursor, done func(T))
}

// InitFunc adapts a synchronous function to the Initializer interface.
type InitFunc[T any] func(cursor Cursor) T

// Init calls f and passes its result to done right away.
func (f InitFunc[T]) Init(cursor Cursor, done func(T)) {
	done(f(cursor))
}

// AsyncInitFunc adapts a continuation-passing function to the Initializer
// interface.
type AsyncInitFunc[T any] func(cursor Cursor, done func(T))

// Init calls f.
func (f AsyncInitFunc[T]) Init(cursor Cursor, done func(T)) {
	f(cursor, done)
}
