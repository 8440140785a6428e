/*
Package qedarray offers an N-dimensional array which grows in place.

# QED arrays

A QED array holds elements addressed by a tuple of per-axis indices. It grows
by inserting an axis-aligned hyper-box of new elements at an arbitrary offset
along every axis simultaneously. All existing elements keep their relative
position: elements in front of the insertion point stay where they are,
elements behind it move up by the size of the block along that axis.

	extents [2,3]                 insert at [1,1], block [3,2]

	1 2 3                         1 . . 2 3
	2 4 6                         . . . . .
	                              . . . . .
	                              . . . . .
	                              2 . . 4 6

Elements are produced by an Initializer, which is called exactly once for every
new index. Initializers may deliver their value right away (InitFunc) or
later (AsyncInitFunc); the engine treats both through a continuation.

# Execution modes

By default an insert runs to completion before Insert returns (direct mode).
Arrays created with WithCooperative hand every step of the insertion walk to a
schedule.Scheduler instead. The host drains the scheduler, possibly interleaved
with other periodic work, and is notified through the completion callback once
the insert is complete. An array is single-writer: only one insert may be in
flight at a time, and reading an array while an insert is in flight is
undefined.

An initializer which does not deliver synchronously in direct mode is a
programming error and makes Insert panic. The array is left defunct: it is no
longer busy, but further inserts fail with ErrDefunct.

# Value-storing and side-effect-only arrays

Arrays created with WithoutValues do not store leaf payloads. Their
initializers are called for their side effect only, and Get/Set fail with
ErrNoValues.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

*/
package qedarray

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'qedarray'
func tracer() tracing.Trace {
	return tracing.Select("qedarray")
}

// ArrayError is an error type for the qedarray module
type ArrayError string

func (e ArrayError) Error() string {
	return string(e)
}

// ErrOutOfRange is flagged whenever an insertion position lies beyond the
// current extents or a block size is negative.
const ErrOutOfRange = ArrayError("insertion request out of range")

// ErrIndexOutOfBounds is flagged whenever an element index lies outside the
// current extents.
const ErrIndexOutOfBounds = ArrayError("index out of bounds")

// ErrIllegalArguments is flagged whenever function parameters are invalid.
const ErrIllegalArguments = ArrayError("illegal arguments")

// ErrNoValues is flagged for value access on an array which does not store
// element values.
const ErrNoValues = ArrayError("array does not store element values")

// ErrInsertInFlight signals that an insert has been requested while another
// insert on the same array has not yet completed.
const ErrInsertInFlight = ArrayError("insert already in flight")

// ErrNotRectangular is flagged by Check if the node tree is inconsistent
// with the array's extents.
const ErrNotRectangular = ArrayError("node tree is not rectangular")

// ErrDefunct is flagged for inserts on an array whose previous insert has
// been aborted by a panic. The node tree of such an array may be only
// partially grown.
const ErrDefunct = ArrayError("array is defunct after an aborted insert")

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
