/*
Package schedule provides a single-slot cooperative scheduler.

A Scheduler holds at most one pending task. Clients submit a task, and a host
loop drains the scheduler, executing the pending task until none remains.
A task may submit its successor, which turns what would otherwise be deep
recursion into a flat sequence of steps (a trampoline). Between drains the host
is free to do other periodic work, e.g. render a frame.

Submitting while a task is already pending is a usage error and is reported
with ErrReentrancy; the pending task is kept.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package schedule

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'qedarray'
func tracer() tracing.Trace {
	return tracing.Select("qedarray")
}
