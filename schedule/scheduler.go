package schedule

import (
	"context"
	"errors"
	"sync"
)

// ErrReentrancy is flagged if a task is submitted while another one is pending.
var ErrReentrancy = errors.New("schedule: task submitted while another task is pending")

// Task is a unit of work.
type Task func()

// Scheduler is a single-slot deferred-call queue.
//
// A Scheduler created by
//
//	Scheduler{}
//
// is not ready to use, clients have to call New.
//
// All methods are safe to call from multiple goroutines, which allows
// asynchronous producers to submit continuations from outside the host loop.
// Tasks are always executed on the goroutine calling Step, Drain, DrainN or Run.
type Scheduler struct {
	mu      sync.Mutex
	pending Task
	parked  []Task // continuations waiting for the slot to become free
	turns   uint64
	ready   chan struct{}
}

// New creates an empty scheduler.
func New() *Scheduler {
	return &Scheduler{
		ready: make(chan struct{}, 1),
	}
}

// Submit stores task as the pending unit of work.
// If a task is already pending, Submit returns ErrReentrancy and keeps the
// task already pending.
func (s *Scheduler) Submit(task Task) error {
	if task == nil {
		return nil
	}
	s.mu.Lock()
	if s.pending != nil {
		s.mu.Unlock()
		tracer().P("schedule", "submit").Errorf("task already pending, rejecting submission")
		return ErrReentrancy
	}
	s.pending = task
	s.mu.Unlock()
	s.signal()
	return nil
}

// Park submits task if the slot is free. Otherwise it queues task behind the
// pending one: after each step, Step promotes the oldest parked task into the
// empty slot. Park never rejects a task.
//
// Park is meant for continuations which must not be lost, e.g. a value
// delivered asynchronously while the host has another task pending.
func (s *Scheduler) Park(task Task) {
	if task == nil {
		return
	}
	s.mu.Lock()
	if s.pending != nil {
		s.parked = append(s.parked, task)
		s.mu.Unlock()
		tracer().P("schedule", "park").Debugf("slot taken, %d task(s) parked", len(s.parked))
		return
	}
	s.pending = task
	s.mu.Unlock()
	s.signal()
}

func (s *Scheduler) signal() {
	select { // wake up a waiting host loop, if any
	case s.ready <- struct{}{}:
	default:
	}
}

// Parked returns the number of parked tasks.
func (s *Scheduler) Parked() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.parked)
}

// Pending is a predicate: is a task waiting for execution?
func (s *Scheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// Turns returns the number of tasks executed by this scheduler so far.
func (s *Scheduler) Turns() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.turns
}

// Ready returns a channel which receives a value whenever a task has been
// submitted. A host loop may select on it to wake up when work arrives.
func (s *Scheduler) Ready() <-chan struct{} {
	return s.ready
}

// Step pops the pending task and executes it. It returns false if no task
// was pending.
//
// The slot is cleared before the task runs, so the task may submit its successor.
// If the slot is still empty after the task has run, the oldest parked task
// moves into it.
func (s *Scheduler) Step() bool {
	s.mu.Lock()
	task := s.pending
	s.pending = nil
	if task == nil && len(s.parked) > 0 {
		task, s.parked = s.parked[0], s.parked[1:]
	}
	if task != nil {
		s.turns++
	}
	s.mu.Unlock()
	if task == nil {
		return false
	}
	task()
	s.promote()
	return true
}

func (s *Scheduler) promote() {
	s.mu.Lock()
	if s.pending != nil || len(s.parked) == 0 {
		s.mu.Unlock()
		return
	}
	s.pending, s.parked = s.parked[0], s.parked[1:]
	s.mu.Unlock()
	s.signal()
}

// Drain executes pending tasks until none remains and returns the number of
// tasks executed.
func (s *Scheduler) Drain() int {
	n := 0
	for s.Step() {
		n++
	}
	return n
}

// DrainN executes at most budget pending tasks and returns the number of
// tasks executed. A budget ≤ 0 is unbounded, i.e. behaves like Drain.
//
// Hosts use DrainN to cap the time spent per tick of their own loop.
func (s *Scheduler) DrainN(budget int) int {
	if budget <= 0 {
		return s.Drain()
	}
	n := 0
	for n < budget && s.Step() {
		n++
	}
	return n
}

// Run is a host loop: it drains the scheduler, then waits for further
// submissions, until ctx is done. Run returns ctx.Err().
//
// Run is suitable for continuations which are submitted asynchronously from
// other goroutines.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		s.Drain()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.ready:
		}
	}
}
