// Package coop runs tasks cooperatively on a single goroutine.
//
// Tasks take turns from a FIFO run queue. A task yields by returning the task
// to run on its next turn; nothing preempts it in between, so a task's turn
// is atomic with respect to every other task.
package coop

import (
	"fmt"

	"github.com/Workiva/go-datastructures/queue"
)

// Task runs one turn and returns its continuation, or nil when done.
type Task func() Task

// Scheduler is a single-threaded run queue. It is not safe for concurrent use;
// Spawn may be called from inside a running task.
type Scheduler struct {
	runq  *queue.Queue
	turns int
}

// New returns an empty scheduler.
func New() *Scheduler {
	return &Scheduler{runq: queue.New(64)}
}

// Spawn appends t to the run queue.
func (s *Scheduler) Spawn(t Task) error {
	if t == nil {
		return nil
	}
	return s.runq.Put(t)
}

// Run executes turns on the calling goroutine until the run queue is empty.
func (s *Scheduler) Run() error {
	for !s.runq.Empty() {
		items, err := s.runq.Get(1)
		if err != nil {
			return err
		}
		t, ok := items[0].(Task)
		if !ok {
			return fmt.Errorf("coop: unexpected run queue item %T", items[0])
		}
		s.turns++
		if next := t(); next != nil {
			if err := s.runq.Put(next); err != nil {
				return err
			}
		}
	}
	return nil
}

// Turns returns the number of turns executed so far.
func (s *Scheduler) Turns() int {
	return s.turns
}

// Close disposes the run queue. Spawn and Run fail afterwards.
func (s *Scheduler) Close() {
	s.runq.Dispose()
}

// Repeat returns a task that calls fn once per turn, n times.
func Repeat(n int, fn func()) Task {
	var t Task
	t = func() Task {
		if n <= 0 {
			return nil
		}
		fn()
		n--
		if n == 0 {
			return nil
		}
		return t
	}
	return t
}
