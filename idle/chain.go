// Package idle implements the deferred-work chain plugins schedule onto via
// ControlAPI.RequestIdleCallback. Tasks execute in strict submission order,
// one at a time while the run is active; once the run is marked terminated,
// each new request flushes everything queued so far as a concurrent batch so
// no deferred work is left stuck in one-at-a-time mode after shutdown begins.
package idle

import (
	"context"
	"fmt"
	"sync"

	"github.com/hupe1980/capturemesh/core"
)

// Reporter receives failures from idle task execution, attributed to the
// plugin that requested the task. Implementations must not block; the chain
// never retries a failed task.
type Reporter func(caller string, err error)

// Chain is a strict-FIFO queue of idle tasks plus a single serialized tail.
// There is exactly one outstanding tail at any time: every Enqueue atomically
// reads and replaces it under the mutex, so two concurrent requests can never
// chain off the same prior continuation and run out of order.
type Chain struct {
	mu         sync.Mutex
	queue      []core.IdleTask
	tail       chan struct{} // closed when the latest continuation settles
	terminated bool
	report     Reporter
}

// New creates an empty chain with an already-settled tail.
func New(report Reporter) *Chain {
	if report == nil {
		report = func(string, error) {}
	}
	settled := make(chan struct{})
	close(settled)
	return &Chain{tail: settled, report: report}
}

// Enqueue appends task to the queue and extends the tail with a continuation.
// Before MarkTerminated the continuation drains exactly one task, throttling
// how much deferred work can pile up ahead of the next lifecycle checkpoint.
// After MarkTerminated it drains the entire queued batch.
func (c *Chain) Enqueue(task core.IdleTask) {
	c.mu.Lock()
	c.queue = append(c.queue, task)
	prev := c.tail
	settled := make(chan struct{})
	c.tail = settled
	forced := c.terminated
	c.mu.Unlock()

	go func() {
		defer close(settled)
		<-prev
		if forced {
			c.drainAll()
		} else {
			c.drainOne()
		}
	}()
}

// MarkTerminated switches the chain into forced draining. Set by the teardown
// controller, never inferred by the chain itself.
func (c *Chain) MarkTerminated() {
	c.mu.Lock()
	c.terminated = true
	c.mu.Unlock()
}

// Wait blocks until the continuation that is the tail at call time settles,
// or ctx is cancelled. A settled tail means no enqueued task is still
// in flight.
func (c *Chain) Wait(ctx context.Context) error {
	c.mu.Lock()
	tail := c.tail
	c.mu.Unlock()

	select {
	case <-tail:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pending reports how many tasks are queued but not yet started.
func (c *Chain) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

// drainOne pops and runs the single oldest task. A no-op when a forced drain
// already consumed the queue.
func (c *Chain) drainOne() {
	c.mu.Lock()
	if len(c.queue) == 0 {
		c.mu.Unlock()
		return
	}
	task := c.queue[0]
	c.queue = c.queue[1:]
	c.mu.Unlock()

	c.run(task)
}

// drainAll detaches the entire queue so concurrently scheduled tasks start a
// fresh batch, then runs the detached tasks concurrently. Tasks from a
// subsequent batch never overlap this one: their continuation is chained
// behind this tail.
func (c *Chain) drainAll() {
	c.mu.Lock()
	batch := c.queue
	c.queue = nil
	c.mu.Unlock()

	var wg sync.WaitGroup
	for _, task := range batch {
		wg.Add(1)
		go func(task core.IdleTask) {
			defer wg.Done()
			c.run(task)
		}(task)
	}
	wg.Wait()
}

// run executes a single task, converting panics and errors into reports.
func (c *Chain) run(task core.IdleTask) {
	defer func() {
		if r := recover(); r != nil {
			c.report(task.Caller, fmt.Errorf("idle task panic: %v", r))
		}
	}()
	if task.Run == nil {
		return
	}
	if err := task.Run(context.Background()); err != nil {
		c.report(task.Caller, err)
	}
}
