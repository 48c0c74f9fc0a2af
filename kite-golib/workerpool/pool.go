package workerpool

import (
	"context"
	"sync"

	"github.com/kiteco/jsparse/kite-golib/errors"
)

// Job is a unit of work run by a Pool.
type Job func() error

// Pool runs jobs on a fixed number of goroutines.
type Pool struct {
	ctx    context.Context
	cancel context.CancelFunc

	m       sync.Mutex
	cond    *sync.Cond
	queue   []Job
	running int
	stopped bool
	errs    errors.List
}

// New returns a pool with n workers.
func New(n int) *Pool {
	return NewWithCtx(context.Background(), n)
}

// NewWithCtx returns a pool with n workers that stops taking jobs once ctx is done.
func NewWithCtx(ctx context.Context, n int) *Pool {
	if n < 1 {
		n = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	p := &Pool{ctx: ctx, cancel: cancel}
	p.cond = sync.NewCond(&p.m)

	for i := 0; i < n; i++ {
		go p.work()
	}
	go func() {
		<-ctx.Done()
		p.Stop()
	}()
	return p
}

// Add queues jobs. Jobs added after Stop are dropped.
func (p *Pool) Add(jobs []Job) {
	p.m.Lock()
	defer p.m.Unlock()
	if p.stopped {
		return
	}
	p.queue = append(p.queue, jobs...)
	p.cond.Broadcast()
}

// Wait blocks until the queue is empty and no job is running, then returns
// the errors of every job run so far.
func (p *Pool) Wait() error {
	p.m.Lock()
	defer p.m.Unlock()
	for len(p.queue) > 0 || p.running > 0 {
		p.cond.Wait()
	}
	if p.errs == nil {
		return nil
	}
	return p.errs
}

// Stop drops the jobs that have not started yet and shuts down the workers
// once the running jobs return.
func (p *Pool) Stop() {
	p.m.Lock()
	if p.stopped {
		p.m.Unlock()
		return
	}
	p.stopped = true
	p.queue = nil
	p.cond.Broadcast()
	p.m.Unlock()
	p.cancel()
}

func (p *Pool) work() {
	for {
		p.m.Lock()
		for len(p.queue) == 0 && !p.stopped {
			p.cond.Wait()
		}
		if p.stopped {
			p.m.Unlock()
			return
		}
		job := p.queue[0]
		p.queue = p.queue[1:]
		p.running++
		p.m.Unlock()

		err := job()

		p.m.Lock()
		p.running--
		p.errs = errors.Append(p.errs, err)
		p.cond.Broadcast()
		p.m.Unlock()
	}
}
