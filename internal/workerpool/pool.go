// Package workerpool provides the fixed-size pool the threshold searches run
// on. A pool is created once by the caller and passed to every search.
package workerpool

import (
	"runtime"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// ErrClosed is returned by Map after Close.
var ErrClosed = errors.New("worker pool is closed")

// Pool runs batches of independent jobs on at most Size goroutines.
type Pool struct {
	size int

	mu      sync.Mutex
	closed  bool
	batches sync.WaitGroup
}

// New creates a pool of size workers. A size of 0 or less uses every
// logical CPU.
func New(size int) *Pool {
	if size <= 0 {
		size = runtime.NumCPU()
	}
	return &Pool{size: size}
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return p.size
}

// Map runs fn for every index in [0, n) and waits for all started jobs.
// Once a job fails no further indices are started, and the first error is
// returned. A panicking job is reported as an error.
func (p *Pool) Map(n int, fn func(i int) error) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	p.batches.Add(1)
	p.mu.Unlock()
	defer p.batches.Done()

	var (
		g      errgroup.Group
		failed = make(chan struct{})
		once   sync.Once
	)
	g.SetLimit(p.size)

	for i := 0; i < n; i++ {
		select {
		case <-failed:
			return g.Wait()
		default:
		}

		i := i
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = errors.Errorf("job %d panicked: %v", i, r)
				}
				if err != nil {
					once.Do(func() { close(failed) })
				}
			}()
			return fn(i)
		})
	}
	return g.Wait()
}

// Close rejects new batches and waits for the running ones to finish.
func (p *Pool) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.batches.Wait()
}
