package crossattack

import "sync"

// ProgressSink receives the number of completed threshold units out of a
// known total. Calls are serialized and done never decreases; the search
// does not depend on when, or whether, the sink does anything.
type ProgressSink interface {
	Report(done, total int)
}

// ProgressFunc adapts a function to ProgressSink.
type ProgressFunc func(done, total int)

func (f ProgressFunc) Report(done, total int) {
	f(done, total)
}

// NopProgress discards progress updates.
type NopProgress struct{}

func (NopProgress) Report(int, int) {}

// progressCounter counts completed units across workers.
type progressCounter struct {
	mu    sync.Mutex
	done  int
	total int
	sink  ProgressSink
}

func newProgressCounter(sink ProgressSink, total int) *progressCounter {
	if sink == nil {
		sink = NopProgress{}
	}
	return &progressCounter{sink: sink, total: total}
}

func (c *progressCounter) complete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.done++
	c.sink.Report(c.done, c.total)
}
