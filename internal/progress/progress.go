// Package progress renders threshold search progress on the terminal.
package progress

import (
	"io"
	"sync"

	"github.com/cheggaaa/pb/v3"
)

const barTemplate pb.ProgressBarTemplate = `[{{etime . }}] {{string . "prefix"}} {{bar . "[" "#" ">" "-" "]"}} {{counters . }}`

// Sink receives completed-unit counts and is finished once the work is done.
type Sink interface {
	Report(done, total int)
	Finish()
}

// New returns a progress bar labeled label writing to w, or a no-op sink
// when quiet is set.
func New(label string, quiet bool, w io.Writer) Sink {
	if quiet {
		return nop{}
	}
	return &Bar{label: label, out: w}
}

type nop struct{}

func (nop) Report(int, int) {}
func (nop) Finish()         {}

// Bar is a lazily started terminal progress bar. It finishes itself when
// the reported count reaches the total.
type Bar struct {
	label string
	out   io.Writer

	mu       sync.Mutex
	bar      *pb.ProgressBar
	finished bool
}

func (b *Bar) Report(done, total int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.finished {
		return
	}
	if b.bar == nil {
		b.bar = barTemplate.New(total).
			SetWriter(b.out).
			Set("prefix", b.label)
		b.bar.Start()
	}
	b.bar.SetTotal(int64(total))
	b.bar.SetCurrent(int64(done))
	if done >= total {
		b.finish()
	}
}

// Finish stops the bar. It is safe to call more than once.
func (b *Bar) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.finish()
}

func (b *Bar) finish() {
	if b.finished {
		return
	}
	b.finished = true
	if b.bar != nil {
		b.bar.Finish()
	}
}
