package warcfile

import (
	"context"
	"os"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	"github.com/rohmanhakim/warc-archiver/pkg/failure"
	"github.com/rohmanhakim/warc-archiver/pkg/fileutil"
)

/*
Pool lends Writers to transactions. It is the sole serialization point of
the write path: a borrowed handle is exclusively owned by one transaction
until returned or invalidated.

Borrow blocks up to MaxWaitForIdle when all handles are lent out; running
past the bound is a reportable failure, never a crash. Writers share one
serial counter so rotated files number consecutively across the pool.
*/
type Pool struct {
	settings Settings
	sem      *semaphore.Weighted
	serial   atomic.Int32
	hostname string

	mu   sync.Mutex
	idle []*Writer
}

func NewPool(settings Settings) (*Pool, failure.ClassifiedError) {
	settings = settings.withDefaults()
	if err := fileutil.EnsureDir(settings.OutputDir); err != nil {
		return nil, err
	}
	hostname, err := os.Hostname()
	if err != nil {
		settings.Logger.Warn("resolving local hostname for file names", "err", err)
		hostname = "localhost"
	}
	return &Pool{
		settings: settings,
		sem:      semaphore.NewWeighted(int64(settings.PoolMaxActive)),
		hostname: hostname,
	}, nil
}

func (p *Pool) Borrow() (Handle, failure.ClassifiedError) {
	ctx, cancel := context.WithTimeout(context.Background(), p.settings.MaxWaitForIdle)
	defer cancel()
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return nil, &WriteError{Message: err.Error(), Cause: ErrCauseBorrowWait}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if n := len(p.idle); n > 0 {
		w := p.idle[n-1]
		p.idle = p.idle[:n-1]
		return w, nil
	}
	return newWriter(p.settings, &p.serial, p.hostname), nil
}

func (p *Pool) Return(h Handle) {
	w, ok := h.(*Writer)
	if !ok || w == nil {
		return
	}
	p.mu.Lock()
	p.idle = append(p.idle, w)
	p.mu.Unlock()
	p.sem.Release(1)
}

// Invalidate consumes the loan without returning the writer to circulation;
// its current file is marked unusable. A fresh writer takes the slot on the
// next borrow.
func (p *Pool) Invalidate(h Handle) {
	w, ok := h.(*Writer)
	if !ok || w == nil {
		return
	}
	w.invalidate()
	p.sem.Release(1)
}

// Close finishes all idle writers' files cleanly.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var firstErr error
	for _, w := range p.idle {
		if err := w.close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	p.idle = nil
	return firstErr
}
