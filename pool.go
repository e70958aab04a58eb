package teachtoeach

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps browser instances to limit memory (~200MB each).
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// ExporterPool hands out Exporters for parallel builds. Each exporter owns
// its own browser. Exporters are created lazily on first acquire.
type ExporterPool struct {
	size      int
	newFn     func() Exporter
	exporters []Exporter
	sem       chan Exporter
	mu        sync.Mutex
	created   int
	closed    bool
}

// NewExporterPool creates a pool with capacity for n exporters built by
// newFn. A nil newFn builds default RodExporters.
func NewExporterPool(n int, newFn func() Exporter) *ExporterPool {
	if n < 1 {
		n = 1
	}
	if newFn == nil {
		newFn = func() Exporter { return NewExporter() }
	}

	return &ExporterPool{
		size:      n,
		newFn:     newFn,
		exporters: make([]Exporter, 0, n),
		sem:       make(chan Exporter, n),
	}
}

// Acquire gets an exporter, creating one if capacity allows. Blocks until
// one is released or ctx is done.
func (p *ExporterPool) Acquire(ctx context.Context) (Exporter, error) {
	select {
	case exp, ok := <-p.sem:
		if !ok {
			return nil, ErrExporterPoolDone
		}
		return exp, nil
	default:
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrExporterPoolDone
	}
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		exp := p.newFn()

		p.mu.Lock()
		p.exporters = append(p.exporters, exp)
		p.mu.Unlock()

		return exp, nil
	}
	p.mu.Unlock()

	select {
	case exp, ok := <-p.sem:
		if !ok {
			return nil, ErrExporterPoolDone
		}
		return exp, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Release returns an exporter to the pool.
// The lock is held while sending; the channel has room for every exporter.
func (p *ExporterPool) Release(exp Exporter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.sem <- exp
}

// Close releases every browser. Returns the joined close errors.
func (p *ExporterPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	exporters := p.exporters
	p.mu.Unlock()

	var errs []error
	for _, exp := range exporters {
		if err := exp.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *ExporterPool) Size() int {
	return p.size
}

// ResolvePoolSize determines the worker count.
// Priority: explicit workers > GOMAXPROCS-based calculation.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs in containers.
	n := runtime.GOMAXPROCS(0) / cpuDivisor

	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
