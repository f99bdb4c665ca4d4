package tensorrt

import (
	"context"
	"fmt"
	"sync/atomic"
)

// ContextPool manages a fixed set of execution contexts created from one
// engine for safe concurrent use. Each goroutine borrows a context with
// Get, configures and enqueues on its own stream, and returns it with Put.
//
// This supports the native sharing pattern of multiple contexts per engine
// on distinct streams without adding synchronization around individual
// contexts.
//
// Example:
//
//	pool, err := tensorrt.NewContextPool(engine, 4, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pool.Close()
//
//	ec, err := pool.Get(ctx)
//	if err != nil {
//	    return err
//	}
//	defer pool.Put(ec)
type ContextPool struct {
	contexts chan *ExecutionContext
	engine   *Engine
	closed   atomic.Bool

	totalCheckouts atomic.Int64
}

// PoolConfig configures context pool behavior.
type PoolConfig struct {
	// WithoutDeviceMemory creates every context without its own device
	// memory; the caller must bind storage via SetDeviceMemory before use.
	WithoutDeviceMemory bool

	// Hooks are registered on every context in the pool.
	Hooks []Hook
}

// NewContextPool creates a pool of n execution contexts from the given
// engine.
func NewContextPool(engine *Engine, n int, config *PoolConfig) (*ContextPool, error) {
	if n <= 0 {
		return nil, fmt.Errorf("pool size must be positive, got %d", n)
	}

	pool := &ContextPool{
		contexts: make(chan *ExecutionContext, n),
		engine:   engine,
	}

	for i := 0; i < n; i++ {
		var ec *ExecutionContext
		var err error
		if config != nil && config.WithoutDeviceMemory {
			ec, err = engine.NewExecutionContextWithoutDeviceMemory()
		} else {
			ec, err = engine.NewExecutionContext()
		}
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to create context %d: %w", i, err)
		}
		ec.SetName(fmt.Sprintf("pool-%d", i))
		if config != nil {
			for _, h := range config.Hooks {
				ec.AddHook(h)
			}
		}
		pool.contexts <- ec
	}

	return pool, nil
}

// Get borrows a context from the pool, blocking until one is available or
// ctx is cancelled. The context must be returned with Put.
func (p *ContextPool) Get(ctx context.Context) (*ExecutionContext, error) {
	if p.closed.Load() {
		return nil, fmt.Errorf("context pool is closed")
	}

	select {
	case ec := <-p.contexts:
		p.totalCheckouts.Add(1)
		return ec, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Put returns a borrowed context to the pool. Bindings made while borrowed
// remain on the context.
func (p *ContextPool) Put(ec *ExecutionContext) {
	if ec == nil || p.closed.Load() {
		return
	}
	p.contexts <- ec
}

// Size returns the total number of contexts in the pool.
func (p *ContextPool) Size() int {
	return cap(p.contexts)
}

// Available returns the number of idle contexts currently available.
func (p *ContextPool) Available() int {
	return len(p.contexts)
}

// Checkouts returns the total number of successful Get calls.
func (p *ContextPool) Checkouts() int64 {
	return p.totalCheckouts.Load()
}

// Close drains the pool and closes all contexts. Borrowed contexts are not
// waited for; callers must return or close them before closing the engine.
func (p *ContextPool) Close() {
	if !p.closed.CompareAndSwap(false, true) {
		return
	}

	close(p.contexts)
	for ec := range p.contexts {
		ec.Close()
	}
}
