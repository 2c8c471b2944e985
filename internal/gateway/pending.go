package gateway

import "context"

// Pending is the eventual single outcome of an operation started with Go.
type Pending[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Go runs fn on its own goroutine and returns immediately. fn receives ctx
// unchanged; nothing here cancels it.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Pending[T] {
	p := &Pending[T]{done: make(chan struct{})}
	go func() {
		defer close(p.done)
		p.val, p.err = fn(ctx)
	}()
	return p
}

// Done is closed once the outcome is available.
func (p *Pending[T]) Done() <-chan struct{} { return p.done }

// Wait blocks until the outcome is available or ctx ends. Giving up on the
// wait does not stop the operation.
func (p *Pending[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-p.done:
		return p.val, p.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
