package common

import (
	"context"
	"sync"
)

// Task is the handle of an asynchronous SDK call. Callers may wait on it
// or drop it; dropping it is the fire-and-forget default.
type Task[T any] struct {
	once sync.Once
	done chan struct{}
	val  T
	err  error
}

func newTask[T any]() *Task[T] {
	return &Task[T]{done: make(chan struct{})}
}

func resolvedTask[T any](val T, err error) *Task[T] {
	t := newTask[T]()
	t.resolve(val, err)
	return t
}

func (t *Task[T]) resolve(val T, err error) {
	t.once.Do(func() {
		t.val, t.err = val, err
		close(t.done)
	})
}

// Done returns a channel that is closed when the task resolves.
func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task resolves or ctx is done.
func (t *Task[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.val, t.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Result returns the outcome without blocking. done is false while the
// task is still pending.
func (t *Task[T]) Result() (val T, done bool, err error) {
	select {
	case <-t.done:
		return t.val, true, t.err
	default:
		var zero T
		return zero, false, nil
	}
}
