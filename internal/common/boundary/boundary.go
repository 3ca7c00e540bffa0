// Package boundary runs collaborator calls so that neither errors nor
// panics escape into the caller's control flow.
package boundary

import (
	"context"
	"errors"
	"fmt"
)

var ErrPanic = errors.New("COLLABORATOR_PANIC")

// Outcome is either a value or a failure.
type Outcome[T any] struct {
	Value T
	Err   error
}

func (o Outcome[T]) Failed() bool {
	return o.Err != nil
}

// Call invokes fn and converts a panic into an Outcome carrying ErrPanic.
func Call[T any](ctx context.Context, name string, fn func(context.Context) (T, error)) (out Outcome[T]) {
	defer func() {
		if p := recover(); p != nil {
			out = Outcome[T]{Err: fmt.Errorf("%w: %s: %v", ErrPanic, name, p)}
		}
	}()

	v, err := fn(ctx)
	if err != nil {
		return Outcome[T]{Err: err}
	}
	return Outcome[T]{Value: v}
}
