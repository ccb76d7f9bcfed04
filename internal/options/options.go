// Package options implements the generic functional option pattern used by the
// decoder configuration.
package options

import "fmt"

// Option configures a target of type T.
type Option[T any] interface {
	apply(T) error
}

// Func is a functional option wrapping a function. When named, errors returned
// by the function are prefixed with the option name.
type Func[T any] struct {
	applyFunc func(T) error
	name      string
}

func (f *Func[T]) apply(target T) error {
	err := f.applyFunc(target)
	if err != nil && f.name != "" {
		return fmt.Errorf("%s: %w", f.name, err)
	}

	return err
}

// Name returns the option name, empty for anonymous options.
func (f *Func[T]) Name() string {
	return f.name
}

// New creates an anonymous option from a function that may fail.
func New[T any](fn func(T) error) *Func[T] {
	return &Func[T]{applyFunc: fn}
}

// Named creates an option whose errors are reported with its name.
func Named[T any](name string, fn func(T) error) *Func[T] {
	return &Func[T]{applyFunc: fn, name: name}
}

// NoError creates an option from a function that cannot fail.
func NoError[T any](fn func(T)) *Func[T] {
	return &Func[T]{
		applyFunc: func(target T) error {
			fn(target)
			return nil
		},
	}
}

// Apply applies opts to target in order and stops at the first error.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}
