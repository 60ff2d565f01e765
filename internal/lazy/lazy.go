// Package lazy provides a once-constructed, concurrency-safe holder for
// expensive measurement handles
package lazy

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"

	"github.com/edgecli/hostdiag/internal/log"
)

// ErrFactoryPanic is returned when the factory panics instead of returning
var ErrFactoryPanic = errors.New("factory panicked")

// State is the initialization state of a Resource
type State int32

const (
	Uninitialized State = iota
	InProgress
	Ready
	Faulted
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case InProgress:
		return "in-progress"
	case Ready:
		return "ready"
	case Faulted:
		return "faulted"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Policy decides what happens after the factory fails
type Policy int

const (
	// CacheFailure keeps the first error forever (resource becomes Faulted)
	CacheFailure Policy = iota
	// RetryFailure returns the error to the current callers and lets the
	// next Get invoke the factory again
	RetryFailure
)

// Option configures a Resource
type Option func(*options)

type options struct {
	policy Policy
}

// WithRetry selects the RetryFailure policy
func WithRetry() Option {
	return func(o *options) { o.policy = RetryFailure }
}

// Resource holds a value built by its factory on first use.
// Concurrent first callers share a single factory invocation and observe
// the same value or the same error.
type Resource[T any] struct {
	name    string
	factory func() (T, error)
	policy  Policy

	group singleflight.Group
	mu    sync.Mutex
	state atomic.Int32
	value T
	err   error
}

// New creates a Resource named for logs and error context
func New[T any](name string, factory func() (T, error), opts ...Option) *Resource[T] {
	o := options{policy: CacheFailure}
	for _, opt := range opts {
		opt(&o)
	}
	return &Resource[T]{name: name, factory: factory, policy: o.policy}
}

// Get returns the constructed value, building it on the first call
func (r *Resource[T]) Get() (T, error) {
	if r.State() == Ready {
		return r.value, nil
	}

	v, err, _ := r.group.Do(r.name, func() (any, error) {
		return r.construct()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// State returns the current initialization state
func (r *Resource[T]) State() State {
	return State(r.state.Load())
}

// Ready reports whether the value has been constructed
func (r *Resource[T]) Ready() bool { return r.State() == Ready }

// Name returns the name the resource was created with
func (r *Resource[T]) Name() string { return r.name }

func (r *Resource[T]) construct() (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.State() {
	case Ready:
		return r.value, nil
	case Faulted:
		var zero T
		return zero, r.err
	}

	r.state.Store(int32(InProgress))
	v, err := r.build()
	if err != nil {
		err = errors.Wrapf(err, "construct %s", r.name)
		log.Warn("lazy resource construction failed", "resource", r.name, "policy", r.policy, "error", err)
		if r.policy == RetryFailure {
			r.state.Store(int32(Uninitialized))
		} else {
			r.err = err
			r.state.Store(int32(Faulted))
		}
		var zero T
		return zero, err
	}

	// value must be visible before the state flips for the lock-free read in Get
	r.value = v
	r.state.Store(int32(Ready))
	return v, nil
}

func (r *Resource[T]) build() (v T, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = errors.Wrapf(ErrFactoryPanic, "%v", p)
		}
	}()
	return r.factory()
}
