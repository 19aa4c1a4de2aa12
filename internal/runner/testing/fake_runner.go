// Package testing provides test utilities for code that shells out through runner.Runner.
package testing

import (
	"context"
	"sync"

	"github.com/agents-at-scale/ark-cli/internal/runner"
)

// Call records a single invocation of FakeRunner.Run.
type Call struct {
	Program string
	Args    []string
}

// FakeRunner is a configurable fake implementation of runner.Runner for testing.
// It supports both data-driven setup via struct fields and a function hook for custom behavior.
type FakeRunner struct {
	mu sync.Mutex

	// Data fields for simple data-driven tests
	Result runner.Result
	Err    error

	// Calls made so far, in order
	Calls []Call

	// Function hook for custom behavior (takes precedence over data fields when set)
	RunFn func(ctx context.Context, program string, args ...string) (runner.Result, error)
}

var _ runner.Runner = (*FakeRunner)(nil)

// NewFakeRunner returns a FakeRunner that succeeds with empty output.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{}
}

// Run records the call and returns the configured outcome.
func (f *FakeRunner) Run(ctx context.Context, program string, args ...string) (runner.Result, error) {
	f.mu.Lock()
	f.Calls = append(f.Calls, Call{Program: program, Args: append([]string(nil), args...)})
	fn := f.RunFn
	result, err := f.Result, f.Err
	f.mu.Unlock()

	if fn != nil {
		return fn(ctx, program, args...)
	}
	return result, err
}

// CallCount returns the number of recorded invocations.
func (f *FakeRunner) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Calls)
}

// LastCall returns the most recent invocation. It panics if Run was never called.
func (f *FakeRunner) LastCall() Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Calls[len(f.Calls)-1]
}
