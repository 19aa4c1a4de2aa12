// Package testing provides a recording printer.Output for tests.
package testing

import (
	"fmt"
	"strings"
	"sync"

	"github.com/agents-at-scale/ark-cli/pkg/printer"
)

// Recorder captures every Output call, keeping the original arguments.
type Recorder struct {
	mu        sync.Mutex
	Errors    [][]any
	Warnings  [][]any
	Successes [][]any
	Infos     [][]any
}

var _ printer.Output = (*Recorder)(nil)

func (r *Recorder) Error(args ...any)   { r.record(&r.Errors, args) }
func (r *Recorder) Warning(args ...any) { r.record(&r.Warnings, args) }
func (r *Recorder) Success(args ...any) { r.record(&r.Successes, args) }
func (r *Recorder) Info(args ...any)    { r.record(&r.Infos, args) }

func (r *Recorder) record(dst *[][]any, args []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	*dst = append(*dst, append([]any(nil), args...))
}

// ErrorLines returns each recorded error joined the way Console prints it.
func (r *Recorder) ErrorLines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return lines(r.Errors)
}

// InfoLines returns each recorded info message joined with spaces.
func (r *Recorder) InfoLines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return lines(r.Infos)
}

func lines(calls [][]any) []string {
	out := make([]string, len(calls))
	for i, args := range calls {
		parts := make([]string, len(args))
		for j, a := range args {
			parts[j] = fmt.Sprint(a)
		}
		out[i] = strings.Join(parts, " ")
	}
	return out
}
