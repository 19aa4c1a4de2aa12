// Package reporter executes built operations and turns their outcome into
// user-facing output and an exit status.
//
// Every failure is reported exactly once on the error channel and returned
// as a silent exitcode.ExitError so the root command does not print it again.
package reporter

import (
	"context"

	"go.uber.org/zap"

	"github.com/agents-at-scale/ark-cli/internal/exitcode"
	"github.com/agents-at-scale/ark-cli/internal/kubectl"
	"github.com/agents-at-scale/ark-cli/internal/resource"
	"github.com/agents-at-scale/ark-cli/internal/runner"
	"github.com/agents-at-scale/ark-cli/pkg/printer"
)

// Reporter runs external commands on behalf of CLI commands. It holds no
// per-call state and may be reused.
type Reporter struct {
	runner  runner.Runner
	out     printer.Output
	logger  *zap.Logger
	kubectl string
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Reporter) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithKubectl overrides the kubectl program used for resource operations.
func WithKubectl(path string) Option {
	return func(r *Reporter) {
		if path != "" {
			r.kubectl = path
		}
	}
}

// New returns a Reporter that executes through run and reports to out.
func New(run runner.Runner, out printer.Output, opts ...Option) *Reporter {
	r := &Reporter{
		runner:  run,
		out:     out,
		logger:  zap.NewNop(),
		kubectl: kubectl.DefaultProgram,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Fail reports message on the error channel and returns the matching exit error.
func (r *Reporter) Fail(message string) error {
	r.out.Error(message)
	return exitcode.Silent(exitcode.CliError)
}

// Run executes program and reports a failure as "<action>: <message>".
// The returned Result is only meaningful when err is nil.
func (r *Reporter) Run(ctx context.Context, action, program string, args ...string) (runner.Result, error) {
	res, err := r.runner.Run(ctx, program, args...)
	if err != nil {
		r.logger.Debug("command failed",
			zap.String("action", action),
			zap.String("program", program),
			zap.Strings("args", args),
			zap.Error(err),
		)
		r.out.Error(action+":", err.Error())
		return runner.Result{}, exitcode.Silent(exitcode.CliError)
	}
	return res, nil
}

// Execute runs a built resource operation through kubectl.
func (r *Reporter) Execute(ctx context.Context, op resource.Operation) (runner.Result, error) {
	return r.Run(ctx, op.Action(), r.kubectl, op.Args()...)
}

// Delete builds the delete operation for kind and executes it. An invalid
// name/--all combination is reported without running anything.
func (r *Reporter) Delete(ctx context.Context, kind resource.Kind, name string, opts resource.DeleteOptions) (runner.Result, error) {
	op, err := resource.BuildDelete(kind, name, opts)
	if err != nil {
		return runner.Result{}, r.Fail(err.Error())
	}
	return r.Execute(ctx, op)
}
