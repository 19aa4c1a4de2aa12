// Package runner executes external programs (kubectl, helm) with captured
// output. Commands depend on the Runner interface so tests can substitute it.
package runner

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Result is the captured output of a successful invocation.
type Result struct {
	Stdout string
	Stderr string
}

// Runner runs a program with arguments and captures its output.
type Runner interface {
	Run(ctx context.Context, program string, args ...string) (Result, error)
}

// Error describes a failed invocation. Error() is always the user-facing
// message: the program's stderr when it wrote one, otherwise the cause.
type Error struct {
	Program string
	Args    []string
	Stderr  string
	Err     error
}

func (e *Error) Error() string {
	if msg := strings.TrimSpace(e.Stderr); msg != "" {
		return msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s %s failed", e.Program, strings.Join(e.Args, " "))
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ExecRunner runs programs with os/exec.
type ExecRunner struct {
	logger *zap.Logger
}

// NewExecRunner returns a Runner backed by os/exec. A nil logger disables
// invocation logging.
func NewExecRunner(logger *zap.Logger) *ExecRunner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExecRunner{logger: logger}
}

// Run executes program and waits for it to exit. Output is never passed
// through to the terminal.
func (r *ExecRunner) Run(ctx context.Context, program string, args ...string) (Result, error) {
	start := time.Now()
	cmd := exec.CommandContext(ctx, program, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	r.logger.Debug("ran external command",
		zap.String("program", program),
		zap.Strings("args", args),
		zap.Duration("duration", time.Since(start)),
		zap.Error(err),
	)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%s interrupted: %w", program, ctxErr)
		}
		return Result{}, &Error{
			Program: program,
			Args:    args,
			Stderr:  stderr.String(),
			Err:     err,
		}
	}

	return Result{Stdout: stdout.String(), Stderr: stderr.String()}, nil
}

// Available reports whether program can be found in PATH.
func Available(program string) bool {
	_, err := exec.LookPath(program)
	return err == nil
}
