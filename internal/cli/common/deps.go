// Package common holds what every ark subcommand shares once the root
// command has loaded configuration.
package common

import (
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/agents-at-scale/ark-cli/internal/cli/reporter"
	"github.com/agents-at-scale/ark-cli/internal/config"
	"github.com/agents-at-scale/ark-cli/internal/marketplace"
	"github.com/agents-at-scale/ark-cli/internal/runner"
	"github.com/agents-at-scale/ark-cli/pkg/printer"
)

// Deps is populated by the root command's PersistentPreRunE and handed to
// subcommand constructors by pointer, so commands built before flag parsing
// see the final values.
type Deps struct {
	Config  *config.Config
	Logger  *zap.Logger
	Runner  runner.Runner
	Out     printer.Output
	Catalog *marketplace.Catalog

	// Persisted is Config before command line flags were applied.
	Persisted *config.Config

	// Stdout receives tables and structured output. Nil means os.Stdout.
	Stdout io.Writer
	// Stderr receives progress indicators. Nil means os.Stderr.
	Stderr io.Writer
}

// Reporter returns a reporter bound to the configured runner and kubectl path.
func (d *Deps) Reporter() *reporter.Reporter {
	return reporter.New(d.Runner, d.Out,
		reporter.WithLogger(d.Logger),
		reporter.WithKubectl(d.Config.KubectlPath),
	)
}

// SavedConfig returns the configuration that may be written back to disk.
func (d *Deps) SavedConfig() *config.Config {
	if d.Persisted != nil {
		return d.Persisted
	}
	return d.Config
}

// StdoutWriter returns the writer for command output.
func (d *Deps) StdoutWriter() io.Writer {
	if d.Stdout != nil {
		return d.Stdout
	}
	return os.Stdout
}

// StderrWriter returns the writer for progress output.
func (d *Deps) StderrWriter() io.Writer {
	if d.Stderr != nil {
		return d.Stderr
	}
	return os.Stderr
}

// Printer returns a structured printer writing to StdoutWriter.
func (d *Deps) Printer(t printer.OutputType) *printer.Printer {
	p := printer.New(t)
	p.SetOutput(d.StdoutWriter())
	return p
}
