package printer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"
)

// Output is the line-oriented reporting surface commands write to.
// Error and Warning are separate channels; callers that only fail must
// never touch Warning.
type Output interface {
	Error(args ...any)
	Warning(args ...any)
	Success(args ...any)
	Info(args ...any)
}

// Console writes Output lines with kubectl-style prefixes.
type Console struct {
	out io.Writer
	err io.Writer
}

var _ Output = (*Console)(nil)

// NewConsole returns a Console writing to out and errOut. Nil writers
// default to stdout and stderr.
func NewConsole(out, errOut io.Writer) *Console {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	return &Console{out: out, err: errOut}
}

// Error prints an error message to the error stream
func (c *Console) Error(args ...any) {
	_, _ = fmt.Fprintf(c.err, "Error: %s\n", join(args))
}

// Warning prints a warning message
func (c *Console) Warning(args ...any) {
	_, _ = fmt.Fprintf(c.err, "Warning: %s\n", join(args))
}

// Success prints a success message with kubectl-style formatting
func (c *Console) Success(args ...any) {
	_, _ = fmt.Fprintf(c.out, "✓ %s\n", join(args))
}

// Info prints an info message
func (c *Console) Info(args ...any) {
	_, _ = fmt.Fprintf(c.out, "%s\n", join(args))
}

// join renders args like a console logger: space separated.
func join(args []any) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprint(a)
	}
	return strings.Join(parts, " ")
}

// Printer handles various output formats
type Printer struct {
	out        io.Writer
	outputType OutputType
}

// New creates a new printer with the specified output type
func New(outputType OutputType) *Printer {
	return &Printer{
		out:        os.Stdout,
		outputType: outputType,
	}
}

// SetOutput sets the output writer
func (p *Printer) SetOutput(out io.Writer) {
	p.out = out
}

// Structured reports whether the output type is JSON or YAML.
func (p *Printer) Structured() bool {
	return p.outputType == OutputTypeJSON || p.outputType == OutputTypeYAML
}

// Print writes data as JSON or YAML depending on the output type.
func (p *Printer) Print(data any) error {
	switch p.outputType {
	case OutputTypeJSON:
		return p.PrintJSON(data)
	case OutputTypeYAML:
		return p.PrintYAML(data)
	default:
		return fmt.Errorf("output type %q is not structured", p.outputType)
	}
}

// PrintJSON prints data in JSON format
func (p *Printer) PrintJSON(data any) error {
	encoder := json.NewEncoder(p.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// PrintYAML prints data in YAML format
func (p *Printer) PrintYAML(data any) error {
	encoder := yaml.NewEncoder(p.out)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return err
	}
	return encoder.Close()
}

// ParseOutputType validates a user supplied -o value.
func ParseOutputType(s string) (OutputType, error) {
	switch t := OutputType(strings.ToLower(strings.TrimSpace(s))); t {
	case "":
		return OutputTypeTable, nil
	case OutputTypeTable, OutputTypeWide, OutputTypeJSON, OutputTypeYAML:
		return t, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (use table, wide, json or yaml)", s)
	}
}

// FormatAge formats time.Duration as a kubectl-style age string (e.g., "5d", "3h", "45m")
func FormatAge(t time.Time) string {
	if t.IsZero() {
		return "<unknown>"
	}
	duration := time.Since(t)

	days := int(duration.Hours() / 24)
	if days > 0 {
		return fmt.Sprintf("%dd", days)
	}

	hours := int(duration.Hours())
	if hours > 0 {
		return fmt.Sprintf("%dh", hours)
	}

	minutes := int(duration.Minutes())
	if minutes > 0 {
		return fmt.Sprintf("%dm", minutes)
	}

	seconds := int(duration.Seconds())
	return fmt.Sprintf("%ds", seconds)
}
