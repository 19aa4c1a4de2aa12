package printer

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
)

// OutputType defines the output format
type OutputType string

const (
	// OutputTypeTable outputs in table format (default)
	OutputTypeTable OutputType = "table"
	// OutputTypeWide outputs in table format with additional columns
	OutputTypeWide OutputType = "wide"
	// OutputTypeJSON outputs in JSON format
	OutputTypeJSON OutputType = "json"
	// OutputTypeYAML outputs in YAML format
	OutputTypeYAML OutputType = "yaml"
)

// Column is a table header. Wide columns are only rendered in wide output.
type Column struct {
	Name string
	Wide bool
}

// TablePrinter handles formatted table output similar to kubectl
type TablePrinter struct {
	writer    *tabwriter.Writer
	columns   []Column
	rows      [][]string
	noHeaders bool
	wide      bool
}

// Option configures the TablePrinter
type Option func(*TablePrinter)

// WithNoHeaders disables header output
func WithNoHeaders() Option {
	return func(p *TablePrinter) {
		p.noHeaders = true
	}
}

// WithOutputType enables wide output when t is OutputTypeWide.
func WithOutputType(t OutputType) Option {
	return func(p *TablePrinter) {
		p.wide = p.wide || t == OutputTypeWide
	}
}

// NewTablePrinter creates a new table printer with kubectl-style formatting
// It uses tabwriter for clean column alignment with minimal styling
func NewTablePrinter(out io.Writer, opts ...Option) *TablePrinter {
	if out == nil {
		out = os.Stdout
	}

	p := &TablePrinter{
		writer: tabwriter.NewWriter(out, 0, 0, 3, ' ', 0),
		rows:   make([][]string, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// SetColumns sets headers that may include wide-only columns.
func (p *TablePrinter) SetColumns(columns ...Column) {
	p.columns = columns
}

// AddRow adds a data row to the table. Values line up with the columns,
// including wide ones.
func (p *TablePrinter) AddRow(values ...any) {
	row := make([]string, len(values))
	for i, v := range values {
		row[i] = fmt.Sprintf("%v", v)
	}
	p.rows = append(p.rows, row)
}

// Render outputs the formatted table
func (p *TablePrinter) Render() error {
	if len(p.rows) == 0 && len(p.columns) == 0 {
		return nil
	}

	visible := p.visibleColumns()

	if !p.noHeaders && len(p.columns) > 0 {
		names := make([]string, 0, len(visible))
		for _, i := range visible {
			names = append(names, p.columns[i].Name)
		}
		_, _ = fmt.Fprintln(p.writer, strings.ToUpper(strings.Join(names, "\t")))
	}

	for _, row := range p.rows {
		cells := row
		if len(p.columns) > 0 {
			cells = make([]string, 0, len(visible))
			for _, i := range visible {
				if i < len(row) {
					cells = append(cells, row[i])
				}
			}
		}
		_, _ = fmt.Fprintln(p.writer, strings.Join(cells, "\t"))
	}

	return p.writer.Flush()
}

func (p *TablePrinter) visibleColumns() []int {
	idx := make([]int, 0, len(p.columns))
	for i, c := range p.columns {
		if c.Wide && !p.wide {
			continue
		}
		idx = append(idx, i)
	}
	return idx
}

// TruncateString truncates a string to maxLen with ellipsis
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// EmptyValueOrDefault returns the value or a default placeholder
func EmptyValueOrDefault(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
