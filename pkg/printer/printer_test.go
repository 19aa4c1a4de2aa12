package printer

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsole_Channels(t *testing.T) {
	var out, errOut bytes.Buffer
	c := NewConsole(&out, &errOut)

	c.Error("deleting query:", "query not found")
	c.Warning("cluster is slow")
	c.Success("Installed phoenix")
	c.Info("hello")

	assert.Equal(t, "Error: deleting query: query not found\nWarning: cluster is slow\n", errOut.String())
	assert.Equal(t, "✓ Installed phoenix\nhello\n", out.String())
}

func TestParseOutputType(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputType
		wantErr bool
	}{
		{"", OutputTypeTable, false},
		{"JSON", OutputTypeJSON, false},
		{"yaml", OutputTypeYAML, false},
		{"wide", OutputTypeWide, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOutputType(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrinter_Structured(t *testing.T) {
	data := map[string]string{"name": "phoenix"}

	var buf bytes.Buffer
	p := New(OutputTypeJSON)
	p.SetOutput(&buf)
	require.NoError(t, p.Print(data))
	assert.JSONEq(t, `{"name":"phoenix"}`, buf.String())

	buf.Reset()
	p = New(OutputTypeYAML)
	p.SetOutput(&buf)
	require.NoError(t, p.Print(data))
	assert.Equal(t, "name: phoenix\n", buf.String())

	assert.Error(t, New(OutputTypeTable).Print(data))
}

func TestTablePrinter_WideColumns(t *testing.T) {
	render := func(opts ...Option) string {
		var buf bytes.Buffer
		tp := NewTablePrinter(&buf, opts...)
		tp.SetColumns(Column{Name: "Name"}, Column{Name: "Namespace", Wide: true}, Column{Name: "Age"})
		tp.AddRow("q1", "default", "5m")
		require.NoError(t, tp.Render())
		return buf.String()
	}

	narrow := render()
	assert.Contains(t, narrow, "NAME")
	assert.NotContains(t, narrow, "NAMESPACE")
	assert.NotContains(t, narrow, "default")

	wide := render(WithOutputType(OutputTypeWide))
	assert.Contains(t, wide, "NAMESPACE")
	assert.Contains(t, wide, "default")

	lines := strings.Split(strings.TrimSpace(render(WithNoHeaders())), "\n")
	assert.Len(t, lines, 1)
}

func TestFormatAge(t *testing.T) {
	assert.Equal(t, "<unknown>", FormatAge(time.Time{}))
	assert.Equal(t, "2d", FormatAge(time.Now().Add(-49*time.Hour)))
	assert.Equal(t, "3h", FormatAge(time.Now().Add(-3*time.Hour-time.Minute)))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))
	assert.Equal(t, "abcd...", TruncateString("abcdefghij", 7))
	assert.Equal(t, "ab", TruncateString("abcdef", 2))
}
