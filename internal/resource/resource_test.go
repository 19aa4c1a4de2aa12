package resource

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDelete(t *testing.T) {
	tests := []struct {
		name     string
		kind     Kind
		resource string
		opts     DeleteOptions
		wantArgs []string
		wantMode Mode
	}{
		{
			name:     "single query",
			kind:     Queries,
			resource: "query-1",
			wantArgs: []string{"delete", "queries", "query-1"},
			wantMode: ModeSingle,
		},
		{
			name:     "all queries",
			kind:     Queries,
			opts:     DeleteOptions{All: true},
			wantArgs: []string{"delete", "queries", "--all"},
			wantMode: ModeAll,
		},
		{
			name:     "all wins over name",
			kind:     Queries,
			resource: "query-1",
			opts:     DeleteOptions{All: true},
			wantArgs: []string{"delete", "queries", "--all"},
			wantMode: ModeAll,
		},
		{
			name:     "other kind",
			kind:     Agents,
			resource: "noah",
			wantArgs: []string{"delete", "agents", "noah"},
			wantMode: ModeSingle,
		},
		{
			name:     "name is trimmed",
			kind:     Teams,
			resource: "  red-team ",
			wantArgs: []string{"delete", "teams", "red-team"},
			wantMode: ModeSingle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, err := BuildDelete(tt.kind, tt.resource, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.wantArgs, op.Args())
			assert.Equal(t, tt.wantMode, op.Mode)
			assert.Equal(t, tt.kind, op.Kind)
		})
	}
}

func TestBuildDelete_AllIgnoresName(t *testing.T) {
	op, err := BuildDelete(Queries, "query-1", DeleteOptions{All: true})
	require.NoError(t, err)
	assert.Empty(t, op.Name)
}

func TestBuildDelete_UsageError(t *testing.T) {
	for _, name := range []string{"", "   "} {
		_, err := BuildDelete(Queries, name, DeleteOptions{})
		require.Error(t, err)

		var usageErr *UsageError
		require.True(t, errors.As(err, &usageErr))
		assert.Equal(t, "Either provide a query name or use --all flag", usageErr.Message)
	}

	_, err := BuildDelete(Models, "", DeleteOptions{})
	assert.EqualError(t, err, "Either provide a model name or use --all flag")
}

func TestOperationAction(t *testing.T) {
	op, err := BuildDelete(Queries, "q", DeleteOptions{})
	require.NoError(t, err)
	assert.Equal(t, "deleting query", op.Action())
}
