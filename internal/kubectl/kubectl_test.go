package kubectl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agents-at-scale/ark-cli/internal/resource"
)

const queryList = `{
  "apiVersion": "v1",
  "kind": "List",
  "items": [
    {
      "apiVersion": "ark.mckinsey.com/v1alpha1",
      "kind": "Query",
      "metadata": {
        "name": "query-1",
        "namespace": "default",
        "creationTimestamp": "2025-01-02T03:04:05Z"
      },
      "status": {"phase": "done"}
    },
    {
      "apiVersion": "ark.mckinsey.com/v1alpha1",
      "kind": "Query",
      "metadata": {"name": "query-2", "namespace": "team-a"},
      "status": {"phase": "error", "message": "model unavailable"}
    }
  ]
}`

func TestListArgs(t *testing.T) {
	assert.Equal(t, []string{"get", "queries", "-o", "json"}, ListArgs(resource.Queries))
}

func TestDecodeList(t *testing.T) {
	objs, err := DecodeList([]byte(queryList))
	require.NoError(t, err)
	require.Len(t, objs, 2)

	items := Summarize(objs)
	assert.Equal(t, "query-1", items[0].Name)
	assert.Equal(t, "default", items[0].Namespace)
	assert.Equal(t, "done", items[0].Phase)
	assert.Equal(t, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), items[0].Created.UTC())

	assert.Equal(t, "query-2", items[1].Name)
	assert.Equal(t, "error", items[1].Phase)
	assert.Equal(t, "model unavailable", items[1].Message)
	assert.True(t, items[1].Created.IsZero())
}

func TestDecodeList_SingleObject(t *testing.T) {
	objs, err := DecodeList([]byte(`{"apiVersion":"ark.mckinsey.com/v1alpha1","kind":"Agent","metadata":{"name":"noah"}}`))
	require.NoError(t, err)
	require.Len(t, objs, 1)
	assert.Equal(t, "noah", objs[0].GetName())
}

func TestDecodeList_Empty(t *testing.T) {
	objs, err := DecodeList([]byte("  \n"))
	require.NoError(t, err)
	assert.Empty(t, objs)

	objs, err = DecodeList([]byte(`{"apiVersion":"v1","kind":"List","items":[]}`))
	require.NoError(t, err)
	assert.Empty(t, objs)
}

func TestDecodeList_Invalid(t *testing.T) {
	_, err := DecodeList([]byte("No resources found"))
	assert.Error(t, err)
}
