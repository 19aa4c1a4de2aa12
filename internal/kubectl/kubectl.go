// Package kubectl builds kubectl invocations that are not plain deletes and
// decodes their JSON output into unstructured objects.
package kubectl

import (
	"fmt"
	"strings"
	"time"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/agents-at-scale/ark-cli/internal/resource"
)

// DefaultProgram is the kubectl binary looked up in PATH.
const DefaultProgram = "kubectl"

// ListArgs returns the arguments for listing every resource of kind as JSON.
func ListArgs(kind resource.Kind) []string {
	return []string{"get", kind.Plural, "-o", "json"}
}

// Item is the subset of a resource shown by list commands.
type Item struct {
	Name      string    `json:"name" yaml:"name"`
	Namespace string    `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Phase     string    `json:"phase,omitempty" yaml:"phase,omitempty"`
	Message   string    `json:"message,omitempty" yaml:"message,omitempty"`
	Created   time.Time `json:"created" yaml:"created"`
}

// DecodeList parses `kubectl get -o json` output. Both List documents and
// single objects are accepted.
func DecodeList(data []byte) ([]unstructured.Unstructured, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, nil
	}

	obj := &unstructured.Unstructured{}
	if err := obj.UnmarshalJSON([]byte(trimmed)); err != nil {
		return nil, fmt.Errorf("failed to decode kubectl output: %w", err)
	}
	if !obj.IsList() {
		return []unstructured.Unstructured{*obj}, nil
	}

	list, err := obj.ToList()
	if err != nil {
		return nil, fmt.Errorf("failed to decode kubectl list: %w", err)
	}
	return list.Items, nil
}

// Summarize extracts the fields list commands display.
func Summarize(objs []unstructured.Unstructured) []Item {
	items := make([]Item, 0, len(objs))
	for i := range objs {
		obj := &objs[i]
		phase, _, _ := unstructured.NestedString(obj.Object, "status", "phase")
		message, _, _ := unstructured.NestedString(obj.Object, "status", "message")
		items = append(items, Item{
			Name:      obj.GetName(),
			Namespace: obj.GetNamespace(),
			Phase:     phase,
			Message:   message,
			Created:   obj.GetCreationTimestamp().Time,
		})
	}
	return items
}
