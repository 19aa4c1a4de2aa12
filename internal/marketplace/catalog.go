// Package marketplace resolves logical marketplace paths such as
// "marketplace/services/phoenix" against a read-only catalog of
// installable services and agents.
package marketplace

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"golang.org/x/mod/semver"
)

// DefaultNamespace is used for entries that do not name one.
const DefaultNamespace = "default"

// Entry describes an installable service or agent.
type Entry struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Namespace   string `json:"namespace,omitempty" yaml:"namespace,omitempty"`

	// Chart is a full chart reference. When empty it is derived from the
	// marketplace registry and the entry name.
	Chart       string `json:"chart,omitempty" yaml:"chart,omitempty"`
	Version     string `json:"version,omitempty" yaml:"version,omitempty"`
	ReleaseName string `json:"releaseName,omitempty" yaml:"releaseName,omitempty"`
	Homepage    string `json:"homepage,omitempty" yaml:"homepage,omitempty"`
}

// TargetNamespace returns the namespace the entry installs into.
func (e Entry) TargetNamespace() string {
	if e.Namespace == "" {
		return DefaultNamespace
	}
	return e.Namespace
}

// Release returns the helm release name for the entry.
func (e Entry) Release() string {
	if e.ReleaseName == "" {
		return e.Name
	}
	return e.ReleaseName
}

// ChartRef returns the chart to install, falling back to registry/<name>.
func (e Entry) ChartRef(registry string) string {
	if e.Chart != "" {
		return e.Chart
	}
	return strings.TrimSuffix(registry, "/") + "/" + e.Name
}

// Catalog is an immutable two-partition catalog. Build one with New or Load
// and share it freely; nothing mutates it after construction.
type Catalog struct {
	services map[string]Entry
	agents   map[string]Entry
}

// New builds a catalog from the two partitions. Keys must be disjoint
// across partitions and entries must carry a name.
func New(services, agents map[string]Entry) (*Catalog, error) {
	for key := range services {
		if _, dup := agents[key]; dup {
			return nil, fmt.Errorf("catalog key %q is both a service and an agent", key)
		}
	}
	c := &Catalog{
		services: maps.Clone(services),
		agents:   maps.Clone(agents),
	}
	if c.services == nil {
		c.services = map[string]Entry{}
	}
	if c.agents == nil {
		c.agents = map[string]Entry{}
	}
	if err := validatePartition(KindServices, c.services); err != nil {
		return nil, err
	}
	if err := validatePartition(KindAgents, c.agents); err != nil {
		return nil, err
	}
	return c, nil
}

func validatePartition(kind Kind, entries map[string]Entry) error {
	for key, e := range entries {
		if key == "" || strings.Contains(key, "/") {
			return fmt.Errorf("%s: invalid key %q", kind, key)
		}
		if e.Name == "" {
			return fmt.Errorf("%s/%s: name is required", kind, key)
		}
		if e.Version != "" && !semver.IsValid(canonicalVersion(e.Version)) {
			return fmt.Errorf("%s/%s: invalid chart version %q", kind, key, e.Version)
		}
	}
	return nil
}

// canonicalVersion adds the "v" prefix x/mod/semver expects.
func canonicalVersion(v string) string {
	if strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}

// Resolve returns the entry addressed by path, or false when the path is
// malformed, names an unknown partition, or the key is absent. It never
// falls back to the other partition.
func (c *Catalog) Resolve(path string) (Entry, bool) {
	p, ok := ParsePath(path)
	if !ok {
		return Entry{}, false
	}
	e, ok := c.partition(p.Kind)[p.Key]
	return e, ok
}

// IsRecognized reports whether path has the marketplace shape with a known
// partition. It is only the shape check from ParsePath and does not consult
// the entries; Resolve is the lookup and stays separate from it.
func (c *Catalog) IsRecognized(path string) bool {
	_, ok := ParsePath(path)
	return ok
}

// Services returns a snapshot of the services partition.
func (c *Catalog) Services() map[string]Entry {
	return maps.Clone(c.services)
}

// Agents returns a snapshot of the agents partition.
func (c *Catalog) Agents() map[string]Entry {
	return maps.Clone(c.agents)
}

// Entries returns a snapshot of the kind's partition.
func (c *Catalog) Entries(kind Kind) map[string]Entry {
	return maps.Clone(c.partition(kind))
}

// Keys returns the sorted keys of the kind's partition.
func (c *Catalog) Keys(kind Kind) []string {
	return slices.Sorted(maps.Keys(c.partition(kind)))
}

func (c *Catalog) partition(kind Kind) map[string]Entry {
	switch kind {
	case KindServices:
		return c.services
	case KindAgents:
		return c.agents
	default:
		return nil
	}
}
