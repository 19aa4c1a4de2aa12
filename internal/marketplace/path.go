package marketplace

import "strings"

// Prefix is the first segment of every marketplace path.
const Prefix = "marketplace"

// Kind is a catalog partition.
type Kind string

const (
	KindServices Kind = "services"
	KindAgents   Kind = "agents"
)

// Path is a parsed marketplace/<kind>/<key> reference.
type Path struct {
	Kind Kind
	Key  string
}

func (p Path) String() string {
	return Prefix + "/" + string(p.Kind) + "/" + p.Key
}

// ParsePath checks the shape of a marketplace path: exactly three
// segments, the literal prefix, and a known partition.
func ParsePath(s string) (Path, bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 || parts[0] != Prefix || parts[2] == "" {
		return Path{}, false
	}
	kind := Kind(parts[1])
	if kind != KindServices && kind != KindAgents {
		return Path{}, false
	}
	return Path{Kind: kind, Key: parts[2]}, true
}
