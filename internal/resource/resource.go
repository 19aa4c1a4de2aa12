// Package resource turns a resource reference (a name or --all) into a
// declarative cluster operation. Nothing here talks to the cluster.
package resource

import (
	"fmt"
	"strings"
)

// Kind identifies a cluster resource collection. Kinds are fixed per
// command and never derived from user input.
type Kind struct {
	// Plural is the name kubectl knows the collection by, e.g. "queries".
	Plural string

	// Singular is used in user-facing messages, e.g. "query".
	Singular string
}

func (k Kind) String() string {
	return k.Plural
}

// Kinds managed by the CLI.
var (
	Queries = Kind{Plural: "queries", Singular: "query"}
	Agents  = Kind{Plural: "agents", Singular: "agent"}
	Teams   = Kind{Plural: "teams", Singular: "team"}
	Models  = Kind{Plural: "models", Singular: "model"}
	Tools   = Kind{Plural: "tools", Singular: "tool"}
)

// Mode selects between a single named resource and the whole collection.
type Mode int

const (
	ModeSingle Mode = iota
	ModeAll
)

func (m Mode) String() string {
	switch m {
	case ModeSingle:
		return "single"
	case ModeAll:
		return "all"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// DeleteOptions are the flags accepted by delete commands.
type DeleteOptions struct {
	All bool
}

// Operation is a built, not yet executed, delete of one or all resources of a kind.
type Operation struct {
	Kind Kind
	Mode Mode

	// Name is empty in ModeAll.
	Name string
}

// Args returns the kubectl arguments for the operation.
func (o Operation) Args() []string {
	if o.Mode == ModeAll {
		return []string{"delete", o.Kind.Plural, "--all"}
	}
	return []string{"delete", o.Kind.Plural, o.Name}
}

// Action names the operation in error reports, e.g. "deleting query".
func (o Operation) Action() string {
	return "deleting " + o.Kind.Singular
}

// UsageError reports an invalid combination of arguments. It is raised
// before anything is executed.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}

// BuildDelete validates the name/--all combination for kind. When both are
// given, --all wins and name is ignored.
func BuildDelete(kind Kind, name string, opts DeleteOptions) (Operation, error) {
	if opts.All {
		return Operation{Kind: kind, Mode: ModeAll}, nil
	}
	if name = strings.TrimSpace(name); name != "" {
		return Operation{Kind: kind, Mode: ModeSingle, Name: name}, nil
	}
	return Operation{}, &UsageError{
		Message: fmt.Sprintf("Either provide a %s name or use --all flag", kind.Singular),
	}
}
