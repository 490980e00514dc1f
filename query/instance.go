package query

import (
	"github.com/outofforest/mass"
)

// Instance is one parsed query: its definition, the formatted-output flag,
// the source line it came from and the type-specific arguments blob.
// Instances are slab-allocated by the parser.
type Instance struct {
	def *Definition

	// Formatted selects the writer's formatted mode instead of the
	// delimited one.
	Formatted bool

	// Line is the 1-based source line the query was parsed from. Lines are
	// unique within one input, which makes the (code, line) sort stable.
	Line uint32

	// Args is the blob produced by the definition's ParseArguments.
	Args Arguments
}

// Definition returns the instance's query-type definition.
func (i *Instance) Definition() *Definition {
	return i.def
}

// Code returns the instance's query-type code.
func (i *Instance) Code() int {
	return i.def.Code
}

// Clone deep-copies the instance, allocating the copy from the same kind of
// slab the parser uses.
func (i *Instance) Clone(massInstance *mass.Mass[Instance]) *Instance {
	clone := massInstance.New()
	clone.def = i.def
	clone.Formatted = i.Formatted
	clone.Line = i.Line
	clone.Args = i.def.CloneArguments(i.Args)
	return clone
}
