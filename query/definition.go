// Package query turns lines of text into executed analytical queries: a
// closed registry of query-type definitions, a tokenising parser, an
// instance list sortable by (type, line) and the dispatcher driving the
// two-phase prepare/execute contract.
package query

import (
	"github.com/pkg/errors"

	"github.com/JosLopes/LI3-sub000/database"
	"github.com/JosLopes/LI3-sub000/output"
)

type (
	// Arguments is the type-specific parsed-arguments blob of one instance.
	Arguments any

	// Statistics is the type-specific blob shared by all instances of one
	// type within one dispatch run.
	Statistics any
)

// Definition bundles the callbacks every query type must provide. Blob
// lifetimes are owned by the garbage collector, so there are no free
// callbacks.
type Definition struct {
	// Code is the small positive integer naming the type in input.
	Code int

	// ParseArguments turns the argument vector into the type's blob. An
	// error means malformed input.
	ParseArguments func(args []string) (Arguments, error)

	// CloneArguments deep-copies the blob.
	CloneArguments func(args Arguments) Arguments

	// GenerateStatistics, when non-nil, runs once per dispatch run with all
	// instances of the type, so a single database pass can be amortised
	// across them. An error skips the whole run.
	GenerateStatistics func(db *database.Database, instances []*Instance) (Statistics, error)

	// Execute answers one instance. It must not fail for user-input reasons;
	// an error is an internal bug and is logged without aborting dispatch.
	Execute func(db *database.Database, stats Statistics, instance *Instance, w output.Writer) error
}

// NewRegistry creates new empty query type registry.
func NewRegistry() *Registry {
	return &Registry{
		defs: map[int]*Definition{},
	}
}

// Registry is the closed, ordered set of query-type definitions, indexed by
// type code. It is built once at startup and read-only afterwards.
type Registry struct {
	defs  map[int]*Definition
	codes []int
}

// Register adds a definition under its code.
func (r *Registry) Register(def *Definition) error {
	switch {
	case def.Code <= 0:
		return errors.Errorf("query type code %d must be positive", def.Code)
	case r.defs[def.Code] != nil:
		return errors.Errorf("query type %d registered twice", def.Code)
	}
	r.defs[def.Code] = def
	r.codes = append(r.codes, def.Code)
	return nil
}

// Get returns the definition of the code, or nil when the code is unknown.
func (r *Registry) Get(code int) *Definition {
	return r.defs[code]
}

// Codes returns the registered codes in registration order.
func (r *Registry) Codes() []int {
	return r.codes
}
