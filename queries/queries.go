// Package queries implements the closed catalogue of analytical query types
// answered by the engine. Each type satisfies the query.Definition contract:
// parse and clone of its arguments blob, an optional batched statistics
// preparation amortising one database pass across a dispatch run, and the
// per-instance execution writing output records.
package queries

import (
	"github.com/JosLopes/LI3-sub000/query"
)

// NewRegistry builds the registry of all query types.
func NewRegistry() (*query.Registry, error) {
	registry := query.NewRegistry()
	for _, def := range []*query.Definition{
		entityDetailsDefinition(),
		userHistoryDefinition(),
		hotelRatingDefinition(),
		hotelReservationsDefinition(),
		airportFlightsDefinition(),
		topAirportsByPassengersDefinition(),
		topAirportsByDelayDefinition(),
		hotelRevenueDefinition(),
		namePrefixDefinition(),
	} {
		if err := registry.Register(def); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
