package queries

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/JosLopes/LI3-sub000/database"
	"github.com/JosLopes/LI3-sub000/output"
	"github.com/JosLopes/LI3-sub000/query"
	"github.com/JosLopes/LI3-sub000/types"
)

// airportFlightsFilter is the canonical filter tuple of a Q05 query.
// Identical filters within one run share one bucket.
type airportFlightsFilter struct {
	origin types.AirportCode
	begin  types.DateTime
	end    types.DateTime
}

func airportFlightsDefinition() *query.Definition {
	return &query.Definition{
		Code:           5,
		ParseArguments: parseAirportFlightsArguments,
		CloneArguments: func(args query.Arguments) query.Arguments {
			clone := *args.(*airportFlightsFilter)
			return &clone
		},
		GenerateStatistics: generateAirportFlightsStatistics,
		Execute:            executeAirportFlights,
	}
}

func parseAirportFlightsArguments(args []string) (query.Arguments, error) {
	if len(args) != 3 {
		return nil, errors.Errorf("airport flights take origin, begin and end, got %d arguments", len(args))
	}
	origin, err := types.ParseAirportCode([]byte(args[0]))
	if err != nil {
		return nil, err
	}
	begin, err := types.ParseDateTime([]byte(args[1]))
	if err != nil {
		return nil, err
	}
	end, err := types.ParseDateTime([]byte(args[2]))
	if err != nil {
		return nil, err
	}
	return &airportFlightsFilter{origin: origin, begin: begin, end: end}, nil
}

func generateAirportFlightsStatistics(
	db *database.Database, instances []*query.Instance,
) (query.Statistics, error) {
	buckets := map[airportFlightsFilter][]*database.Flight{}
	for _, instance := range instances {
		filter := *instance.Args.(*airportFlightsFilter)
		if _, ok := buckets[filter]; !ok {
			buckets[filter] = []*database.Flight{}
		}
	}

	for f := range db.Flights().All() {
		for filter, bucket := range buckets {
			if f.Origin == filter.origin &&
				f.ScheduledDeparture >= filter.begin && f.ScheduledDeparture <= filter.end {
				buckets[filter] = append(bucket, f)
			}
		}
	}

	for _, bucket := range buckets {
		sort.Slice(bucket, func(i, j int) bool {
			if bucket[i].ScheduledDeparture != bucket[j].ScheduledDeparture {
				return bucket[i].ScheduledDeparture > bucket[j].ScheduledDeparture
			}
			return bucket[i].ID < bucket[j].ID
		})
	}
	return buckets, nil
}

func executeAirportFlights(
	_ *database.Database, stats query.Statistics, instance *query.Instance, w output.Writer,
) error {
	filter := *instance.Args.(*airportFlightsFilter)
	bucket, ok := stats.(map[airportFlightsFilter][]*database.Flight)[filter]
	if !ok {
		return errors.Errorf("no statistics prepared for airport %s", filter.origin)
	}

	for _, f := range bucket {
		w.NewObject()
		w.NewField("id", "%s", f.ID)
		w.NewField("schedule_departure_date", "%s", f.ScheduledDeparture)
		w.NewField("destination", "%s", f.Destination)
		w.NewField("airline", "%s", f.Airline)
		w.NewField("plane_model", "%s", f.Plane)
	}
	return nil
}
