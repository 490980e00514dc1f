package queries

import (
	"sort"
	"strconv"

	"github.com/pkg/errors"

	"github.com/JosLopes/LI3-sub000/database"
	"github.com/JosLopes/LI3-sub000/output"
	"github.com/JosLopes/LI3-sub000/query"
	"github.com/JosLopes/LI3-sub000/types"
)

// topAirportsByPassengersArguments carries the year and the N of a Q06 query.
type topAirportsByPassengersArguments struct {
	year int
	n    int
}

type airportPassengers struct {
	airport    types.AirportCode
	passengers uint64
}

func topAirportsByPassengersDefinition() *query.Definition {
	return &query.Definition{
		Code:           6,
		ParseArguments: parseTopAirportsByPassengersArguments,
		CloneArguments: func(args query.Arguments) query.Arguments {
			clone := *args.(*topAirportsByPassengersArguments)
			return &clone
		},
		GenerateStatistics: generateTopAirportsByPassengersStatistics,
		Execute:            executeTopAirportsByPassengers,
	}
}

func parseTopAirportsByPassengersArguments(args []string) (query.Arguments, error) {
	if len(args) != 2 {
		return nil, errors.Errorf("top airports take a year and a count, got %d arguments", len(args))
	}
	if len(args[0]) != 4 {
		return nil, errors.Errorf("invalid year %q", args[0])
	}
	year, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, errors.Errorf("invalid year %q", args[0])
	}
	n, err := parsePositiveCount(args[1])
	if err != nil {
		return nil, err
	}
	return &topAirportsByPassengersArguments{year: year, n: n}, nil
}

func generateTopAirportsByPassengersStatistics(
	db *database.Database, instances []*query.Instance,
) (query.Statistics, error) {
	perYear := map[int]map[types.AirportCode]uint64{}
	for _, instance := range instances {
		year := instance.Args.(*topAirportsByPassengersArguments).year
		if perYear[year] == nil {
			perYear[year] = map[types.AirportCode]uint64{}
		}
	}

	for f := range db.Flights().All() {
		counts := perYear[f.ScheduledDeparture.Date().Year()]
		if counts == nil {
			continue
		}
		counts[f.Origin] += uint64(f.Passengers)
		counts[f.Destination] += uint64(f.Passengers)
	}

	ranked := map[int][]airportPassengers{}
	for year, counts := range perYear {
		entries := make([]airportPassengers, 0, len(counts))
		for airport, passengers := range counts {
			entries = append(entries, airportPassengers{airport: airport, passengers: passengers})
		}
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].passengers != entries[j].passengers {
				return entries[i].passengers > entries[j].passengers
			}
			return entries[i].airport.Compare(entries[j].airport) < 0
		})
		ranked[year] = entries
	}
	return ranked, nil
}

func executeTopAirportsByPassengers(
	_ *database.Database, stats query.Statistics, instance *query.Instance, w output.Writer,
) error {
	args := instance.Args.(*topAirportsByPassengersArguments)
	entries, ok := stats.(map[int][]airportPassengers)[args.year]
	if !ok {
		return errors.Errorf("no statistics prepared for year %d", args.year)
	}

	for i, entry := range entries {
		if i == args.n {
			break
		}
		w.NewObject()
		w.NewField("name", "%s", entry.airport)
		w.NewField("passengers", "%d", entry.passengers)
	}
	return nil
}

func parsePositiveCount(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n <= 0 {
		return 0, errors.Errorf("invalid count %q", arg)
	}
	return n, nil
}
