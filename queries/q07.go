package queries

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/JosLopes/LI3-sub000/database"
	"github.com/JosLopes/LI3-sub000/output"
	"github.com/JosLopes/LI3-sub000/query"
	"github.com/JosLopes/LI3-sub000/types"
)

// topAirportsByDelayArguments carries the N of a Q07 query.
type topAirportsByDelayArguments struct {
	n int
}

type airportMedian struct {
	airport types.AirportCode
	median  int64
}

func topAirportsByDelayDefinition() *query.Definition {
	return &query.Definition{
		Code:           7,
		ParseArguments: parseTopAirportsByDelayArguments,
		CloneArguments: func(args query.Arguments) query.Arguments {
			clone := *args.(*topAirportsByDelayArguments)
			return &clone
		},
		GenerateStatistics: generateTopAirportsByDelayStatistics,
		Execute:            executeTopAirportsByDelay,
	}
}

func parseTopAirportsByDelayArguments(args []string) (query.Arguments, error) {
	if len(args) != 1 {
		return nil, errors.Errorf("top airports by delay take a count, got %d arguments", len(args))
	}
	n, err := parsePositiveCount(args[0])
	if err != nil {
		return nil, err
	}
	return &topAirportsByDelayArguments{n: n}, nil
}

func generateTopAirportsByDelayStatistics(
	db *database.Database, _ []*query.Instance,
) (query.Statistics, error) {
	delays := map[types.AirportCode][]int64{}
	for f := range db.Flights().All() {
		delays[f.Origin] = append(delays[f.Origin], f.Delay())
	}

	entries := make([]airportMedian, 0, len(delays))
	for airport, deltas := range delays {
		entries = append(entries, airportMedian{airport: airport, median: median(deltas)})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].median != entries[j].median {
			return entries[i].median > entries[j].median
		}
		return entries[i].airport.Compare(entries[j].airport) < 0
	})
	return entries, nil
}

func executeTopAirportsByDelay(
	_ *database.Database, stats query.Statistics, instance *query.Instance, w output.Writer,
) error {
	args := instance.Args.(*topAirportsByDelayArguments)
	entries, ok := stats.([]airportMedian)
	if !ok {
		return errors.New("no delay statistics prepared")
	}

	for i, entry := range entries {
		if i == args.n {
			break
		}
		w.NewObject()
		w.NewField("name", "%s", entry.airport)
		w.NewField("median", "%d", entry.median)
	}
	return nil
}

// median sorts the deltas in place. For even counts it is the floor of the
// mean of the two central values.
func median(deltas []int64) int64 {
	sort.Slice(deltas, func(i, j int) bool {
		return deltas[i] < deltas[j]
	})

	mid := len(deltas) / 2
	if len(deltas)%2 == 1 {
		return deltas[mid]
	}
	sum := deltas[mid-1] + deltas[mid]
	if sum < 0 && sum%2 != 0 {
		return sum/2 - 1
	}
	return sum / 2
}
