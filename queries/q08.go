package queries

import (
	"github.com/pkg/errors"

	"github.com/JosLopes/LI3-sub000/database"
	"github.com/JosLopes/LI3-sub000/output"
	"github.com/JosLopes/LI3-sub000/query"
	"github.com/JosLopes/LI3-sub000/types"
)

// hotelRevenueKey is the canonical (hotel, begin, end) triple of a Q08 query.
// Both range endpoints are inclusive.
type hotelRevenueKey struct {
	hotel types.HotelID
	begin types.Date
	end   types.Date
}

func hotelRevenueDefinition() *query.Definition {
	return &query.Definition{
		Code:           8,
		ParseArguments: parseHotelRevenueArguments,
		CloneArguments: func(args query.Arguments) query.Arguments {
			clone := *args.(*hotelRevenueKey)
			return &clone
		},
		GenerateStatistics: generateHotelRevenueStatistics,
		Execute:            executeHotelRevenue,
	}
}

func parseHotelRevenueArguments(args []string) (query.Arguments, error) {
	if len(args) != 3 {
		return nil, errors.Errorf("hotel revenue takes hotel, begin and end, got %d arguments", len(args))
	}
	hotel, err := types.ParseHotelID([]byte(args[0]))
	if err != nil {
		return nil, err
	}
	begin, err := types.ParseDate([]byte(args[1]))
	if err != nil {
		return nil, err
	}
	end, err := types.ParseDate([]byte(args[2]))
	if err != nil {
		return nil, err
	}
	return &hotelRevenueKey{hotel: hotel, begin: begin, end: end}, nil
}

func generateHotelRevenueStatistics(
	db *database.Database, instances []*query.Instance,
) (query.Statistics, error) {
	revenues := map[hotelRevenueKey]uint64{}
	for _, instance := range instances {
		key := *instance.Args.(*hotelRevenueKey)
		if _, ok := revenues[key]; !ok {
			revenues[key] = 0
		}
	}

	for r := range db.Reservations().All() {
		for key := range revenues {
			if r.Hotel != key.hotel {
				continue
			}
			// The stay's last day produces no revenue, hence End-1.
			nights := min(r.End.Days()-1, key.end.Days()) - max(r.Begin.Days(), key.begin.Days()) + 1
			if nights > 0 {
				revenues[key] += uint64(r.PricePerNight) * uint64(nights)
			}
		}
	}
	return revenues, nil
}

func executeHotelRevenue(
	_ *database.Database, stats query.Statistics, instance *query.Instance, w output.Writer,
) error {
	key := *instance.Args.(*hotelRevenueKey)
	revenue, ok := stats.(map[hotelRevenueKey]uint64)[key]
	if !ok {
		return errors.Errorf("no statistics prepared for hotel %s", key.hotel)
	}

	w.NewObject()
	w.NewField("revenue", "%d", revenue)
	return nil
}
