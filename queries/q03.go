package queries

import (
	"github.com/pkg/errors"

	"github.com/JosLopes/LI3-sub000/database"
	"github.com/JosLopes/LI3-sub000/output"
	"github.com/JosLopes/LI3-sub000/query"
	"github.com/JosLopes/LI3-sub000/types"
)

// hotelRatingArguments carries the hotel of a Q03 query.
type hotelRatingArguments struct {
	hotel types.HotelID
}

// ratingAccumulator is the per-hotel (sum, count) over rated reservations.
// Rating 0 means unrated and never contributes.
type ratingAccumulator struct {
	sum   uint64
	count uint64
}

func hotelRatingDefinition() *query.Definition {
	return &query.Definition{
		Code:           3,
		ParseArguments: parseHotelRatingArguments,
		CloneArguments: func(args query.Arguments) query.Arguments {
			clone := *args.(*hotelRatingArguments)
			return &clone
		},
		GenerateStatistics: generateHotelRatingStatistics,
		Execute:            executeHotelRating,
	}
}

func parseHotelRatingArguments(args []string) (query.Arguments, error) {
	if len(args) != 1 {
		return nil, errors.Errorf("hotel rating takes one hotel id, got %d arguments", len(args))
	}
	hotel, err := types.ParseHotelID([]byte(args[0]))
	if err != nil {
		return nil, err
	}
	return &hotelRatingArguments{hotel: hotel}, nil
}

func generateHotelRatingStatistics(
	db *database.Database, instances []*query.Instance,
) (query.Statistics, error) {
	accumulators := map[types.HotelID]*ratingAccumulator{}
	for _, instance := range instances {
		hotel := instance.Args.(*hotelRatingArguments).hotel
		if accumulators[hotel] == nil {
			accumulators[hotel] = &ratingAccumulator{}
		}
	}

	for r := range db.Reservations().All() {
		acc := accumulators[r.Hotel]
		if acc == nil || r.Rating == 0 {
			continue
		}
		acc.sum += uint64(r.Rating)
		acc.count++
	}
	return accumulators, nil
}

func executeHotelRating(
	_ *database.Database, stats query.Statistics, instance *query.Instance, w output.Writer,
) error {
	args := instance.Args.(*hotelRatingArguments)
	acc := stats.(map[types.HotelID]*ratingAccumulator)[args.hotel]
	if acc == nil {
		return errors.Errorf("no statistics prepared for hotel %s", args.hotel)
	}
	if acc.count == 0 {
		return nil
	}

	w.NewObject()
	w.NewField("rating", "%.3f", float64(acc.sum)/float64(acc.count))
	return nil
}
