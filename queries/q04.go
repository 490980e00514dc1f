package queries

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/JosLopes/LI3-sub000/database"
	"github.com/JosLopes/LI3-sub000/output"
	"github.com/JosLopes/LI3-sub000/query"
	"github.com/JosLopes/LI3-sub000/types"
)

// hotelReservationsArguments carries the hotel of a Q04 query.
type hotelReservationsArguments struct {
	hotel types.HotelID
}

func hotelReservationsDefinition() *query.Definition {
	return &query.Definition{
		Code:           4,
		ParseArguments: parseHotelReservationsArguments,
		CloneArguments: func(args query.Arguments) query.Arguments {
			clone := *args.(*hotelReservationsArguments)
			return &clone
		},
		GenerateStatistics: generateHotelReservationsStatistics,
		Execute:            executeHotelReservations,
	}
}

func parseHotelReservationsArguments(args []string) (query.Arguments, error) {
	if len(args) != 1 {
		return nil, errors.Errorf("hotel reservations take one hotel id, got %d arguments", len(args))
	}
	hotel, err := types.ParseHotelID([]byte(args[0]))
	if err != nil {
		return nil, err
	}
	return &hotelReservationsArguments{hotel: hotel}, nil
}

func generateHotelReservationsStatistics(
	db *database.Database, instances []*query.Instance,
) (query.Statistics, error) {
	partitions := map[types.HotelID][]*database.Reservation{}
	for _, instance := range instances {
		hotel := instance.Args.(*hotelReservationsArguments).hotel
		if _, ok := partitions[hotel]; !ok {
			partitions[hotel] = []*database.Reservation{}
		}
	}

	for r := range db.Reservations().All() {
		if bucket, ok := partitions[r.Hotel]; ok {
			partitions[r.Hotel] = append(bucket, r)
		}
	}

	for _, bucket := range partitions {
		sort.Slice(bucket, func(i, j int) bool {
			if bucket[i].Begin != bucket[j].Begin {
				return bucket[i].Begin > bucket[j].Begin
			}
			return bucket[i].ID < bucket[j].ID
		})
	}
	return partitions, nil
}

func executeHotelReservations(
	_ *database.Database, stats query.Statistics, instance *query.Instance, w output.Writer,
) error {
	args := instance.Args.(*hotelReservationsArguments)
	bucket, ok := stats.(map[types.HotelID][]*database.Reservation)[args.hotel]
	if !ok {
		return errors.Errorf("no statistics prepared for hotel %s", args.hotel)
	}

	for _, r := range bucket {
		w.NewObject()
		w.NewField("id", "%s", r.ID)
		w.NewField("begin_date", "%s", r.Begin)
		w.NewField("end_date", "%s", r.End)
		w.NewField("user_id", "%s", r.UserID)
		w.NewField("rating", "%d", r.Rating)
		w.NewField("total_price", "%.3f", r.TotalPrice())
	}
	return nil
}
