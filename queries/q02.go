package queries

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/JosLopes/LI3-sub000/database"
	"github.com/JosLopes/LI3-sub000/output"
	"github.com/JosLopes/LI3-sub000/query"
	"github.com/JosLopes/LI3-sub000/types"
)

type historyFilter uint8

const (
	historyAll historyFilter = iota
	historyFlights
	historyReservations
)

// userHistoryArguments carries the user and the optional item-kind filter of
// a Q02 query.
type userHistoryArguments struct {
	user   string
	filter historyFilter
}

func userHistoryDefinition() *query.Definition {
	return &query.Definition{
		Code:           2,
		ParseArguments: parseUserHistoryArguments,
		CloneArguments: func(args query.Arguments) query.Arguments {
			clone := *args.(*userHistoryArguments)
			return &clone
		},
		Execute: executeUserHistory,
	}
}

func parseUserHistoryArguments(args []string) (query.Arguments, error) {
	switch len(args) {
	case 1:
		return &userHistoryArguments{user: args[0]}, nil
	case 2:
		switch args[1] {
		case "flights":
			return &userHistoryArguments{user: args[0], filter: historyFlights}, nil
		case "reservations":
			return &userHistoryArguments{user: args[0], filter: historyReservations}, nil
		default:
			return nil, errors.Errorf("unknown history filter %q", args[1])
		}
	default:
		return nil, errors.Errorf("user history takes a user and an optional filter, got %d arguments", len(args))
	}
}

type historyItem struct {
	id   string
	date types.Date
	kind string
}

func executeUserHistory(
	db *database.Database, _ query.Statistics, instance *query.Instance, w output.Writer,
) error {
	args := instance.Args.(*userHistoryArguments)
	u := db.Users().Get(args.user)
	if u == nil || !u.Status.Active() {
		return nil
	}

	items := []historyItem{}
	if args.filter != historyReservations {
		for id := range u.Flights.All() {
			f := db.Flights().Get(types.FlightID(id))
			if f == nil {
				return errors.Errorf("user %q indexes unknown flight %d", args.user, id)
			}
			items = append(items, historyItem{
				id:   f.ID.String(),
				date: f.ScheduledDeparture.Date(),
				kind: "flight",
			})
		}
	}
	if args.filter != historyFlights {
		for id := range u.Reservations.All() {
			r := db.Reservations().Get(types.ReservationID(id))
			if r == nil {
				return errors.Errorf("user %q indexes unknown reservation %d", args.user, id)
			}
			items = append(items, historyItem{
				id:   r.ID.String(),
				date: r.Begin,
				kind: "reservation",
			})
		}
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].date != items[j].date {
			return items[i].date > items[j].date
		}
		return items[i].id < items[j].id
	})

	for _, item := range items {
		w.NewObject()
		w.NewField("id", "%s", item.id)
		w.NewField("date", "%s", item.date)
		if args.filter == historyAll {
			w.NewField("type", "%s", item.kind)
		}
	}
	return nil
}
