package queries

import (
	"github.com/pkg/errors"

	"github.com/JosLopes/LI3-sub000/database"
	"github.com/JosLopes/LI3-sub000/output"
	"github.com/JosLopes/LI3-sub000/query"
	"github.com/JosLopes/LI3-sub000/types"
)

type entityKind uint8

const (
	entityUser entityKind = iota
	entityFlight
	entityReservation
)

// entityDetailsArguments carries the probed identifier of a Q01 query. The
// argument is probed as a flight id first, then a reservation id; anything
// else is treated as a user id.
type entityDetailsArguments struct {
	kind        entityKind
	flight      types.FlightID
	reservation types.ReservationID
	user        string
}

func entityDetailsDefinition() *query.Definition {
	return &query.Definition{
		Code:           1,
		ParseArguments: parseEntityDetailsArguments,
		CloneArguments: func(args query.Arguments) query.Arguments {
			clone := *args.(*entityDetailsArguments)
			return &clone
		},
		Execute: executeEntityDetails,
	}
}

func parseEntityDetailsArguments(args []string) (query.Arguments, error) {
	if len(args) != 1 {
		return nil, errors.Errorf("entity details take one identifier, got %d arguments", len(args))
	}

	if flightID, err := types.ParseFlightID([]byte(args[0])); err == nil {
		return &entityDetailsArguments{kind: entityFlight, flight: flightID}, nil
	}
	if reservationID, err := types.ParseReservationID([]byte(args[0])); err == nil {
		return &entityDetailsArguments{kind: entityReservation, reservation: reservationID}, nil
	}
	return &entityDetailsArguments{kind: entityUser, user: args[0]}, nil
}

func executeEntityDetails(
	db *database.Database, _ query.Statistics, instance *query.Instance, w output.Writer,
) error {
	args := instance.Args.(*entityDetailsArguments)
	switch args.kind {
	case entityUser:
		writeUserDetails(db, args.user, w)
	case entityFlight:
		writeFlightDetails(db, args.flight, w)
	case entityReservation:
		writeReservationDetails(db, args.reservation, w)
	}
	return nil
}

func writeUserDetails(db *database.Database, id string, w output.Writer) {
	u := db.Users().Get(id)
	if u == nil || !u.Status.Active() {
		return
	}

	w.NewObject()
	w.NewField("name", "%s", u.Name)
	w.NewField("sex", "%s", u.Sex)
	w.NewField("age", "%d", u.Age(db.ReferenceDate()))
	w.NewField("country_code", "%s", u.Country)
	w.NewField("passport", "%s", u.Passport)
	w.NewField("number_of_flights", "%d", u.Flights.Len())
	w.NewField("number_of_reservations", "%d", u.Reservations.Len())
	w.NewField("total_spent", "%.3f", u.TotalSpent)
}

func writeFlightDetails(db *database.Database, id types.FlightID, w output.Writer) {
	f := db.Flights().Get(id)
	if f == nil {
		return
	}

	w.NewObject()
	w.NewField("airline", "%s", f.Airline)
	w.NewField("plane_model", "%s", f.Plane)
	w.NewField("origin", "%s", f.Origin)
	w.NewField("destination", "%s", f.Destination)
	w.NewField("schedule_departure_date", "%s", f.ScheduledDeparture)
	w.NewField("schedule_arrival_date", "%s", f.ScheduledArrival)
	w.NewField("passengers", "%d", f.Passengers)
	w.NewField("delay", "%d", f.Delay())
}

func writeReservationDetails(db *database.Database, id types.ReservationID, w output.Writer) {
	r := db.Reservations().Get(id)
	if r == nil {
		return
	}

	w.NewObject()
	w.NewField("hotel_id", "%s", r.Hotel)
	w.NewField("hotel_name", "%s", r.HotelName)
	w.NewField("hotel_stars", "%d", r.Stars)
	w.NewField("begin_date", "%s", r.Begin)
	w.NewField("end_date", "%s", r.End)
	w.NewField("includes_breakfast", "%s", r.Breakfast)
	w.NewField("nights", "%d", r.Nights())
	w.NewField("total_price", "%.3f", r.TotalPrice())
}
