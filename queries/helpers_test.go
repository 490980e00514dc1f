package queries_test

import (
	"context"
	"testing"

	"github.com/outofforest/logger"
	"github.com/outofforest/mass"
	"github.com/stretchr/testify/require"

	"github.com/JosLopes/LI3-sub000/database"
	"github.com/JosLopes/LI3-sub000/output"
	"github.com/JosLopes/LI3-sub000/queries"
	"github.com/JosLopes/LI3-sub000/query"
	"github.com/JosLopes/LI3-sub000/types"
)

func testCtx(t *testing.T) context.Context {
	ctx, cancel := context.WithCancel(logger.WithLogger(context.Background(),
		logger.New(logger.DefaultConfig)))
	t.Cleanup(cancel)
	return ctx
}

// executeQueries parses each text as one source line, dispatches everything
// and returns the per-line delimited outputs.
func executeQueries(t *testing.T, db *database.Database, texts ...string) map[uint32]string {
	requireT := require.New(t)

	registry, err := queries.NewRegistry()
	requireT.NoError(err)
	parser := query.NewParser(query.ParserConfig{
		Registry:     registry,
		MassInstance: mass.New[query.Instance](1024),
	})

	list := &query.List{}
	for i, text := range texts {
		instance, err := parser.Parse(text, uint32(i+1))
		requireT.NoError(err, "query %q", text)
		list.Append(instance)
	}

	factory := output.NewBufferFactory()
	dispatcher := query.NewDispatcher(query.DispatcherConfig{
		DB:        db,
		NewWriter: factory.Writer,
	})
	requireT.NoError(dispatcher.Dispatch(testCtx(t), list))

	outputs := map[uint32]string{}
	for i := range texts {
		outputs[uint32(i+1)] = factory.Output(uint32(i + 1))
	}
	return outputs
}

// requireParseError asserts the text is rejected at parse time.
func requireParseError(t *testing.T, text string) {
	requireT := require.New(t)

	registry, err := queries.NewRegistry()
	requireT.NoError(err)
	parser := query.NewParser(query.ParserConfig{
		Registry:     registry,
		MassInstance: mass.New[query.Instance](16),
	})

	_, err = parser.Parse(text, 1)
	requireT.Error(err)
	requireT.ErrorContains(err, "failed to parse query")
}

type fixture struct {
	t  *testing.T
	db *database.Database
}

func newFixture(t *testing.T) *fixture {
	return &fixture{
		t:  t,
		db: database.New(database.Config{ReferenceDate: types.NewDate(2023, 10, 1)}),
	}
}

func (f *fixture) user(id, name string, status types.AccountStatus) *fixture {
	country, err := types.ParseCountryCode([]byte("PRT"))
	require.NoError(f.t, err)
	require.NoError(f.t, f.db.AddUser(database.User{
		ID:       id,
		Name:     name,
		Sex:      "F",
		Passport: "AB123456",
		Country:  country,
		Status:   status,
		Birth:    types.NewDate(1995, 3, 20),
	}))
	return f
}

func (f *fixture) flight(
	id types.FlightID, origin, destination string, departure string, delaySeconds int64, seats uint32,
) *fixture {
	originCode, err := types.ParseAirportCode([]byte(origin))
	require.NoError(f.t, err)
	destinationCode, err := types.ParseAirportCode([]byte(destination))
	require.NoError(f.t, err)
	dep, err := types.ParseDateTime([]byte(departure))
	require.NoError(f.t, err)
	// Delays in fixtures stay within the departure day.
	realDep := types.NewDateTime(dep.Date(), dep.SecondOfDay()+int(delaySeconds))

	require.NoError(f.t, f.db.AddFlight(database.Flight{
		ID:                 id,
		Airline:            "TAP Air Portugal",
		Plane:              "A320",
		Origin:             originCode,
		Destination:        destinationCode,
		ScheduledDeparture: dep,
		ScheduledArrival:   types.NewDateTime(dep.Date(), dep.SecondOfDay()+2),
		RealDeparture:      realDep,
		TotalSeats:         seats,
	}))
	return f
}

func (f *fixture) reservation(
	id types.ReservationID, userID string, hotel types.HotelID, begin, end string,
	pricePerNight uint32, cityTax uint8, rating uint8,
) *fixture {
	beginDate, err := types.ParseDate([]byte(begin))
	require.NoError(f.t, err)
	endDate, err := types.ParseDate([]byte(end))
	require.NoError(f.t, err)

	require.NoError(f.t, f.db.AddReservation(database.Reservation{
		ID:            id,
		UserID:        userID,
		Hotel:         hotel,
		HotelName:     "Hotel Mar",
		Stars:         4,
		Begin:         beginDate,
		End:           endDate,
		PricePerNight: pricePerNight,
		CityTax:       cityTax,
		Breakfast:     types.BreakfastYes,
		Rating:        rating,
	}))
	return f
}

func (f *fixture) passenger(flightID types.FlightID, userID string) *fixture {
	require.NoError(f.t, f.db.AddPassenger(flightID, userID))
	return f
}

func (f *fixture) seal() *database.Database {
	f.db.Seal()
	return f.db
}
