package database

import (
	"github.com/pkg/errors"

	"github.com/JosLopes/LI3-sub000/alloc"
	"github.com/JosLopes/LI3-sub000/types"
)

// Flight is one flight row. String fields alias the manager's string pool.
type Flight struct {
	ID                 types.FlightID
	Airline            string
	Plane              string
	Origin             types.AirportCode
	Destination        types.AirportCode
	ScheduledDeparture types.DateTime
	ScheduledArrival   types.DateTime
	RealDeparture      types.DateTime
	TotalSeats         uint32

	// Passengers counts accepted passenger rows; never exceeds TotalSeats
	// for a visible flight.
	Passengers uint32
}

// Delay returns real minus scheduled departure in seconds.
func (f *Flight) Delay() int64 {
	return f.RealDeparture.Epoch() - f.ScheduledDeparture.Epoch()
}

// NewFlights creates new flight manager.
func NewFlights() *Flights {
	return &Flights{
		rows:    alloc.NewPool[Flight](rowsPerBlock),
		strings: alloc.NewStringPool(stringBlockSize),
		byID:    map[types.FlightID]*Flight{},
	}
}

// Flights owns all flight rows, their primary map and their string pool.
type Flights struct {
	rows    *alloc.Pool[Flight]
	strings *alloc.StringPool
	byID    map[types.FlightID]*Flight
}

// Add clones the row's string fields into the manager's pool and makes the
// row visible under its identifier.
func (m *Flights) Add(row Flight) (*Flight, error) {
	if _, exists := m.byID[row.ID]; exists {
		return nil, errors.Wrapf(ErrDuplicateKey, "flight %s", row.ID)
	}

	f := m.rows.New()
	*f = row
	f.Airline = m.strings.Intern([]byte(row.Airline))
	f.Plane = m.strings.Intern([]byte(row.Plane))

	m.byID[f.ID] = f
	return f, nil
}

// Get returns the flight row, or nil when the identifier is unknown.
func (m *Flights) Get(id types.FlightID) *Flight {
	return m.byID[id]
}

// Len returns the number of visible rows.
func (m *Flights) Len() int {
	return len(m.byID)
}

// All iterates over every visible row exactly once, in unspecified order.
func (m *Flights) All() func(func(*Flight) bool) {
	return func(yield func(*Flight) bool) {
		for _, f := range m.byID {
			if !yield(f) {
				return
			}
		}
	}
}

// drop hides a row rejected before the database is sealed. The row stays in
// the pool; only the primary map entry goes away.
func (m *Flights) drop(id types.FlightID) {
	delete(m.byID, id)
}
