package database

import (
	"github.com/pkg/errors"

	"github.com/JosLopes/LI3-sub000/alloc"
	"github.com/JosLopes/LI3-sub000/types"
)

// Reservation is one hotel reservation row. String fields alias the
// manager's string pool; UserID aliases the owning user's row.
type Reservation struct {
	ID            types.ReservationID
	UserID        string
	Hotel         types.HotelID
	HotelName     string
	Stars         uint8
	Begin         types.Date
	End           types.Date
	PricePerNight uint32
	CityTax       uint8
	Breakfast     types.Breakfast
	Rating        uint8
}

// Nights returns the number of revenue-producing nights. The end date is
// exclusive for revenue accounting.
func (r *Reservation) Nights() int {
	return r.End.Days() - r.Begin.Days()
}

// TotalPrice returns price per night times nights, plus city tax.
func (r *Reservation) TotalPrice() float64 {
	base := float64(r.PricePerNight) * float64(r.Nights())
	return base * (1 + float64(r.CityTax)/100)
}

// NewReservations creates new reservation manager.
func NewReservations() *Reservations {
	return &Reservations{
		rows:    alloc.NewPool[Reservation](rowsPerBlock),
		strings: alloc.NewStringPool(stringBlockSize),
		byID:    map[types.ReservationID]*Reservation{},
	}
}

// Reservations owns all reservation rows, their primary map and their
// string pool.
type Reservations struct {
	rows    *alloc.Pool[Reservation]
	strings *alloc.StringPool
	byID    map[types.ReservationID]*Reservation
}

// Add clones the row's string fields into the manager's pool and makes the
// row visible under its identifier. UserID is expected to alias the owning
// user row already, so it is not cloned.
func (m *Reservations) Add(row Reservation) (*Reservation, error) {
	if _, exists := m.byID[row.ID]; exists {
		return nil, errors.Wrapf(ErrDuplicateKey, "reservation %s", row.ID)
	}

	r := m.rows.New()
	*r = row
	r.HotelName = m.strings.Intern([]byte(row.HotelName))

	m.byID[r.ID] = r
	return r, nil
}

// Get returns the reservation row, or nil when the identifier is unknown.
func (m *Reservations) Get(id types.ReservationID) *Reservation {
	return m.byID[id]
}

// Len returns the number of visible rows.
func (m *Reservations) Len() int {
	return len(m.byID)
}

// All iterates over every visible row exactly once, in unspecified order.
func (m *Reservations) All() func(func(*Reservation) bool) {
	return func(yield func(*Reservation) bool) {
		for _, r := range m.byID {
			if !yield(r) {
				return
			}
		}
	}
}
