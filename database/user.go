package database

import (
	"github.com/pkg/errors"

	"github.com/JosLopes/LI3-sub000/alloc"
	"github.com/JosLopes/LI3-sub000/idlist"
	"github.com/JosLopes/LI3-sub000/types"
)

// User is one user row. String fields alias the manager's string pool.
type User struct {
	ID       string
	Name     string
	Sex      string
	Passport string
	Country  types.CountryCode
	Status   types.AccountStatus
	Birth    types.Date

	// TotalSpent accumulates the total price of the user's reservations
	// during load.
	TotalSpent float64

	// Reservations and Flights are the per-user index buckets, populated by
	// the database as reservation and passenger rows arrive.
	Reservations idlist.List
	Flights      idlist.List
}

// Age returns the user's age in full years at the reference date.
func (u *User) Age(reference types.Date) int {
	return u.Birth.Age(reference)
}

// NewUsers creates new user manager.
func NewUsers() *Users {
	return &Users{
		rows:    alloc.NewPool[User](rowsPerBlock),
		strings: alloc.NewStringPool(stringBlockSize),
		byID:    map[string]*User{},
	}
}

// Users owns all user rows, their primary map and their string pool.
type Users struct {
	rows    *alloc.Pool[User]
	strings *alloc.StringPool
	byID    map[string]*User
}

// Add clones the row's string fields into the manager's pool and makes the
// row visible under its identifier.
func (m *Users) Add(row User) (*User, error) {
	if _, exists := m.byID[row.ID]; exists {
		return nil, errors.Wrapf(ErrDuplicateKey, "user %q", row.ID)
	}

	u := m.rows.New()
	*u = row
	u.ID = m.strings.Place([]byte(row.ID))
	u.Name = m.strings.Place([]byte(row.Name))
	u.Sex = m.strings.Intern([]byte(row.Sex))
	u.Passport = m.strings.Place([]byte(row.Passport))

	m.byID[u.ID] = u
	return u, nil
}

// Get returns the user row, or nil when the identifier is unknown.
func (m *Users) Get(id string) *User {
	return m.byID[id]
}

// Len returns the number of visible rows.
func (m *Users) Len() int {
	return len(m.byID)
}

// All iterates over every visible row exactly once, in unspecified order.
func (m *Users) All() func(func(*User) bool) {
	return func(yield func(*User) bool) {
		for _, u := range m.byID {
			if !yield(u) {
				return
			}
		}
	}
}

// FlightsOf returns the flight index bucket of the user, or nil when the
// user is unknown.
func (m *Users) FlightsOf(id string) *idlist.List {
	u := m.byID[id]
	if u == nil {
		return nil
	}
	return &u.Flights
}

// ReservationsOf returns the reservation index bucket of the user, or nil
// when the user is unknown.
func (m *Users) ReservationsOf(id string) *idlist.List {
	u := m.byID[id]
	if u == nil {
		return nil
	}
	return &u.Reservations
}
