// Package database holds the in-memory relational store: one manager per
// entity kind, cross-entity indices and the load-time referential-integrity
// rules. Databases are build-once, read-many; rows are never mutated after
// Seal and all pools are freed together by dropping the Database.
package database

import (
	"github.com/pkg/errors"

	"github.com/JosLopes/LI3-sub000/alloc"
	"github.com/JosLopes/LI3-sub000/idlist"
	"github.com/JosLopes/LI3-sub000/types"
)

const (
	rowsPerBlock    = 1024
	stringBlockSize = 64 * 1024
	nodesPerBlock   = 4096
)

// Errors returned when a row fails referential integrity. Loaders drop the
// offending row and keep going.
var (
	ErrDuplicateKey     = errors.New("duplicate primary key")
	ErrUnknownUser      = errors.New("unknown user")
	ErrInactiveUser     = errors.New("inactive user")
	ErrUnknownFlight    = errors.New("unknown flight")
	ErrCapacityExceeded = errors.New("flight capacity exceeded")
	ErrInvalidInterval  = errors.New("interval end must be after begin")
	ErrSealed           = errors.New("database is sealed")
)

// Config stores database configuration.
type Config struct {
	// ReferenceDate is the date ages are computed against.
	ReferenceDate types.Date
}

// New creates new empty database.
func New(config Config) *Database {
	return &Database{
		config:       config,
		users:        NewUsers(),
		flights:      NewFlights(),
		reservations: NewReservations(),
		listNodes:    alloc.NewPool[idlist.Node](nodesPerBlock),
		pending:      map[types.FlightID][]*User{},
	}
}

// Database aggregates the entity managers and enforces referential integrity
// before rows become visible.
type Database struct {
	config       Config
	users        *Users
	flights      *Flights
	reservations *Reservations
	listNodes    *alloc.Pool[idlist.Node]

	// pending buffers accepted passenger rows per flight until Seal, so a
	// flight rejected for exceeding its capacity takes all its rows with it.
	pending map[types.FlightID][]*User

	fingerprint [32]byte
	sealed      bool
}

// Users returns the user manager.
func (db *Database) Users() *Users {
	return db.users
}

// Flights returns the flight manager.
func (db *Database) Flights() *Flights {
	return db.flights
}

// Reservations returns the reservation manager.
func (db *Database) Reservations() *Reservations {
	return db.reservations
}

// ReferenceDate returns the date ages are computed against.
func (db *Database) ReferenceDate() types.Date {
	return db.config.ReferenceDate
}

// AddUser validates and stores one user row.
func (db *Database) AddUser(row User) error {
	if db.sealed {
		return ErrSealed
	}
	_, err := db.users.Add(row)
	return err
}

// AddFlight validates and stores one flight row.
func (db *Database) AddFlight(row Flight) error {
	switch {
	case db.sealed:
		return ErrSealed
	case row.ScheduledArrival <= row.ScheduledDeparture:
		return errors.Wrapf(ErrInvalidInterval, "flight %s", row.ID)
	case row.TotalSeats == 0:
		return errors.Wrapf(ErrCapacityExceeded, "flight %s declares no seats", row.ID)
	}
	row.Passengers = 0
	_, err := db.flights.Add(row)
	return err
}

// AddReservation validates and stores one reservation row, indexing it under
// its owning user. The user must exist and be active.
func (db *Database) AddReservation(row Reservation) error {
	if db.sealed {
		return ErrSealed
	}
	u := db.users.Get(row.UserID)
	switch {
	case u == nil:
		return errors.Wrapf(ErrUnknownUser, "reservation %s", row.ID)
	case !u.Status.Active():
		return errors.Wrapf(ErrInactiveUser, "reservation %s", row.ID)
	case row.End <= row.Begin:
		return errors.Wrapf(ErrInvalidInterval, "reservation %s", row.ID)
	}

	row.UserID = u.ID
	r, err := db.reservations.Add(row)
	if err != nil {
		return err
	}

	u.Reservations.Append(db.listNodes, uint32(r.ID))
	u.TotalSpent += r.TotalPrice()
	return nil
}

// AddPassenger records one (flight, user) association. The flight and an
// active user must both exist. A flight whose capacity is exceeded is
// rejected together with all its passenger rows; the user→flight indices
// become visible only at Seal.
func (db *Database) AddPassenger(flightID types.FlightID, userID string) error {
	if db.sealed {
		return ErrSealed
	}
	f := db.flights.Get(flightID)
	if f == nil {
		return errors.Wrapf(ErrUnknownFlight, "passenger row for flight %s", flightID)
	}
	u := db.users.Get(userID)
	switch {
	case u == nil:
		return errors.Wrapf(ErrUnknownUser, "passenger row for flight %s", flightID)
	case !u.Status.Active():
		return errors.Wrapf(ErrInactiveUser, "passenger row for flight %s", flightID)
	}

	f.Passengers++
	if f.Passengers > f.TotalSeats {
		db.flights.drop(flightID)
		delete(db.pending, flightID)
		return errors.Wrapf(ErrCapacityExceeded, "flight %s", flightID)
	}

	db.pending[flightID] = append(db.pending[flightID], u)
	return nil
}

// Seal flushes the buffered passenger rows of surviving flights into the
// user→flight indices and freezes the database.
func (db *Database) Seal() {
	if db.sealed {
		return
	}
	for flightID, users := range db.pending {
		for _, u := range users {
			u.Flights.Append(db.listNodes, uint32(flightID))
		}
	}
	db.pending = nil
	db.sealed = true
}

// Sealed tells whether Seal ran already.
func (db *Database) Sealed() bool {
	return db.sealed
}

// SetFingerprint stores the dataset fingerprint computed during load.
func (db *Database) SetFingerprint(fingerprint [32]byte) {
	db.fingerprint = fingerprint
}

// Fingerprint returns the dataset fingerprint computed during load.
func (db *Database) Fingerprint() [32]byte {
	return db.fingerprint
}
