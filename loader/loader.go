package loader

import (
	"context"
	"encoding/hex"
	"path/filepath"

	"github.com/outofforest/logger"
	"github.com/outofforest/parallel"
	"github.com/zeebo/blake3"
	"go.uber.org/zap"

	"github.com/JosLopes/LI3-sub000/database"
	"github.com/JosLopes/LI3-sub000/types"
)

// Dataset file names inside the dataset directory.
const (
	usersFile        = "users.csv"
	flightsFile      = "flights.csv"
	reservationsFile = "reservations.csv"
	passengersFile   = "passengers.csv"
)

// datasetFiles defines the fingerprint hashing order.
var datasetFiles = []string{usersFile, flightsFile, reservationsFile, passengersFile}

// DefaultReferenceDate is the date ages are computed against when the config
// does not provide one.
var DefaultReferenceDate = types.NewDate(2023, 10, 1)

// Config stores the configuration of the loader.
type Config struct {
	// Dir is the dataset directory holding the four csv files.
	Dir string

	// ReferenceDate is the date user ages are computed against.
	ReferenceDate types.Date
}

// Load ingests the dataset and returns the sealed database. Rows failing
// validation or integrity checks are dropped and counted, never reported as
// errors.
func Load(ctx context.Context, config Config) (*database.Database, error) {
	if config.ReferenceDate == 0 {
		config.ReferenceDate = DefaultReferenceDate
	}

	l := &loader{
		db:   database.New(database.Config{ReferenceDate: config.ReferenceDate}),
		data: map[string][]byte{},
	}

	hasher := blake3.New()
	for _, file := range datasetFiles {
		data, closeFile, err := mmapFile(filepath.Join(config.Dir, file))
		if err != nil {
			return nil, err
		}
		defer closeFile()

		_, _ = hasher.Write(data)
		l.data[file] = data
	}
	var fingerprint [32]byte
	copy(fingerprint[:], hasher.Sum(nil))

	// Users and flights feed independent managers. Reservations touch user
	// rows and the reservation manager, passengers touch flight rows and the
	// per-flight buffers, so the two pairs run concurrently.
	err := parallel.Run(ctx, func(ctx context.Context, spawn parallel.SpawnFn) error {
		spawn("users", parallel.Continue, l.loadUsers)
		spawn("flights", parallel.Continue, l.loadFlights)
		return nil
	})
	if err != nil {
		return nil, err
	}
	err = parallel.Run(ctx, func(ctx context.Context, spawn parallel.SpawnFn) error {
		spawn("reservations", parallel.Continue, l.loadReservations)
		spawn("passengers", parallel.Continue, l.loadPassengers)
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.db.Seal()
	l.db.SetFingerprint(fingerprint)

	logger.Get(ctx).Info("Dataset loaded",
		zap.String("fingerprint", hex.EncodeToString(fingerprint[:])),
		zap.Int("users", l.db.Users().Len()),
		zap.Int("flights", l.db.Flights().Len()),
		zap.Int("reservations", l.db.Reservations().Len()))
	return l.db, nil
}

type loader struct {
	db   *database.Database
	data map[string][]byte
}

func (l *loader) loadUsers(ctx context.Context) error {
	var accepted, rejected uint64
	scanner := newRowScanner(l.data[usersFile])
	for fields, ok := scanner.Next(); ok; fields, ok = scanner.Next() {
		row, err := parseUserRow(fields)
		if err != nil {
			rejected++
			continue
		}
		if err := l.db.AddUser(row); err != nil {
			rejected++
			continue
		}
		accepted++
	}
	logger.Get(ctx).Info("Users loaded",
		zap.Uint64("accepted", accepted), zap.Uint64("rejected", rejected))
	return nil
}

func (l *loader) loadFlights(ctx context.Context) error {
	var accepted, rejected uint64
	scanner := newRowScanner(l.data[flightsFile])
	for fields, ok := scanner.Next(); ok; fields, ok = scanner.Next() {
		row, err := parseFlightRow(fields)
		if err != nil {
			rejected++
			continue
		}
		if err := l.db.AddFlight(row); err != nil {
			rejected++
			continue
		}
		accepted++
	}
	logger.Get(ctx).Info("Flights loaded",
		zap.Uint64("accepted", accepted), zap.Uint64("rejected", rejected))
	return nil
}

func (l *loader) loadReservations(ctx context.Context) error {
	var accepted, rejected uint64
	scanner := newRowScanner(l.data[reservationsFile])
	for fields, ok := scanner.Next(); ok; fields, ok = scanner.Next() {
		row, err := parseReservationRow(fields)
		if err != nil {
			rejected++
			continue
		}
		if err := l.db.AddReservation(row); err != nil {
			rejected++
			continue
		}
		accepted++
	}
	logger.Get(ctx).Info("Reservations loaded",
		zap.Uint64("accepted", accepted), zap.Uint64("rejected", rejected))
	return nil
}

func (l *loader) loadPassengers(ctx context.Context) error {
	var accepted, rejected uint64
	scanner := newRowScanner(l.data[passengersFile])
	for fields, ok := scanner.Next(); ok; fields, ok = scanner.Next() {
		if len(fields) != passengerColumns {
			rejected++
			continue
		}
		flightID, err := types.ParseFlightID(fields[0])
		if err != nil {
			rejected++
			continue
		}
		if err := l.db.AddPassenger(flightID, view(fields[1])); err != nil {
			rejected++
			continue
		}
		accepted++
	}
	logger.Get(ctx).Info("Passengers loaded",
		zap.Uint64("accepted", accepted), zap.Uint64("rejected", rejected))
	return nil
}
