package loader

import (
	"bytes"
	"strconv"
	"unsafe"

	"github.com/pkg/errors"

	"github.com/JosLopes/LI3-sub000/database"
	"github.com/JosLopes/LI3-sub000/types"
)

const (
	userColumns        = 12
	flightColumns      = 13
	reservationColumns = 14
	passengerColumns   = 2
)

var errInvalidRow = errors.New("invalid row")

// users.csv: id, name, email, phone_number, birth_date, sex, passport,
// country_code, address, account_creation, pay_method, account_status.
func parseUserRow(fields [][]byte) (database.User, error) {
	if len(fields) != userColumns {
		return database.User{}, errors.WithStack(errInvalidRow)
	}
	for _, i := range []int{0, 1, 3, 5, 6, 8, 10} {
		if len(fields[i]) == 0 {
			return database.User{}, errors.WithStack(errInvalidRow)
		}
	}
	if !validEmail(fields[2]) {
		return database.User{}, errors.WithStack(errInvalidRow)
	}

	birth, err := types.ParseDate(fields[4])
	if err != nil {
		return database.User{}, err
	}
	country, err := types.ParseCountryCode(fields[7])
	if err != nil {
		return database.User{}, err
	}
	creation, err := types.ParseDateTime(fields[9])
	if err != nil {
		return database.User{}, err
	}
	if creation.Date().Days() <= birth.Days() {
		return database.User{}, errors.WithStack(errInvalidRow)
	}
	status, err := types.ParseAccountStatus(fields[11])
	if err != nil {
		return database.User{}, err
	}

	return database.User{
		ID:       view(fields[0]),
		Name:     view(fields[1]),
		Sex:      view(fields[5]),
		Passport: view(fields[6]),
		Country:  country,
		Status:   status,
		Birth:    birth,
	}, nil
}

// flights.csv: id, airline, plane_model, total_seats, origin, destination,
// schedule_departure_date, schedule_arrival_date, real_departure_date,
// real_arrival_date, pilot, copilot, notes. The notes field may be empty.
func parseFlightRow(fields [][]byte) (database.Flight, error) {
	if len(fields) != flightColumns {
		return database.Flight{}, errors.WithStack(errInvalidRow)
	}
	for _, i := range []int{1, 2, 10, 11} {
		if len(fields[i]) == 0 {
			return database.Flight{}, errors.WithStack(errInvalidRow)
		}
	}

	id, err := types.ParseFlightID(fields[0])
	if err != nil {
		return database.Flight{}, err
	}
	seats, err := parseCount(fields[3])
	if err != nil {
		return database.Flight{}, err
	}
	origin, err := types.ParseAirportCode(fields[4])
	if err != nil {
		return database.Flight{}, err
	}
	destination, err := types.ParseAirportCode(fields[5])
	if err != nil {
		return database.Flight{}, err
	}
	scheduledDeparture, err := types.ParseDateTime(fields[6])
	if err != nil {
		return database.Flight{}, err
	}
	scheduledArrival, err := types.ParseDateTime(fields[7])
	if err != nil {
		return database.Flight{}, err
	}
	realDeparture, err := types.ParseDateTime(fields[8])
	if err != nil {
		return database.Flight{}, err
	}
	realArrival, err := types.ParseDateTime(fields[9])
	if err != nil {
		return database.Flight{}, err
	}
	if realArrival <= realDeparture {
		return database.Flight{}, errors.WithStack(errInvalidRow)
	}

	return database.Flight{
		ID:                 id,
		Airline:            view(fields[1]),
		Plane:              view(fields[2]),
		Origin:             origin,
		Destination:        destination,
		ScheduledDeparture: scheduledDeparture,
		ScheduledArrival:   scheduledArrival,
		RealDeparture:      realDeparture,
		TotalSeats:         seats,
	}, nil
}

// reservations.csv: id, user_id, hotel_id, hotel_name, hotel_stars, city_tax,
// address, begin_date, end_date, price_per_night, includes_breakfast,
// room_details, rating, comment. Breakfast, room details, rating and comment
// may be empty.
func parseReservationRow(fields [][]byte) (database.Reservation, error) {
	if len(fields) != reservationColumns {
		return database.Reservation{}, errors.WithStack(errInvalidRow)
	}
	for _, i := range []int{1, 3, 6} {
		if len(fields[i]) == 0 {
			return database.Reservation{}, errors.WithStack(errInvalidRow)
		}
	}

	id, err := types.ParseReservationID(fields[0])
	if err != nil {
		return database.Reservation{}, err
	}
	hotel, err := types.ParseHotelID(fields[2])
	if err != nil {
		return database.Reservation{}, err
	}
	stars, err := parseCount(fields[4])
	if err != nil || stars < 1 || stars > 5 {
		return database.Reservation{}, errors.WithStack(errInvalidRow)
	}
	cityTax, err := parseCount(fields[5])
	if err != nil || cityTax > 100 {
		return database.Reservation{}, errors.WithStack(errInvalidRow)
	}
	begin, err := types.ParseDate(fields[7])
	if err != nil {
		return database.Reservation{}, err
	}
	end, err := types.ParseDate(fields[8])
	if err != nil {
		return database.Reservation{}, err
	}
	price, err := parseCount(fields[9])
	if err != nil || price == 0 {
		return database.Reservation{}, errors.WithStack(errInvalidRow)
	}
	breakfast, err := types.ParseBreakfast(fields[10])
	if err != nil {
		return database.Reservation{}, err
	}
	rating, err := parseRating(fields[12])
	if err != nil {
		return database.Reservation{}, err
	}

	return database.Reservation{
		ID:            id,
		UserID:        view(fields[1]),
		Hotel:         hotel,
		HotelName:     view(fields[3]),
		Stars:         uint8(stars),
		Begin:         begin,
		End:           end,
		PricePerNight: price,
		CityTax:       uint8(cityTax),
		Breakfast:     breakfast,
		Rating:        rating,
	}, nil
}

// parseRating accepts an empty field (unrated) or a value in 0..5.
func parseRating(field []byte) (uint8, error) {
	if len(field) == 0 {
		return 0, nil
	}
	rating, err := parseCount(field)
	if err != nil || rating > 5 {
		return 0, errors.WithStack(errInvalidRow)
	}
	return uint8(rating), nil
}

func parseCount(field []byte) (uint32, error) {
	v, err := strconv.ParseUint(view(field), 10, 32)
	if err != nil {
		return 0, errors.WithStack(errInvalidRow)
	}
	return uint32(v), nil
}

// validEmail requires a non-empty local part, a non-empty domain and a TLD of
// at least two characters.
func validEmail(field []byte) bool {
	at := bytes.IndexByte(field, '@')
	if at < 1 {
		return false
	}
	domain := field[at+1:]
	dot := bytes.LastIndexByte(domain, '.')
	if dot < 1 {
		return false
	}
	return len(domain)-dot-1 >= 2
}

// view returns a string aliasing the field's bytes. Callers must not retain
// it past the lifetime of the mapping it points into.
func view(field []byte) string {
	if len(field) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(field), len(field))
}
