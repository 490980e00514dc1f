package types

import (
	"fmt"

	"github.com/outofforest/photon"
	"github.com/pkg/errors"
)

const (
	// CodeLength is the number of letters in a packed airport or country code.
	CodeLength = 3

	// SecondsPerDay is the number of seconds in one civil day.
	SecondsPerDay = 24 * 60 * 60

	secondBits = 17
	secondMask = 1<<secondBits - 1
)

type (
	// FlightID is the numeric identifier of a flight.
	FlightID uint32

	// ReservationID is the numeric part of a "Book"-prefixed reservation identifier.
	ReservationID uint32

	// HotelID is the numeric part of an "HTL"-prefixed hotel identifier.
	HotelID uint32

	// AirportCode is a three-letter airport code packed into the low 24 bits.
	AirportCode uint32

	// CountryCode is a three-letter country code packed like an airport code.
	CountryCode uint32
)

// ParseFlightID parses a decimal flight identifier. Leading zeros are allowed
// as long as the value fits in 32 bits.
func ParseFlightID(field []byte) (FlightID, error) {
	v, err := parseUint32(field)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid flight id %q", field)
	}
	return FlightID(v), nil
}

// String returns the canonical zero-padded form of the flight identifier.
func (id FlightID) String() string {
	return fmt.Sprintf("%010d", uint32(id))
}

// ParseReservationID parses a "Book"-prefixed reservation identifier.
func ParseReservationID(field []byte) (ReservationID, error) {
	if len(field) < 5 || string(field[:4]) != "Book" {
		return 0, errors.Errorf("invalid reservation id %q", field)
	}
	v, err := parseUint32(field[4:])
	if err != nil {
		return 0, errors.Wrapf(err, "invalid reservation id %q", field)
	}
	return ReservationID(v), nil
}

// String returns the canonical "Book"-prefixed form of the reservation identifier.
func (id ReservationID) String() string {
	return fmt.Sprintf("Book%010d", uint32(id))
}

// ParseHotelID parses an "HTL"-prefixed hotel identifier.
func ParseHotelID(field []byte) (HotelID, error) {
	if len(field) < 4 || string(field[:3]) != "HTL" {
		return 0, errors.Errorf("invalid hotel id %q", field)
	}
	v, err := parseUint32(field[3:])
	if err != nil {
		return 0, errors.Wrapf(err, "invalid hotel id %q", field)
	}
	return HotelID(v), nil
}

// String returns the canonical "HTL"-prefixed form of the hotel identifier.
func (id HotelID) String() string {
	return fmt.Sprintf("HTL%d", uint32(id))
}

// ParseAirportCode parses a three-letter airport code, uppercasing it.
func ParseAirportCode(field []byte) (AirportCode, error) {
	v, err := packCode(field)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid airport code %q", field)
	}
	return AirportCode(v), nil
}

// String unpacks the code back into its three letters.
func (c AirportCode) String() string {
	return unpackCode(uint32(c))
}

// Compare orders codes lexicographically by their letters, not by the packed value.
func (c AirportCode) Compare(other AirportCode) int {
	return compareCodes(uint32(c), uint32(other))
}

// ParseCountryCode parses a three-letter country code, uppercasing it.
func ParseCountryCode(field []byte) (CountryCode, error) {
	v, err := packCode(field)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid country code %q", field)
	}
	return CountryCode(v), nil
}

// String unpacks the code back into its three letters.
func (c CountryCode) String() string {
	return unpackCode(uint32(c))
}

// The first letter occupies the lowest byte, so the packed value is not
// ordered like the text form. Compare unpacks before comparing.
func packCode(field []byte) (uint32, error) {
	if len(field) != CodeLength {
		return 0, errors.New("code must be three letters")
	}
	var code uint32
	for i, b := range field {
		switch {
		case b >= 'a' && b <= 'z':
			b -= 'a' - 'A'
		case b >= 'A' && b <= 'Z':
		default:
			return 0, errors.New("code must be three letters")
		}
		code |= uint32(b) << (8 * i)
	}
	return code, nil
}

func unpackCode(code uint32) string {
	b := photon.NewFromValue(&code).B
	return string(b[:CodeLength])
}

func compareCodes(a, b uint32) int {
	ab := photon.NewFromValue(&a).B
	bb := photon.NewFromValue(&b).B
	for i := range CodeLength {
		if ab[i] != bb[i] {
			if ab[i] < bb[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Date is a civil date packed as year<<9 | month<<5 | day, so the integer
// order equals the chronological order.
type Date uint32

// NewDate builds a date from its components.
func NewDate(year, month, day int) Date {
	return Date(year<<9 | month<<5 | day)
}

// ParseDate parses a strictly fixed-width YYYY/MM/DD date.
func ParseDate(field []byte) (Date, error) {
	if len(field) != 10 || field[4] != '/' || field[7] != '/' {
		return 0, errors.Errorf("invalid date %q", field)
	}
	year, ok1 := parseFixed(field[0:4])
	month, ok2 := parseFixed(field[5:7])
	day, ok3 := parseFixed(field[8:10])
	if !ok1 || !ok2 || !ok3 || month < 1 || month > 12 || day < 1 || day > 31 {
		return 0, errors.Errorf("invalid date %q", field)
	}
	return NewDate(year, month, day), nil
}

// Year returns the year component.
func (d Date) Year() int {
	return int(d >> 9)
}

// Month returns the month component.
func (d Date) Month() int {
	return int(d >> 5 & 0xf)
}

// Day returns the day component.
func (d Date) Day() int {
	return int(d & 0x1f)
}

// Days returns the day number since the civil epoch, for day arithmetic.
func (d Date) Days() int {
	y := d.Year()
	m := d.Month()
	if m <= 2 {
		y--
	}
	era := y / 400
	if y < 0 && y%400 != 0 {
		era--
	}
	yoe := y - era*400
	mp := m - 3
	if m <= 2 {
		mp = m + 9
	}
	doy := (153*mp+2)/5 + d.Day() - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - 719468
}

// Age returns the number of full years between the date and the reference date.
func (d Date) Age(reference Date) int {
	age := reference.Year() - d.Year()
	if uint32(reference)&0x1ff < uint32(d)&0x1ff {
		age--
	}
	return age
}

func (d Date) String() string {
	return fmt.Sprintf("%04d/%02d/%02d", d.Year(), d.Month(), d.Day())
}

// DateTime is a date plus the second of the day, packed as
// uint64(Date)<<17 | second, so the integer order equals the chronological order.
type DateTime uint64

// NewDateTime builds a date-and-time from a date and the second of the day.
func NewDateTime(date Date, second int) DateTime {
	return DateTime(uint64(date)<<secondBits | uint64(second))
}

// ParseDateTime parses a strictly fixed-width "YYYY/MM/DD HH:MM:SS".
func ParseDateTime(field []byte) (DateTime, error) {
	if len(field) != 19 || field[10] != ' ' || field[13] != ':' || field[16] != ':' {
		return 0, errors.Errorf("invalid date-and-time %q", field)
	}
	date, err := ParseDate(field[:10])
	if err != nil {
		return 0, errors.Errorf("invalid date-and-time %q", field)
	}
	hour, ok1 := parseFixed(field[11:13])
	minute, ok2 := parseFixed(field[14:16])
	second, ok3 := parseFixed(field[17:19])
	if !ok1 || !ok2 || !ok3 || hour > 23 || minute > 59 || second > 59 {
		return 0, errors.Errorf("invalid date-and-time %q", field)
	}
	return NewDateTime(date, hour*3600+minute*60+second), nil
}

// Date returns the date component.
func (dt DateTime) Date() Date {
	return Date(dt >> secondBits)
}

// SecondOfDay returns the second within the day.
func (dt DateTime) SecondOfDay() int {
	return int(dt & secondMask)
}

// Epoch returns absolute seconds since the civil epoch, for delay arithmetic.
func (dt DateTime) Epoch() int64 {
	return int64(dt.Date().Days())*SecondsPerDay + int64(dt.SecondOfDay())
}

func (dt DateTime) String() string {
	s := dt.SecondOfDay()
	return fmt.Sprintf("%s %02d:%02d:%02d", dt.Date(), s/3600, s/60%60, s%60)
}

// AccountStatus tells whether a user account is active.
type AccountStatus uint8

// Account status values.
const (
	AccountActive AccountStatus = iota
	AccountInactive
)

// ParseAccountStatus normalises the status case-insensitively; anything but
// active or inactive is rejected.
func ParseAccountStatus(field []byte) (AccountStatus, error) {
	switch {
	case equalFold(field, "active"):
		return AccountActive, nil
	case equalFold(field, "inactive"):
		return AccountInactive, nil
	default:
		return 0, errors.Errorf("invalid account status %q", field)
	}
}

// Active tells whether the status is the active one.
func (s AccountStatus) Active() bool {
	return s == AccountActive
}

func (s AccountStatus) String() string {
	if s == AccountActive {
		return "active"
	}
	return "inactive"
}

// Breakfast tells whether a reservation includes breakfast.
type Breakfast uint8

// Breakfast values. The dataset leaves the field empty when unspecified.
const (
	BreakfastUnspecified Breakfast = iota
	BreakfastYes
	BreakfastNo
)

// ParseBreakfast accepts the spellings found in the dataset: empty,
// true/t/1 and false/f/0, case-insensitively.
func ParseBreakfast(field []byte) (Breakfast, error) {
	switch {
	case len(field) == 0:
		return BreakfastUnspecified, nil
	case equalFold(field, "true") || equalFold(field, "t") || string(field) == "1":
		return BreakfastYes, nil
	case equalFold(field, "false") || equalFold(field, "f") || string(field) == "0":
		return BreakfastNo, nil
	default:
		return 0, errors.Errorf("invalid breakfast flag %q", field)
	}
}

func (b Breakfast) String() string {
	if b == BreakfastYes {
		return "True"
	}
	return "False"
}

func parseUint32(field []byte) (uint32, error) {
	if len(field) == 0 {
		return 0, errors.New("empty number")
	}
	var v uint64
	for _, b := range field {
		if b < '0' || b > '9' {
			return 0, errors.New("not a decimal number")
		}
		v = v*10 + uint64(b-'0')
		if v > 0xffffffff {
			return 0, errors.New("number does not fit in 32 bits")
		}
	}
	return uint32(v), nil
}

func parseFixed(field []byte) (int, bool) {
	v := 0
	for _, b := range field {
		if b < '0' || b > '9' {
			return 0, false
		}
		v = v*10 + int(b-'0')
	}
	return v, true
}

func equalFold(field []byte, lower string) bool {
	if len(field) != len(lower) {
		return false
	}
	for i, b := range field {
		if b >= 'A' && b <= 'Z' {
			b += 'a' - 'A'
		}
		if b != lower[i] {
			return false
		}
	}
	return true
}
