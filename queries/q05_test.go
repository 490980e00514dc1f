package queries_test

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAirportFlightsOverlappingRanges(t *testing.T) {
	requireT := require.New(t)

	db := newFixture(t).
		flight(1, "LIS", "OPO", "2022/01/15 10:00:00", 0, 50).
		flight(2, "LIS", "MAD", "2023/06/01 10:00:00", 0, 50).
		flight(3, "OPO", "LIS", "2022/06/01 10:00:00", 0, 50).
		seal()

	outputs := executeQueries(t, db,
		`5 LIS "2022/01/01 00:00:00" "2022/12/31 23:59:59"`,
		`5 LIS "2021/01/01 00:00:00" "2024/01/01 00:00:00"`,
	)

	requireT.Equal(
		"0000000001;2022/01/15 10:00:00;OPO;TAP Air Portugal;A320\n",
		outputs[1])
	// Descending departure: the 2023 flight first.
	requireT.Equal(
		"0000000002;2023/06/01 10:00:00;MAD;TAP Air Portugal;A320\n"+
			"0000000001;2022/01/15 10:00:00;OPO;TAP Air Portugal;A320\n",
		outputs[2])
}

func TestAirportFlightsInclusiveBounds(t *testing.T) {
	requireT := require.New(t)

	db := newFixture(t).
		flight(1, "LIS", "OPO", "2022/01/15 10:00:00", 0, 50).
		seal()

	outputs := executeQueries(t, db,
		`5 LIS "2022/01/15 10:00:00" "2022/01/15 10:00:00"`,
		`5 LIS "2022/01/15 10:00:01" "2022/01/16 00:00:00"`,
	)

	requireT.NotEmpty(outputs[1])
	requireT.Empty(outputs[2])
}

func TestAirportFlightsDuplicateFiltersShareBucket(t *testing.T) {
	requireT := require.New(t)

	db := newFixture(t).
		flight(1, "LIS", "OPO", "2022/01/15 10:00:00", 0, 50).
		seal()

	outputs := executeQueries(t, db,
		`5 LIS "2022/01/01 00:00:00" "2022/12/31 23:59:59"`,
		`5 lis "2022/01/01 00:00:00" "2022/12/31 23:59:59"`,
	)

	// The lowercase origin canonicalises to the same filter.
	requireT.Equal(outputs[1], outputs[2])
	requireT.NotEmpty(outputs[1])
}

func TestAirportFlightsRejectsMalformedArguments(t *testing.T) {
	requireParseError(t, `5 LISB "2022/01/01 00:00:00" "2022/12/31 23:59:59"`)
	requireParseError(t, `5 LIS "2022/01/01" "2022/12/31 23:59:59"`)
	requireParseError(t, `5 LIS "2022/01/01 00:00:00"`)
}
