package queries_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JosLopes/LI3-sub000/types"
)

func TestTopAirportsTieBreaksOnCode(t *testing.T) {
	requireT := require.New(t)

	// One flight between two airports gives both the same passenger count.
	db := newFixture(t).
		user("u1", "Rita", types.AccountActive).
		user("u2", "Ana", types.AccountActive).
		user("u3", "Gil", types.AccountActive).
		flight(1, "BBB", "AAA", "2023/03/10 08:00:00", 0, 10).
		passenger(1, "u1").
		passenger(1, "u2").
		passenger(1, "u3").
		seal()

	outputs := executeQueries(t, db, "6 2023 5", "6 2023 1", "6 2022 5")

	requireT.Equal("AAA;3\nBBB;3\n", outputs[1])
	requireT.Equal("AAA;3\n", outputs[2])
	requireT.Empty(outputs[3])
}

func TestTopAirportsCountsBothEndpointsPerYear(t *testing.T) {
	requireT := require.New(t)

	db := newFixture(t).
		user("u1", "Rita", types.AccountActive).
		user("u2", "Ana", types.AccountActive).
		flight(1, "LIS", "OPO", "2023/03/10 08:00:00", 0, 10).
		flight(2, "LIS", "MAD", "2023/05/10 08:00:00", 0, 10).
		flight(3, "LIS", "OPO", "2022/03/10 08:00:00", 0, 10).
		passenger(1, "u1").
		passenger(1, "u2").
		passenger(2, "u1").
		passenger(3, "u1").
		seal()

	outputs := executeQueries(t, db, "6 2023 10", "6 2022 10")

	requireT.Equal("LIS;3\nOPO;2\nMAD;1\n", outputs[1])
	requireT.Equal("LIS;1\nOPO;1\n", outputs[2])
}

func TestTopAirportsRejectsMalformedArguments(t *testing.T) {
	requireParseError(t, "6 23 5")
	requireParseError(t, "6 2023 0")
	requireParseError(t, "6 2023 -1")
	requireParseError(t, "6 2023")
}
