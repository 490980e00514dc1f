package queries_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JosLopes/LI3-sub000/types"
)

func TestUserHistoryMixedOrdering(t *testing.T) {
	requireT := require.New(t)

	db := newFixture(t).
		user("u1", "Rita", types.AccountActive).
		flight(1, "LIS", "OPO", "2023/01/15 10:00:00", 0, 50).
		flight(2, "LIS", "MAD", "2023/06/01 09:00:00", 0, 50).
		passenger(1, "u1").
		passenger(2, "u1").
		reservation(1, "u1", 1001, "2023/06/01", "2023/06/04", 100, 10, 5).
		reservation(2, "u1", 1002, "2022/12/20", "2022/12/25", 80, 0, 0).
		seal()

	outputs := executeQueries(t, db,
		"2 u1",
		"2 u1 flights",
		"2 u1 reservations",
	)

	// Descending date; the 2023/06/01 tie breaks on ascending id, and the
	// zero-padded flight id sorts before the Book prefix.
	requireT.Equal(
		"0000000002;2023/06/01;flight\n"+
			"Book0000000001;2023/06/01;reservation\n"+
			"0000000001;2023/01/15;flight\n"+
			"Book0000000002;2022/12/20;reservation\n",
		outputs[1])
	requireT.Equal(
		"0000000002;2023/06/01\n0000000001;2023/01/15\n",
		outputs[2])
	requireT.Equal(
		"Book0000000001;2023/06/01\nBook0000000002;2022/12/20\n",
		outputs[3])
}

func TestUserHistoryUnknownOrInactiveUser(t *testing.T) {
	requireT := require.New(t)

	db := newFixture(t).
		user("u1", "Rita", types.AccountInactive).
		seal()

	outputs := executeQueries(t, db, "2 u1", "2 nobody")
	requireT.Empty(outputs[1])
	requireT.Empty(outputs[2])
}

func TestUserHistoryRejectsUnknownFilter(t *testing.T) {
	requireParseError(t, "2 u1 hotels")
}
