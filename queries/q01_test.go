package queries_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JosLopes/LI3-sub000/types"
)

func TestEntityDetailsDispatchOnAmbiguousArgument(t *testing.T) {
	requireT := require.New(t)

	db := newFixture(t).
		user("u1", "Rita", types.AccountActive).
		flight(1, "LIS", "OPO", "2023/01/15 10:00:00", 300, 50).
		reservation(1, "u1", 1001, "2023/06/01", "2023/06/04", 100, 10, 5).
		seal()

	outputs := executeQueries(t, db,
		"1 Book0000000001",
		"1 000000000001",
		"1 u1",
	)

	requireT.Equal(
		"HTL1001;Hotel Mar;4;2023/06/01;2023/06/04;True;3;330.000\n",
		outputs[1])
	requireT.Equal(
		"TAP Air Portugal;A320;LIS;OPO;2023/01/15 10:00:00;2023/01/15 10:00:02;0;300\n",
		outputs[2])
	requireT.Equal(
		"Rita;F;28;PRT;AB123456;0;1;330.000\n",
		outputs[3])
}

func TestEntityDetailsMissingOrInactiveUser(t *testing.T) {
	requireT := require.New(t)

	db := newFixture(t).
		user("ghosted", "Gil", types.AccountInactive).
		seal()

	outputs := executeQueries(t, db,
		"1 ghosted",
		"1 nobody",
		"1 0000000042",
		"1 Book0000000042",
	)

	for line := uint32(1); line <= 4; line++ {
		requireT.Empty(outputs[line])
	}
}

func TestEntityDetailsCountsIndexedItems(t *testing.T) {
	requireT := require.New(t)

	db := newFixture(t).
		user("u1", "Rita", types.AccountActive).
		flight(1, "LIS", "OPO", "2023/01/15 10:00:00", 0, 50).
		flight(2, "LIS", "MAD", "2023/02/15 10:00:00", 0, 50).
		passenger(1, "u1").
		passenger(2, "u1").
		reservation(1, "u1", 1001, "2023/06/01", "2023/06/04", 100, 0, 5).
		seal()

	outputs := executeQueries(t, db, "1 u1")
	requireT.Equal("Rita;F;28;PRT;AB123456;2;1;300.000\n", outputs[1])
}
