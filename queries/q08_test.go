package queries_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JosLopes/LI3-sub000/types"
)

func TestHotelRevenueBoundaryDays(t *testing.T) {
	requireT := require.New(t)

	db := newFixture(t).
		user("u1", "Rita", types.AccountActive).
		reservation(1, "u1", 1001, "2022/01/10", "2022/01/15", 100, 10, 4).
		seal()

	outputs := executeQueries(t, db,
		"8 HTL1001 2022/01/12 2022/01/13",
		"8 HTL1001 2022/01/15 2022/01/20",
		"8 HTL1001 2022/01/01 2022/12/31",
	)

	// Checkout day is not a night slept at the hotel.
	requireT.Equal("200\n", outputs[1])
	requireT.Equal("0\n", outputs[2])
	requireT.Equal("500\n", outputs[3])
}

func TestHotelRevenueExcludesCityTaxAndOtherHotels(t *testing.T) {
	requireT := require.New(t)

	db := newFixture(t).
		user("u1", "Rita", types.AccountActive).
		reservation(1, "u1", 1001, "2022/01/10", "2022/01/12", 100, 50, 4).
		reservation(2, "u1", 2002, "2022/01/10", "2022/01/12", 999, 0, 4).
		seal()

	outputs := executeQueries(t, db, "8 HTL1001 2022/01/01 2022/12/31")

	requireT.Equal("200\n", outputs[1])
}

func TestHotelRevenueSplitsAcrossSubranges(t *testing.T) {
	requireT := require.New(t)

	db := newFixture(t).
		user("u1", "Rita", types.AccountActive).
		reservation(1, "u1", 1001, "2022/01/10", "2022/01/15", 100, 10, 4).
		reservation(2, "u1", 1001, "2022/01/14", "2022/01/18", 80, 10, 4).
		seal()

	full := executeQueries(t, db, "8 HTL1001 2022/01/10 2022/01/17")[1]

	var total uint64
	for day := 10; day <= 17; day++ {
		query := fmt.Sprintf("8 HTL1001 2022/01/%02d 2022/01/%02d", day, day)
		var daily uint64
		_, err := fmt.Sscanf(executeQueries(t, db, query)[1], "%d", &daily)
		require.NoError(t, err)
		total += daily
	}

	requireT.Equal(fmt.Sprintf("%d\n", total), full)
}

func TestHotelRevenueRejectsMalformedArguments(t *testing.T) {
	requireParseError(t, "8 HTL1001 2022/01/12")
	requireParseError(t, "8 1001 2022/01/12 2022/01/13")
	requireParseError(t, "8 HTL1001 2022-01-12 2022-01-13")
}
