package query_test

import (
	"testing"

	"github.com/outofforest/mass"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"github.com/JosLopes/LI3-sub000/query"
)

func TestListSortAndRuns(t *testing.T) {
	requireT := require.New(t)
	parser := newParser(t, 1, 2, 3)

	list := &query.List{}
	for _, in := range []struct {
		text string
		line uint32
	}{
		{"3 a", 1},
		{"1 b", 2},
		{"3 c", 3},
		{"2 d", 4},
		{"1 e", 5},
	} {
		instance, err := parser.Parse(in.text, in.line)
		requireT.NoError(err)
		list.Append(instance)
	}
	requireT.Equal(5, list.Len())

	list.Sort()

	ordered := []*query.Instance{}
	for instance := range list.All() {
		ordered = append(ordered, instance)
	}
	requireT.Equal([]int{1, 1, 2, 3, 3}, lo.Map(ordered, func(i *query.Instance, _ int) int {
		return i.Code()
	}))
	requireT.Equal([]uint32{2, 5, 4, 1, 3}, lo.Map(ordered, func(i *query.Instance, _ int) uint32 {
		return i.Line
	}))

	runs := [][]uint32{}
	for run := range list.Runs() {
		runs = append(runs, lo.Map(run, func(i *query.Instance, _ int) uint32 {
			return i.Line
		}))
	}
	requireT.Equal([][]uint32{{2, 5}, {4}, {1, 3}}, runs)
}

func TestEmptyListRuns(t *testing.T) {
	requireT := require.New(t)

	list := &query.List{}
	list.Sort()
	for range list.Runs() {
		requireT.Fail("no runs expected")
	}
}

func TestListKeepsDuplicateLinesOfSameCode(t *testing.T) {
	requireT := require.New(t)
	parser := newParser(t, 7)
	massInstance := mass.New[query.Instance](16)

	list := &query.List{}
	instance, err := parser.Parse("7 x", 1)
	requireT.NoError(err)
	list.Append(instance)
	list.Append(instance.Clone(massInstance))

	list.Sort()
	total := 0
	for run := range list.Runs() {
		total += len(run)
	}
	requireT.Equal(2, total)
}
