package idlist_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JosLopes/LI3-sub000/alloc"
	"github.com/JosLopes/LI3-sub000/idlist"
)

func collect(l *idlist.List) []uint32 {
	items := []uint32{}
	for id := range l.All() {
		items = append(items, id)
	}
	return items
}

func TestAppendKeepsArrivalOrder(t *testing.T) {
	requireT := require.New(t)

	pool := alloc.NewPool[idlist.Node](4)
	var l idlist.List

	items := make([]uint32, 0, 100)
	for i := range uint32(100) {
		id := i * 7 % 101
		items = append(items, id)
		requireT.True(l.Append(pool, id))
	}

	requireT.Equal(items, collect(&l))
	requireT.Equal(uint32(100), l.Len())
}

func TestAppendSkipsDuplicates(t *testing.T) {
	requireT := require.New(t)

	pool := alloc.NewPool[idlist.Node](4)
	var l idlist.List

	requireT.True(l.Append(pool, 5))
	requireT.True(l.Append(pool, 3))
	requireT.False(l.Append(pool, 5))
	requireT.False(l.Append(pool, 3))
	requireT.True(l.Append(pool, 9))

	requireT.Equal([]uint32{5, 3, 9}, collect(&l))
	requireT.Equal(uint32(3), l.Len())
	requireT.Equal(3, pool.Allocated())
}

func TestListsSharePool(t *testing.T) {
	requireT := require.New(t)

	pool := alloc.NewPool[idlist.Node](2)
	var a, b idlist.List
	for i := range uint32(10) {
		a.Append(pool, i)
		b.Append(pool, i+100)
	}

	requireT.Equal(20, pool.Allocated())
	requireT.Equal([]uint32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, collect(&a))
	requireT.Equal([]uint32{100, 101, 102, 103, 104, 105, 106, 107, 108, 109}, collect(&b))
}

func TestEmptyList(t *testing.T) {
	requireT := require.New(t)

	var l idlist.List
	requireT.Empty(collect(&l))
	requireT.Zero(l.Len())
}
