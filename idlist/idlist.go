// Package idlist provides pool-allocated singly-linked chains of 32-bit
// identifiers, used as multi-value index buckets.
package idlist

import (
	"github.com/JosLopes/LI3-sub000/alloc"
)

// Node is one chain link. All nodes of all lists share one alloc.Pool so the
// whole index family is freed by dropping the pool.
type Node struct {
	ID   uint32
	next *Node
}

// List is the chain head embedded in an owning row. The zero value is an
// empty list.
type List struct {
	head *Node
	tail *Node
	len  uint32
}

// Append adds the identifier at the end of the chain, keeping arrival order.
// Duplicates are not inserted; the return value tells whether the identifier
// was added.
func (l *List) Append(pool *alloc.Pool[Node], id uint32) bool {
	for n := l.head; n != nil; n = n.next {
		if n.ID == id {
			return false
		}
	}

	n := pool.New()
	n.ID = id
	if l.tail == nil {
		l.head = n
	} else {
		l.tail.next = n
	}
	l.tail = n
	l.len++
	return true
}

// Len returns the number of identifiers in the chain.
func (l *List) Len() uint32 {
	return l.len
}

// All iterates over the identifiers in arrival order.
func (l *List) All() func(func(uint32) bool) {
	return func(yield func(uint32) bool) {
		for n := l.head; n != nil; n = n.next {
			if !yield(n.ID) {
				return
			}
		}
	}
}
