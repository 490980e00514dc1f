package alloc

// NewPool creates new record pool. blockCapacity is the number of records per block.
func NewPool[T any](blockCapacity int) *Pool[T] {
	if blockCapacity < 1 {
		blockCapacity = 1
	}
	return &Pool[T]{
		blockCapacity: blockCapacity,
	}
}

// Pool hands out pointers to fixed-size records placed in grow-only blocks.
// Blocks are never reallocated, so every pointer stays valid until the whole
// pool is dropped.
type Pool[T any] struct {
	blockCapacity int
	blocks        [][]T
	allocated     int
}

// New returns a pointer to a zeroed record in the current tail block,
// allocating a fresh block when the tail is full.
func (p *Pool[T]) New() *T {
	tail := len(p.blocks) - 1
	if tail < 0 || len(p.blocks[tail]) == p.blockCapacity {
		p.blocks = append(p.blocks, make([]T, 0, p.blockCapacity))
		tail++
	}
	block := append(p.blocks[tail], *new(T))
	p.blocks[tail] = block
	p.allocated++
	return &block[len(block)-1]
}

// Allocated returns the number of records handed out so far.
func (p *Pool[T]) Allocated() int {
	return p.allocated
}

// Blocks returns the number of blocks backing the pool.
func (p *Pool[T]) Blocks() int {
	return len(p.blocks)
}
