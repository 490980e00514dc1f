package alloc

import (
	"unsafe"

	"github.com/cespare/xxhash"
)

// NewStringPool creates new string pool. blockSize is the byte capacity of one block.
func NewStringPool(blockSize int) *StringPool {
	if blockSize < 1 {
		blockSize = 1
	}
	return &StringPool{
		blockSize: blockSize,
		interned:  map[uint64][]string{},
	}
}

// StringPool owns variable-length strings placed into fixed-size byte blocks.
// Returned strings alias pool memory and live exactly as long as the pool.
type StringPool struct {
	blockSize int
	blocks    [][]byte
	interned  map[uint64][]string
}

// Place copies the bytes into the pool and returns a string view of the copy.
func (p *StringPool) Place(b []byte) string {
	if len(b) == 0 {
		return ""
	}

	if len(b) > p.blockSize {
		// An oversize string gets its own block, kept behind the current tail
		// so the tail retains its free space for normal strings.
		block := make([]byte, len(b))
		copy(block, b)
		if tail := len(p.blocks) - 1; tail >= 0 {
			p.blocks = append(p.blocks, p.blocks[tail])
			p.blocks[tail] = block
		} else {
			p.blocks = append(p.blocks, block)
		}
		return unsafe.String(unsafe.SliceData(block), len(block))
	}

	tail := len(p.blocks) - 1
	if tail < 0 || p.blockSize-len(p.blocks[tail]) < len(b) {
		p.blocks = append(p.blocks, make([]byte, 0, p.blockSize))
		tail++
	}
	offset := len(p.blocks[tail])
	p.blocks[tail] = append(p.blocks[tail], b...)
	return unsafe.String(unsafe.SliceData(p.blocks[tail][offset:]), len(b))
}

// Intern returns a pooled string equal to the bytes, placing it only the
// first time the value is seen.
func (p *StringPool) Intern(b []byte) string {
	if len(b) == 0 {
		return ""
	}

	h := xxhash.Sum64(b)
	for _, s := range p.interned[h] {
		if s == string(b) {
			return s
		}
	}

	s := p.Place(b)
	p.interned[h] = append(p.interned[h], s)
	return s
}

// Blocks returns the number of blocks backing the pool.
func (p *StringPool) Blocks() int {
	return len(p.blocks)
}
