package ber

import (
	"math/bits"
	"sync"
)

// Pool hands out byte regions for Writer buffers. Implementations must be
// safe for concurrent use; a Writer only ever touches the region it holds.
// Writers zero the bytes they wrote before calling Put.
type Pool interface {
	// Get returns a region of at least minSize bytes. len of the result is
	// its usable size.
	Get(minSize int) []byte
	// Put returns a region obtained from Get.
	Put(buf []byte)
}

// SharedPool is the process-wide Pool used by writers created without
// WithPool.
var SharedPool Pool = newClassPool()

// Pool size classes are powers of two from 1 KiB up to 64 MiB. Larger
// requests are allocated directly and dropped on Put.
const (
	minClassShift = 10
	numClasses    = 17
)

type classPool struct {
	classes [numClasses]sync.Pool
}

func newClassPool() *classPool {
	return &classPool{}
}

// classFor returns the index of the smallest class holding size bytes,
// or -1 when size exceeds the largest class.
func classFor(size int) int {
	if size <= 1<<minClassShift {
		return 0
	}
	idx := bits.Len(uint(size-1) >> minClassShift)
	if idx >= numClasses {
		return -1
	}
	return idx
}

// Get implements Pool.
func (p *classPool) Get(minSize int) []byte {
	idx := classFor(minSize)
	if idx < 0 {
		return make([]byte, minSize)
	}
	size := 1 << (minClassShift + idx)
	if v := p.classes[idx].Get(); v != nil {
		buf := v.(*[]byte)
		return (*buf)[:size]
	}
	return make([]byte, size)
}

// Put implements Pool.
func (p *classPool) Put(buf []byte) {
	c := cap(buf)
	idx := classFor(c)
	if idx < 0 || c != 1<<(minClassShift+idx) {
		return
	}
	buf = buf[:c]
	p.classes[idx].Put(&buf)
}
