// ring.go
//
// Lock-free single-producer/single-consumer ring buffer carrying copy
// timing samples from a worker to the recorder.  The structure separates
// producer and consumer fields with full cache-lines to eliminate
// false-sharing, and each slot carries a sequence number so Push/Pop can
// be wait-free without additional atomics.  Samples are stored inline so
// the hand-off allocates nothing.

package ring

import "sync/atomic"

// Sample is one measured copy: which kernel ran, how many cycle-counter
// ticks it took, and how many bytes it moved.
type Sample struct {
	Tag     uint64
	Elapsed uint32
	Size    uint32
}

// slot couples a payload with its sequence stamp.
type slot struct {
	seq uint64 // position in the sequence space
	s   Sample
}

// Ring is a fixed-capacity circular buffer dedicated to one producer and
// one consumer.
type Ring struct {
	_    [64]byte // producer head isolated on its own cache-line
	head uint64
	//lint:ignore U1000 padding to keep head & tail on different cache-lines
	_pad1 [64]byte
	tail  uint64
	//lint:ignore U1000 padding to keep hot fields from colliding with metadata
	_pad2 [64]byte
	mask  uint64
	buf   []slot
}

// New allocates a ring whose size must be a power-of-two; otherwise it
// panics so that the bit-masking arithmetic stays valid.
func New(size int) *Ring {
	if size <= 0 || size&(size-1) != 0 {
		panic("ring: size must be >0 and a power of two")
	}
	r := &Ring{
		mask: uint64(size - 1),
		buf:  make([]slot, size),
	}
	for i := range r.buf {
		r.buf[i].seq = uint64(i)
	}
	return r
}

// Push enqueues one sample, returning false if the buffer is full.
//
//go:nosplit
func (r *Ring) Push(s Sample) bool {
	t := r.tail
	sl := &r.buf[t&r.mask]
	if atomic.LoadUint64(&sl.seq) != t {
		return false // consumer has not yet reclaimed the slot
	}
	sl.s = s
	atomic.StoreUint64(&sl.seq, t+1)
	r.tail = t + 1
	return true
}

// Pop dequeues one sample; ok is false if the buffer is empty.
//
//go:nosplit
func (r *Ring) Pop() (s Sample, ok bool) {
	h := r.head
	sl := &r.buf[h&r.mask]
	if atomic.LoadUint64(&sl.seq) != h+1 {
		return Sample{}, false // producer has not yet published to the slot
	}
	s = sl.s
	atomic.StoreUint64(&sl.seq, h+uint64(len(r.buf)))
	r.head = h + 1
	return s, true
}
