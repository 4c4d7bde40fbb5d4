package transport

import (
	"math/bits"
	"sync/atomic"
	"unsafe"
)

// hostIsBigEndian is resolved once at init via the classic byte-order probe:
// store a known u16 and look at its first byte.
var hostIsBigEndian = func() bool {
	var x uint16 = 1
	return *(*byte)(unsafe.Pointer(&x)) == 0
}()

// leIndex is a 32-bit index word living at a fixed byte offset inside a
// shared memory region, accessed atomically with respect to the local CPU
// and always interpreted as little-endian on the wire — per spec, this is
// asymmetric with the host's native atomic representation and must be
// corrected for on a big-endian host.
//
// Go's sync/atomic loads and stores are already sequentially consistent,
// which is strictly stronger than the acquire/release pairing the protocol
// requires, so no explicit memory-order parameter is threaded through here.
type leIndex struct {
	ptr *uint32
}

func newLeIndex(region []byte, offset uint32) leIndex {
	return leIndex{ptr: (*uint32)(unsafe.Pointer(&region[offset]))}
}

func (i leIndex) load() uint32 {
	v := atomic.LoadUint32(i.ptr)
	if hostIsBigEndian {
		v = bits.ReverseBytes32(v)
	}
	return v
}

func (i leIndex) store(v uint32) {
	if hostIsBigEndian {
		v = bits.ReverseBytes32(v)
	}
	atomic.StoreUint32(i.ptr, v)
}
