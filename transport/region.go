// Package transport implements the low-level ICMsg shared-memory ring
// buffer: the send/receive primitives, packet framing, and the
// little-endian atomic indices that make the wire format bit-for-bit
// compatible with Zephyr's ICMsg backend. It does not perform bonding —
// see the root icmsg package for that.
package transport

import (
	"encoding/binary"
	"unsafe"

	"github.com/jangala-dev/icmsg-go/x/mathx"
)

// MinBufferLen is the smallest legal buffer_len: large enough to hold the
// 13-byte bonding MAGIC framed as a single packet (4-byte header + 16-byte
// padded payload = 20 bytes) with one byte to spare for the reserved slot.
const MinBufferLen = 24

// packetHeaderSize is the size of the 4-byte packet header: a big-endian
// u16 length followed by 2 reserved bytes the reader must ignore.
const packetHeaderSize = 4

// RegionHeaderSize returns the size of a region's index header (rd_idx and
// wr_idx, each padded out to align bytes) for a given alignment.
func RegionHeaderSize(align uint32) uint32 { return 2 * align }

func rdIdxOffset(uint32) uint32       { return 0 }
func wrIdxOffset(align uint32) uint32 { return align }

// RegionFromPointer builds a borrowed byte-slice view over a raw,
// linker-placed shared memory address. The region is never owned or
// copied — it is a capability tied to the platform's placement, exactly as
// spec.md §9 describes: represent it as raw address + length, never as an
// ordinary value type.
func RegionFromPointer(addr uintptr, length int) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), length)
}

func validateBufferLen(bufLen uint32) error {
	if bufLen%4 != 0 {
		return ErrInvalidSize
	}
	if bufLen < MinBufferLen {
		return ErrTooSmall
	}
	return nil
}

// maxAlign bounds how large an alignment we'll accept. RegionHeaderSize
// doubles align into a uint32; without a ceiling a caller-supplied align
// near 1<<31 would wrap that multiply silently instead of failing loudly.
const maxAlign = 1 << 16

func validateAlign(align uint32) error {
	if !mathx.Between(align, 4, maxAlign) || !mathx.IsPowerOfTwo(align) {
		return ErrInvalidSize
	}
	return nil
}

func validateRegion(region []byte, bufLen, align uint32) error {
	if err := validateAlign(align); err != nil {
		return err
	}
	if err := validateBufferLen(bufLen); err != nil {
		return err
	}
	want := int(RegionHeaderSize(align) + bufLen)
	if len(region) < want {
		return ErrTooSmall
	}
	return nil
}

// putPacketHeader writes the big-endian length field; the 2 reserved bytes
// are left exactly as they were (the reader must ignore them regardless of
// their contents).
func putPacketHeader(dst []byte, length uint16) {
	binary.BigEndian.PutUint16(dst[0:2], length)
}

func packetPayloadLen(src []byte) uint16 {
	return binary.BigEndian.Uint16(src[0:2])
}
