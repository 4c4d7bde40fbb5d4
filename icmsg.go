// Package icmsg bonds a pair of shared-memory regions into a Channel: two
// independent directions, each a lock-free single-producer/single-consumer
// ring buffer, wire-compatible with Zephyr's ICMsg backend. The transport
// subpackage carries the framing and ring arithmetic; this package adds the
// bonding handshake that the two cores run once at startup to agree the
// regions are live before either side trusts what it reads.
package icmsg

import (
	"github.com/jangala-dev/icmsg-go/transport"
)

// MAGIC is the 13-byte bonding handshake payload. Each side sends it as an
// ordinary framed packet over its send region and waits to receive it back
// from the peer's send region before trusting the channel is live.
var MAGIC = [13]byte{0x45, 0x6D, 0x31, 0x6C, 0x31, 0x4B, 0x30, 0x72, 0x6E, 0x33, 0x6C, 0x69, 0x34}

// MemoryConfig describes one direction's worth of shared memory: the
// region, its ring geometry and its cache hooks. A full duplex channel
// needs two — one for each direction. Init takes them as out and in, and
// the peer passes the same two swapped; the notifier and waiter are
// separate Init arguments.
type MemoryConfig struct {
	// Region is the full backing memory for this direction: index header
	// plus ring buffer data, borrowed via transport.RegionFromPointer or
	// handed in directly by a test harness.
	Region []byte
	// BufLen is the ring buffer's usable byte length, excluding the index
	// header. Must be a multiple of 4 and at least transport.MinBufferLen.
	BufLen uint32
	// Align is the byte alignment of the rd_idx/wr_idx index words. Must be
	// a power of two, at least 4.
	Align uint32
	// Cache hooks writeback/invalidate calls around the index words and
	// payload bytes this direction touches. Nil means no-op.
	Cache transport.CacheSync
}

// Channel is a bonded pair of directions: a Sender writing into the out
// region passed to Init, and a Receiver reading from the in region.
type Channel struct {
	sender   *transport.Sender
	receiver *transport.Receiver
}

// Split returns the channel's independent send and receive halves. They are
// safe to use concurrently from different goroutines — the protocol never
// has more than one sender or one receiver per direction.
func (c *Channel) Split() (*transport.Sender, *transport.Receiver) {
	return c.sender, c.receiver
}

// Send is a convenience forwarding to the underlying Sender.
func (c *Channel) Send(msg []byte) error { return c.sender.Send(msg) }

// TryRecv is a convenience forwarding to the underlying Receiver.
func (c *Channel) TryRecv(out []byte) (int, error) { return c.receiver.TryRecv(out) }
