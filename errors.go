package icmsg

import "fmt"

// InitErrorKind classifies what stage of Init failed.
type InitErrorKind int

const (
	// KindTooSmall means a region is too small to hold its index header
	// plus buffer_len bytes, or buffer_len is below transport.MinBufferLen.
	KindTooSmall InitErrorKind = iota
	// KindInvalidSize means buffer_len or align failed a validity check
	// (buffer_len not a multiple of 4, or align not a power of two between
	// 4 and 1<<16).
	KindInvalidSize
	// KindBondingSend means the MAGIC packet could not be written during
	// the handshake (ErrInsufficientCapacity). A validated buffer always
	// has room for the 20-byte MAGIC frame in an empty ring, so this
	// happens only when the peer's rd_idx word is not zero at that point.
	KindBondingSend
	// KindBondingRecv means the peer's MAGIC packet was not received: the
	// wait for the peer's notification was cancelled via ctx, or the
	// single TryRecv after it failed (Err holds the RecvError).
	KindBondingRecv
	// KindBondingWrongMagic means a packet arrived during bonding but its
	// contents did not match MAGIC: the peer is running an incompatible
	// protocol version, or the regions are mismatched or corrupt.
	KindBondingWrongMagic
)

func (k InitErrorKind) String() string {
	switch k {
	case KindTooSmall:
		return "too_small"
	case KindInvalidSize:
		return "invalid_size"
	case KindBondingSend:
		return "bonding_send"
	case KindBondingRecv:
		return "bonding_recv"
	case KindBondingWrongMagic:
		return "bonding_wrong_magic"
	default:
		return "unknown"
	}
}

// InitError wraps a failure during Init with the stage it happened in and,
// where one exists, the underlying transport error.
type InitError struct {
	Kind InitErrorKind
	Op   string
	Err  error
}

func (e *InitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("icmsg: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("icmsg: %s: %s", e.Op, e.Kind)
}

func (e *InitError) Unwrap() error { return e.Err }
