package transport

import (
	"context"

	"github.com/jangala-dev/icmsg-go/notify"
	"github.com/jangala-dev/icmsg-go/x/mathx"
)

// Receiver is the reading half of a channel direction. TryRecv never
// suspends; Recv layers a cooperative async wait on top of it using the
// Waiter the Receiver was constructed with.
type Receiver struct {
	region  []byte
	dataOff uint32
	bufLen  uint32
	align   uint32

	wrIdxShared leIndex // owned by the peer; we only read it
	rdIdxShared leIndex // owned by us; we write it
	rdIdx       uint32  // local cache of the last value we published

	waiter notify.Waiter
	cache  CacheSync
}

// NewReceiver constructs a Receiver over region. It zeroes only the rd_idx
// word — the word this side owns.
func NewReceiver(region []byte, bufLen, align uint32, waiter notify.Waiter, cache CacheSync) (*Receiver, error) {
	if err := validateRegion(region, bufLen, align); err != nil {
		return nil, err
	}
	if cache == nil {
		cache = NoCacheSync{}
	}
	r := &Receiver{
		region:      region,
		dataOff:     RegionHeaderSize(align),
		bufLen:      bufLen,
		align:       align,
		wrIdxShared: newLeIndex(region, wrIdxOffset(align)),
		rdIdxShared: newLeIndex(region, rdIdxOffset(align)),
		waiter:      waiter,
		cache:       cache,
	}
	r.rdIdxShared.store(0)
	return r, nil
}

// TryRecv copies at most one queued message into out and returns its
// length. ErrEmpty and ErrMessageTooBig leave the ring completely
// unchanged — ErrMessageTooBig in particular is recoverable: the packet
// stays queued for a retry with a bigger buffer.
func (r *Receiver) TryRecv(out []byte) (int, error) {
	r.cache.InvalidateRange(wrIdxOffset(r.align), 4)
	wr := r.wrIdxShared.load()
	rd := r.rdIdx
	if wr == rd {
		return 0, ErrEmpty
	}

	data := r.region[r.dataOff:]
	header := data[rd : rd+packetHeaderSize]
	msgLen := int(packetPayloadLen(header))

	if msgLen > len(out) {
		return 0, ErrMessageTooBig
	}
	if uint32(msgLen) > r.bufLen {
		return 0, ErrInvalidMessage
	}

	rd = advance(rd, packetHeaderSize, r.bufLen)
	readWrapped(data, rd, out[:msgLen], r.bufLen)
	padded := mathx.RoundUp4(uint32(msgLen))
	rd = advance(rd, padded, r.bufLen)

	r.rdIdx = rd
	r.rdIdxShared.store(rd)
	return msgLen, nil
}

// RdIdx returns the last rd_idx value this side published. Diagnostic
// only; it plays no part in TryRecv's own bookkeeping.
func (r *Receiver) RdIdx() uint32 { return r.rdIdx }

// Recv turns TryRecv into an awaitable that completes when a message is
// available, without losing a notification that races with the check.
// See spec.md §4.3 for the algorithm this implements.
//
// Cancelling ctx while Recv is suspended leaves the ring untouched: no
// message is lost, and rd_idx has not moved.
func (r *Receiver) Recv(ctx context.Context, out []byte) (int, error) {
	for {
		armed := r.waiter.Armed()

		// Poll once without blocking: did a notification already land
		// before we checked? If so it must not be lost when we go on to
		// find the ring empty below.
		var alreadyFired bool
		select {
		case <-armed:
			alreadyFired = true
		default:
		}

		n, err := r.TryRecv(out)
		if err == nil {
			return n, nil
		}
		if err != ErrEmpty {
			return 0, err
		}

		if alreadyFired {
			// The notification we just drained may have announced data
			// we haven't seen yet as well as data we have; loop and
			// re-arm rather than risk waiting on a channel that will
			// never fire again.
			continue
		}

		select {
		case <-armed:
			continue
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
}

func readWrapped(data []byte, off uint32, dst []byte, bufLen uint32) {
	if len(dst) == 0 {
		return
	}
	tail := bufLen - off
	if uint32(len(dst)) > tail {
		n := copy(dst, data[off:off+tail])
		copy(dst[n:], data)
		return
	}
	copy(dst, data[off:off+uint32(len(dst))])
}
