package transport

import (
	"github.com/jangala-dev/icmsg-go/notify"
	"github.com/jangala-dev/icmsg-go/x/mathx"
)

// Sender is the synchronous, non-blocking writing half of a channel
// direction. It never suspends: Send either succeeds immediately or
// returns ErrInsufficientCapacity.
type Sender struct {
	region  []byte
	dataOff uint32
	bufLen  uint32

	rdIdxShared leIndex // owned by the peer; we only read it
	wrIdxShared leIndex // owned by us; we write it
	wrIdx       uint32  // local cache of the last value we published

	notifier notify.Notifier
	cache    CacheSync
}

// NewSender constructs a Sender over region, which must be at least
// RegionHeaderSize(align)+bufLen bytes. It zeroes only the wr_idx word —
// the word this side owns — leaving the peer's rd_idx word for the
// Receiver on the other core to initialise.
func NewSender(region []byte, bufLen, align uint32, notifier notify.Notifier, cache CacheSync) (*Sender, error) {
	if err := validateRegion(region, bufLen, align); err != nil {
		return nil, err
	}
	if cache == nil {
		cache = NoCacheSync{}
	}
	s := &Sender{
		region:      region,
		dataOff:     RegionHeaderSize(align),
		bufLen:      bufLen,
		rdIdxShared: newLeIndex(region, rdIdxOffset(align)),
		wrIdxShared: newLeIndex(region, wrIdxOffset(align)),
		notifier:    notifier,
		cache:       cache,
	}
	s.wrIdxShared.store(0)
	return s, nil
}

// Send writes a framed packet (header + payload + zero padding) into the
// ring if there is room, publishes the advanced wr_idx, and notifies the
// peer. On ErrInsufficientCapacity the ring is left completely unchanged.
func (s *Sender) Send(msg []byte) error {
	wr := s.wrIdx
	rd := s.rdIdxShared.load()

	// One slot is always reserved so rd==wr unambiguously means empty.
	var free uint32
	if rd > wr {
		free = rd - wr - 1
	} else {
		free = rd + s.bufLen - wr - 1
	}

	padded := mathx.RoundUp4(uint32(len(msg)))
	needed := padded + packetHeaderSize
	if needed > free {
		return ErrInsufficientCapacity
	}

	data := s.region[s.dataOff:]

	putPacketHeader(data[wr:wr+packetHeaderSize], uint16(len(msg)))
	s.cache.WritebackRange(s.dataOff+wr, packetHeaderSize)
	wr = advance(wr, packetHeaderSize, s.bufLen)

	writeWrapped(data, wr, msg, s.bufLen)
	var zeros [3]byte
	writeWrapped(data, advance(wr, uint32(len(msg)), s.bufLen), zeros[:padded-uint32(len(msg))], s.bufLen)
	if padded > 0 {
		// Cover both halves when the padded payload wraps past the ring's end.
		if tail := s.bufLen - wr; padded > tail {
			s.cache.WritebackRange(s.dataOff+wr, tail)
			s.cache.WritebackRange(s.dataOff, padded-tail)
		} else {
			s.cache.WritebackRange(s.dataOff+wr, padded)
		}
	}
	wr = advance(wr, padded, s.bufLen)

	s.wrIdx = wr
	s.wrIdxShared.store(wr)
	s.Notify()
	return nil
}

// Notify fires the notifier without sending a message. Used both by Send
// and directly by the bonding handshake's 1ms retry pulse.
func (s *Sender) Notify() {
	s.notifier.Notify()
}

// WrIdx returns the last wr_idx value this side published. Diagnostic
// only; it plays no part in Send's own bookkeeping.
func (s *Sender) WrIdx() uint32 { return s.wrIdx }

// advance moves idx forward by n bytes modulo bufLen. n may itself exceed
// bufLen only transiently during the free-space arithmetic above, never
// here: callers only ever advance by a header or a padded payload, both of
// which fit within one lap of the ring by construction (needed <= free <=
// bufLen-1).
func advance(idx, n, bufLen uint32) uint32 {
	idx += n
	if idx >= bufLen {
		idx -= bufLen
	}
	return idx
}

// writeWrapped copies src into data starting at offset off, splitting
// across the end of the ring if necessary.
func writeWrapped(data []byte, off uint32, src []byte, bufLen uint32) {
	if len(src) == 0 {
		return
	}
	tail := bufLen - off
	if uint32(len(src)) > tail {
		n := copy(data[off:], src[:tail])
		copy(data, src[n:])
		return
	}
	copy(data[off:], src)
}
