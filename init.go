package icmsg

import (
	"bytes"
	"context"
	"time"

	"github.com/jangala-dev/icmsg-go/internal/logx"
	"github.com/jangala-dev/icmsg-go/loopback"
	"github.com/jangala-dev/icmsg-go/notify"
	"github.com/jangala-dev/icmsg-go/transport"
	"github.com/jangala-dev/icmsg-go/x/timex"
)

// retryHz is the bonding pulse rate: notify the peer once every period this
// frequency implies while we wait for its own notification to arrive.
const retryHz = 1000

// retryInterval is how often the notification is repeated while bonding
// waits for the peer to notice its MAGIC packet.
var retryInterval = time.Duration(timex.PeriodFromHz(retryHz))

// bondingRecvBufLen is larger than len(MAGIC) so a peer running a future,
// longer handshake payload still bonds against this implementation.
const bondingRecvBufLen = 32

// Init bonds out and in into a Channel. Each side of a pairing calls Init
// with out and in swapped relative to the other side: what one core calls
// its out region is the other core's in region.
//
// It zeroes both directions' owned index words, sends MAGIC over out,
// notifies the peer once every retryInterval until the peer's own
// notification arrives on waiter, then performs exactly one try_recv and
// checks the result against MAGIC. Cancelling ctx aborts the wait; it does
// not abort an in-flight try_recv, which is synchronous.
func Init(ctx context.Context, out, in MemoryConfig, notifier notify.Notifier, waiter notify.Waiter, clock loopback.Clock) (*Channel, error) {
	if clock == nil {
		clock = loopback.SystemClock{}
	}

	sender, err := transport.NewSender(out.Region, out.BufLen, out.Align, notifier, out.Cache)
	if err != nil {
		return nil, wrapConfigError("new_sender", err)
	}
	receiver, err := transport.NewReceiver(in.Region, in.BufLen, in.Align, waiter, in.Cache)
	if err != nil {
		return nil, wrapConfigError("new_receiver", err)
	}

	if err := sender.Send(MAGIC[:]); err != nil {
		return nil, &InitError{Kind: KindBondingSend, Op: "send_magic", Err: err}
	}
	logx.Printf("icmsg: sent magic, bonding at %dms", timex.NowMs())

	// Repeat the notification every retryInterval until the peer's
	// notification arrives. armed is captured once, before the loop, so a
	// notification that lands between iterations is never missed.
	armed := waiter.Armed()
waitLoop:
	for {
		select {
		case <-armed:
			break waitLoop
		case <-clock.After(retryInterval):
			logx.Printf("icmsg: notify retry")
			sender.Notify()
		case <-ctx.Done():
			return nil, &InitError{Kind: KindBondingRecv, Op: "wait_for_notify", Err: ctx.Err()}
		}
	}

	// The peer may still be spinning on its own pulse waiting for us; one
	// more notify lets it escape its wait as soon as we escape ours.
	sender.Notify()

	// Allow larger messages for forward compatibility.
	message := make([]byte, bondingRecvBufLen)
	n, err := receiver.TryRecv(message)
	if err != nil {
		return nil, &InitError{Kind: KindBondingRecv, Op: "try_recv", Err: err}
	}
	if n < len(MAGIC) || !bytes.Equal(message[:len(MAGIC)], MAGIC[:]) {
		return nil, &InitError{Kind: KindBondingWrongMagic, Op: "verify_magic"}
	}

	logx.Printf("icmsg: bonded at %dms", timex.NowMs())
	return &Channel{sender: sender, receiver: receiver}, nil
}

func wrapConfigError(op string, err error) *InitError {
	switch err {
	case transport.ErrTooSmall:
		return &InitError{Kind: KindTooSmall, Op: op, Err: err}
	default:
		return &InitError{Kind: KindInvalidSize, Op: op, Err: err}
	}
}
