package icmsg

import (
	"context"
	"testing"
	"time"

	"github.com/jangala-dev/icmsg-go/loopback"
	"github.com/jangala-dev/icmsg-go/transport"
)

func newBondedPairConfigs(bufLen, align uint32) (cfgA, cfgB MemoryConfig) {
	regionA := make([]byte, transport.RegionHeaderSize(align)+bufLen)
	regionB := make([]byte, transport.RegionHeaderSize(align)+bufLen)
	cfgA = MemoryConfig{Region: regionA, BufLen: bufLen, Align: align}
	cfgB = MemoryConfig{Region: regionB, BufLen: bufLen, Align: align}
	return
}

// TestBondingSmoke is scenario S1: both endpoints bond concurrently and
// each side's receiver is empty afterwards.
func TestBondingSmoke(t *testing.T) {
	const bufLen, align = 24, 4
	pair := loopback.NewPair()
	cfgA, cfgB := newBondedPairConfigs(bufLen, align)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	type result struct {
		ch  *Channel
		err error
	}
	doneA := make(chan result, 1)
	doneB := make(chan result, 1)
	go func() {
		ch, err := Init(ctx, cfgA, cfgB, pair.A.Notifier, pair.A.Waiter, loopback.SystemClock{})
		doneA <- result{ch, err}
	}()
	go func() {
		ch, err := Init(ctx, cfgB, cfgA, pair.B.Notifier, pair.B.Waiter, loopback.SystemClock{})
		doneB <- result{ch, err}
	}()

	ra, rb := <-doneA, <-doneB
	if ra.err != nil {
		t.Fatalf("endpoint A: %v", ra.err)
	}
	if rb.err != nil {
		t.Fatalf("endpoint B: %v", rb.err)
	}

	buf := make([]byte, 32)
	if _, err := ra.ch.TryRecv(buf); err != transport.ErrEmpty {
		t.Fatalf("A TryRecv after bonding = %v, want ErrEmpty", err)
	}
	if _, err := rb.ch.TryRecv(buf); err != transport.ErrEmpty {
		t.Fatalf("B TryRecv after bonding = %v, want ErrEmpty", err)
	}
}

// TestBondingWithStalePreNotify is scenario S2: B notifies before A exists;
// A must still bond because Init re-fires its notification every 1ms.
func TestBondingWithStalePreNotify(t *testing.T) {
	const bufLen, align = 24, 4
	pair := loopback.NewPair()
	cfgA, cfgB := newBondedPairConfigs(bufLen, align)

	// B "exists" only long enough to fire a stale notification toward A,
	// well before A ever arms its own waiter.
	pair.B.Notifier.Notify()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	doneB := make(chan error, 1)
	go func() {
		_, err := Init(ctx, cfgB, cfgA, pair.B.Notifier, pair.B.Waiter, loopback.SystemClock{})
		doneB <- err
	}()

	_, err := Init(ctx, cfgA, cfgB, pair.A.Notifier, pair.A.Waiter, loopback.SystemClock{})
	if err != nil {
		t.Fatalf("A failed to bond despite stale pre-notify: %v", err)
	}
	if err := <-doneB; err != nil {
		t.Fatalf("B: %v", err)
	}
}

// TestInitRejectsUndersizedRegion checks the TooSmall precondition.
func TestInitRejectsUndersizedRegion(t *testing.T) {
	pair := loopback.NewPair()
	tiny := MemoryConfig{Region: make([]byte, 8+20), BufLen: 20, Align: 4}
	other := MemoryConfig{Region: make([]byte, 8+24), BufLen: 24, Align: 4}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err := Init(ctx, tiny, other, pair.A.Notifier, pair.A.Waiter, loopback.SystemClock{})
	if err == nil {
		t.Fatal("expected error for undersized region")
	}
	initErr, ok := err.(*InitError)
	if !ok {
		t.Fatalf("error type = %T, want *InitError", err)
	}
	if initErr.Kind != KindTooSmall {
		t.Fatalf("Kind = %v, want KindTooSmall", initErr.Kind)
	}
}
