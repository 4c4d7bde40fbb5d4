// Package loopback provides Notifier/Waiter capability implementations for
// running both ends of a channel in a single process: two regions on the
// heap of a test host, driven by goroutines standing in for the two cores.
// There is no hardware mailbox here, only a coalesced channel, the same
// edge-coalesced readiness pattern the teacher's SPSC ring buffer uses for
// its own Readable()/Writable() channels.
package loopback

import "time"

// mailbox is a single-slot coalesced signal: a Notify while the slot is
// already full is dropped, because the peer hasn't consumed the earlier one
// yet and a second token carries no extra information.
type mailbox struct {
	ch chan struct{}
}

func newMailbox() *mailbox {
	return &mailbox{ch: make(chan struct{}, 1)}
}

func (m *mailbox) Notify() {
	select {
	case m.ch <- struct{}{}:
	default:
	}
}

func (m *mailbox) Armed() <-chan struct{} {
	return m.ch
}

// Endpoint bundles the Notifier/Waiter pair one side of a Pair needs: a
// Notifier to poke the peer, and a Waiter to learn the peer poked back.
type Endpoint struct {
	Notifier *mailbox
	Waiter   *mailbox
}

// Pair cross-wires two Endpoints so that A's Notify arms B's Waiter and
// vice versa.
type Pair struct {
	A Endpoint
	B Endpoint
}

// NewPair builds a cross-wired loopback pair for two in-process endpoints.
func NewPair() *Pair {
	aToB := newMailbox()
	bToA := newMailbox()
	return &Pair{
		A: Endpoint{Notifier: aToB, Waiter: bToA},
		B: Endpoint{Notifier: bToA, Waiter: aToB},
	}
}

// Clock is the delay source bonding needs to pulse its notification every
// millisecond while waiting for the peer to show up.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

// SystemClock delegates to time.After.
type SystemClock struct{}

func (SystemClock) After(d time.Duration) <-chan time.Time { return time.After(d) }
