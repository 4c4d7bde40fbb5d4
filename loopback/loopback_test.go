package loopback

import "testing"

func TestPairCrossWiring(t *testing.T) {
	p := NewPair()

	p.A.Notifier.Notify()
	select {
	case <-p.B.Waiter.Armed():
	default:
		t.Fatal("A.Notify() did not arm B.Waiter")
	}

	p.B.Notifier.Notify()
	select {
	case <-p.A.Waiter.Armed():
	default:
		t.Fatal("B.Notify() did not arm A.Waiter")
	}
}

func TestMailboxCoalescesRepeatedNotify(t *testing.T) {
	p := NewPair()
	p.A.Notifier.Notify()
	p.A.Notifier.Notify()
	p.A.Notifier.Notify()

	armed := p.B.Waiter.Armed()
	select {
	case <-armed:
	default:
		t.Fatal("expected one coalesced signal")
	}
	select {
	case <-armed:
		t.Fatal("expected signal to be consumed, not repeated")
	default:
	}
}
