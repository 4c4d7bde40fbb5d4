package transport

import (
	"context"
	"testing"
	"time"
)

// TestRecvNoLostWakeup covers property 6: however notify races against the
// call to Recv, Recv eventually completes without further peer activity.
func TestRecvNoLostWakeup(t *testing.T) {
	cases := []struct {
		name        string
		notifyFirst bool
	}{
		{"notify before Recv is called", true},
		{"notify after Recv is waiting", false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, r := newRing(t, 32, 4)

			if c.notifyFirst {
				if err := s.Send([]byte("hi")); err != nil {
					t.Fatalf("Send: %v", err)
				}
			} else {
				go func() {
					time.Sleep(5 * time.Millisecond)
					if err := s.Send([]byte("hi")); err != nil {
						t.Errorf("Send: %v", err)
					}
				}()
			}

			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			buf := make([]byte, 32)
			n, err := r.Recv(ctx, buf)
			if err != nil {
				t.Fatalf("Recv: %v", err)
			}
			if string(buf[:n]) != "hi" {
				t.Fatalf("got %q, want %q", buf[:n], "hi")
			}
		})
	}
}

// TestRecvCancellationLeavesRingUntouched confirms cancelling a suspended
// Recv does not advance rd_idx.
func TestRecvCancellationLeavesRingUntouched(t *testing.T) {
	_, r := newRing(t, 32, 4)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	buf := make([]byte, 32)
	_, err := r.Recv(ctx, buf)
	if err != context.DeadlineExceeded {
		t.Fatalf("Recv = %v, want context.DeadlineExceeded", err)
	}
	if r.rdIdx != 0 {
		t.Fatalf("rd_idx moved: %d", r.rdIdx)
	}
}
