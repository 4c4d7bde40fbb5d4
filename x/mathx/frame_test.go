package mathx

import "testing"

func TestRoundUp4(t *testing.T) {
	cases := map[uint32]uint32{0: 0, 1: 4, 3: 4, 4: 4, 5: 8, 24: 24, 65535: 65536}
	for in, want := range cases {
		if got := RoundUp4(in); got != want {
			t.Fatalf("RoundUp4(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestIsPowerOfTwo(t *testing.T) {
	yes := []uint32{1, 2, 4, 8, 16, 256}
	no := []uint32{0, 3, 5, 6, 12, 100}
	for _, n := range yes {
		if !IsPowerOfTwo(n) {
			t.Fatalf("IsPowerOfTwo(%d) = false, want true", n)
		}
	}
	for _, n := range no {
		if IsPowerOfTwo(n) {
			t.Fatalf("IsPowerOfTwo(%d) = true, want false", n)
		}
	}
}
