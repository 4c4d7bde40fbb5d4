package transport

import "testing"

func TestHeaderPlacement(t *testing.T) {
	for _, align := range []uint32{4, 8, 16, 32, 64, 128, 256} {
		if got := rdIdxOffset(align); got != 0 {
			t.Fatalf("align=%d: rd_idx offset = %d, want 0", align, got)
		}
		if got := wrIdxOffset(align); got != align {
			t.Fatalf("align=%d: wr_idx offset = %d, want %d", align, got, align)
		}
		if got := RegionHeaderSize(align); got != 2*align {
			t.Fatalf("align=%d: header size = %d, want %d", align, got, 2*align)
		}
	}
}

func TestValidateRegion(t *testing.T) {
	type C struct {
		name    string
		region  []byte
		bufLen  uint32
		align   uint32
		wantErr error
	}
	for _, c := range []C{
		{"ok", make([]byte, 8+24), 24, 4, nil},
		{"too small", make([]byte, 8+23), 24, 4, ErrTooSmall},
		{"bufLen not multiple of 4", make([]byte, 8+25), 25, 4, ErrInvalidSize},
		{"bufLen below minimum", make([]byte, 8+20), 20, 4, ErrTooSmall},
		{"align not power of two", make([]byte, 8+24), 24, 6, ErrInvalidSize},
		{"align below minimum", make([]byte, 8+24), 24, 2, ErrInvalidSize},
	} {
		t.Run(c.name, func(t *testing.T) {
			if err := validateRegion(c.region, c.bufLen, c.align); err != c.wantErr {
				t.Fatalf("got %v, want %v", err, c.wantErr)
			}
		})
	}
}
