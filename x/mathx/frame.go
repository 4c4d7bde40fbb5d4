package mathx

// RoundUp4 rounds n up to the next multiple of 4. Every framed packet's
// payload is padded to this boundary so header reads stay 4-byte aligned.
func RoundUp4[T ~int | ~uint | ~uint32 | ~uint64](n T) T {
	return n + (4-n%4)%4
}

// IsPowerOfTwo reports whether n is a power of two (n >= 1).
func IsPowerOfTwo[T ~uint | ~uint32 | ~uint64](n T) bool {
	return n != 0 && n&(n-1) == 0
}
