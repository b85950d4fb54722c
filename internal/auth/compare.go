package auth

// SecureCompare reports whether a and b are equal in time independent of
// where they first differ and of either operand's length. The shorter
// operand is logically padded with zero bytes to the longer one, every
// byte pair is XOR-accumulated, and a single comparison decides the
// result, so wall-clock time leaks neither content nor length.
func SecureCompare(a, b string) bool {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}

	diff := len(a) ^ len(b)
	for i := 0; i < n; i++ {
		var ca, cb byte
		if i < len(a) {
			ca = a[i]
		}
		if i < len(b) {
			cb = b[i]
		}
		diff |= int(ca ^ cb)
	}
	return diff == 0
}
