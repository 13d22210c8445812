package common

// WipeByteArray zeroes b in place. Callers use it on passwords once they
// have been sent or hashed.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
