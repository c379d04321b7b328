package common

// WipeByteArray overwrites the contents of b with zeros. It is used to drop
// derived keys and unwrapped content keys as soon as they are no longer needed.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
