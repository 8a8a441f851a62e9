package cryptox

import (
	"crypto/rand"
)

// RandomBytes returns n bytes from the system CSPRNG.
func RandomBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// Wipe overwrites b with zeros. Used on password buffers once they have
// been sent. A nil slice is left alone.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
