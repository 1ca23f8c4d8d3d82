// Package common holds small helpers shared by the console packages.
package common

// WipeByteArray zeroes b in place. Used for password buffers once they have
// been copied into the session.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
