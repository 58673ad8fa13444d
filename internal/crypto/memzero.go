package crypto

import "runtime"

// Wipe zeroes b in place. Strings or other copies made from b keep their
// contents.
func Wipe(b []byte) {
	clear(b)
	runtime.KeepAlive(b)
}
