package crypto

// Wipe overwrites b with zeros. Best effort only: it shortens the window
// during which key material sits in memory, but the runtime may already
// have copied the bytes elsewhere.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
