package crypto

import "encoding/base64"

// SessionKeyLength is the number of random bytes behind each session key.
const SessionKeyLength = 32

// NewSessionKey generates the symmetric key for a single envelope:
// SessionKeyLength random bytes, base64 encoded. The encoded form is
// used directly as the symmetric passphrase and is what gets wrapped
// for each recipient, so it survives any text-oriented handling along
// the way.
func NewSessionKey(p Provider) ([]byte, error) {
	raw, err := p.RandomBytes(SessionKeyLength)
	if err != nil {
		return nil, err
	}
	defer Wipe(raw)

	key := make([]byte, base64.StdEncoding.EncodedLen(len(raw)))
	base64.StdEncoding.Encode(key, raw)
	return key, nil
}
