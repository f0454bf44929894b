package keys

import (
	"crypto/rsa"
	"fmt"
	"strings"

	"golang.org/x/crypto/ssh"

	jerrors "github.com/kimor79/jass/internal/errors"
)

// RawKey is unparsed public key material from a single source, such as one
// file or one GitHub API entry. The data may hold any number of
// authorized_keys lines.
type RawKey struct {
	Data   []byte
	Source string
}

// PublicKey is one recipient key in canonical form. Raw holds the SSH wire
// encoding; two keys are the same key exactly when their Raw bytes match.
type PublicKey struct {
	Raw         []byte
	Algorithm   string
	Fingerprint string
	Comment     string
}

// RSA returns the key as *rsa.PublicKey for session key wrapping.
func (k PublicKey) RSA() (*rsa.PublicKey, error) {
	pub, err := ssh.ParsePublicKey(k.Raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse canonical key: %w", err)
	}
	cryptoKey, ok := pub.(ssh.CryptoPublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no crypto form", jerrors.ErrUnsupportedKeyType, pub.Type())
	}
	rsaPub, ok := cryptoKey.CryptoPublicKey().(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: %s", jerrors.ErrUnsupportedKeyType, pub.Type())
	}
	return rsaPub, nil
}

// Recipient couples a canonical key with the source it came from, so
// messages about the key can point back at a file or GitHub user.
type Recipient struct {
	PublicKey
	Source string
}

// Skipped records one candidate key that normalization rejected.
// Reason wraps ErrUnsupportedKeyType or ErrMalformedKey.
type Skipped struct {
	Source string
	Line   int
	Reason error
}

// NormalizeResult is the outcome of normalizing raw key material.
type NormalizeResult struct {
	Recipients []Recipient
	Skipped    []Skipped
}

// Normalize parses raw authorized_keys material into deduplicated
// recipients. Individual keys that fail to parse or use an unsupported
// algorithm are recorded in Skipped without aborting the rest. When not a
// single key survives, Normalize returns ErrNoSupportedKeys; the returned
// result still carries the per-key reasons for diagnostics.
func Normalize(sources []RawKey) (*NormalizeResult, error) {
	result := &NormalizeResult{}
	seen := make(map[string]bool)

	for _, src := range sources {
		for i, line := range strings.Split(string(src.Data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}

			pub, comment, _, _, err := ssh.ParseAuthorizedKey([]byte(line))
			if err != nil {
				result.Skipped = append(result.Skipped, Skipped{
					Source: src.Source,
					Line:   i + 1,
					Reason: fmt.Errorf("%w: %v", jerrors.ErrMalformedKey, err),
				})
				continue
			}

			if pub.Type() != ssh.KeyAlgoRSA {
				result.Skipped = append(result.Skipped, Skipped{
					Source: src.Source,
					Line:   i + 1,
					Reason: fmt.Errorf("%w: %s", jerrors.ErrUnsupportedKeyType, pub.Type()),
				})
				continue
			}

			raw := pub.Marshal()
			if seen[string(raw)] {
				continue
			}
			seen[string(raw)] = true

			result.Recipients = append(result.Recipients, Recipient{
				PublicKey: PublicKey{
					Raw:         raw,
					Algorithm:   pub.Type(),
					Fingerprint: Fingerprint(pub),
					Comment:     comment,
				},
				Source: src.Source,
			})
		}
	}

	if len(result.Recipients) == 0 {
		if len(result.Skipped) > 0 {
			return result, fmt.Errorf("%w: all %d candidate keys were rejected", jerrors.ErrNoSupportedKeys, len(result.Skipped))
		}
		return result, jerrors.ErrNoSupportedKeys
	}
	return result, nil
}
