package keys

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"

	"golang.org/x/crypto/ssh"

	jerrors "github.com/kimor79/jass/internal/errors"
)

// PrivateKey is an operator's RSA private key together with the derived
// canonical public half, so the key can be matched against envelope blocks
// without consulting any other file.
type PrivateKey struct {
	Key    *rsa.PrivateKey
	Public PublicKey
}

// LoadPrivateKey reads and parses a private key from disk without a
// passphrase. Encrypted keys yield ErrPassphraseRequired; callers should
// prompt and retry with ParsePrivateKey.
func LoadPrivateKey(path string) (*PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key at %s: %w", path, err)
	}
	return ParsePrivateKey(data, nil)
}

// ParsePrivateKey parses a PEM encoded RSA private key. PKCS#1, PKCS#8 and
// OpenSSH encodings are accepted. passphrase may be empty for unencrypted
// keys; an encrypted key without a passphrase yields ErrPassphraseRequired.
func ParsePrivateKey(data, passphrase []byte) (*PrivateKey, error) {
	var (
		parsed interface{}
		err    error
	)
	if len(passphrase) == 0 {
		parsed, err = ssh.ParseRawPrivateKey(data)
	} else {
		parsed, err = ssh.ParseRawPrivateKeyWithPassphrase(data, passphrase)
	}
	if err != nil {
		var missing *ssh.PassphraseMissingError
		if errors.As(err, &missing) {
			return nil, jerrors.ErrPassphraseRequired
		}
		return nil, fmt.Errorf("%w: %v", jerrors.ErrInvalidPrivateKey, err)
	}

	rsaKey, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: %T", jerrors.ErrUnsupportedKeyType, parsed)
	}

	sshPub, err := ssh.NewPublicKey(&rsaKey.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to derive public key: %w", err)
	}

	return &PrivateKey{
		Key: rsaKey,
		Public: PublicKey{
			Raw:         sshPub.Marshal(),
			Algorithm:   sshPub.Type(),
			Fingerprint: Fingerprint(sshPub),
		},
	}, nil
}
