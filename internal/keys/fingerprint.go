package keys

import (
	"fmt"

	"golang.org/x/crypto/ssh"
)

// Fingerprint returns the legacy MD5 fingerprint of a public key: sixteen
// lowercase hex pairs joined by colons, computed over the canonical wire
// encoding. Envelope blocks are named by this form, so it must stay stable
// across releases and implementations.
func Fingerprint(pub ssh.PublicKey) string {
	return ssh.FingerprintLegacyMD5(pub)
}

// FingerprintSHA256 returns the OpenSSH SHA256 fingerprint form, as shown
// by ssh-keygen -lf. Display only; envelope matching always uses the MD5
// form from Fingerprint.
func FingerprintSHA256(pub ssh.PublicKey) string {
	return ssh.FingerprintSHA256(pub)
}

// SHA256 returns the key's SHA256 fingerprint for display.
func (k PublicKey) SHA256() (string, error) {
	pub, err := ssh.ParsePublicKey(k.Raw)
	if err != nil {
		return "", fmt.Errorf("failed to parse canonical key: %w", err)
	}
	return FingerprintSHA256(pub), nil
}
