package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"io"

	jerrors "github.com/kimor79/jass/internal/errors"
)

// Provider supplies the primitive operations envelopes are built from.
// The envelope layer never touches ciphers or the random source directly,
// so tests and alternative backends can substitute their own primitives.
type Provider interface {
	// RandomBytes returns n bytes from a cryptographically secure source.
	RandomBytes(n int) ([]byte, error)

	// SymmetricEncrypt seals plaintext under a passphrase. The output is a
	// self-contained payload carrying everything needed for decryption
	// except the passphrase itself.
	SymmetricEncrypt(plaintext, passphrase []byte) ([]byte, error)

	// SymmetricDecrypt reverses SymmetricEncrypt. A wrong passphrase or a
	// corrupted payload yields ErrCipherMismatch.
	SymmetricDecrypt(payload, passphrase []byte) ([]byte, error)

	// AsymmetricEncrypt encrypts msg for the holder of the public key.
	AsymmetricEncrypt(msg []byte, publicKey *rsa.PublicKey) ([]byte, error)

	// AsymmetricDecrypt reverses AsymmetricEncrypt with the private key.
	AsymmetricDecrypt(ciphertext []byte, privateKey *rsa.PrivateKey) ([]byte, error)
}

// System returns the production Provider backed by the platform's random
// source and the standard cipher implementations.
func System() Provider {
	return systemProvider{}
}

type systemProvider struct{}

func (systemProvider) RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, fmt.Errorf("%w: %v", jerrors.ErrEntropyUnavailable, err)
	}
	return b, nil
}

func (p systemProvider) SymmetricEncrypt(plaintext, passphrase []byte) ([]byte, error) {
	salt, err := p.RandomBytes(saltLength)
	if err != nil {
		return nil, err
	}
	return saltedEncrypt(plaintext, passphrase, salt)
}

func (systemProvider) SymmetricDecrypt(payload, passphrase []byte) ([]byte, error) {
	return saltedDecrypt(payload, passphrase)
}

func (systemProvider) AsymmetricEncrypt(msg []byte, publicKey *rsa.PublicKey) ([]byte, error) {
	return wrapKey(msg, publicKey)
}

func (systemProvider) AsymmetricDecrypt(ciphertext []byte, privateKey *rsa.PrivateKey) ([]byte, error) {
	return unwrapKey(ciphertext, privateKey)
}
