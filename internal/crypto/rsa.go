package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"

	jerrors "github.com/kimor79/jass/internal/errors"
)

// wrapKey encrypts a session key for one recipient using RSA PKCS#1 v1.5.
// The padding scheme matches what ssh-keygen-derived tooling and openssl
// rsautl produce, so envelopes interoperate with them.
func wrapKey(msg []byte, publicKey *rsa.PublicKey) ([]byte, error) {
	ciphertext, err := rsa.EncryptPKCS1v15(rand.Reader, publicKey, msg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", jerrors.ErrWrapFailure, err)
	}
	return ciphertext, nil
}

// unwrapKey decrypts a wrapped session key with the private key.
func unwrapKey(ciphertext []byte, privateKey *rsa.PrivateKey) ([]byte, error) {
	msg, err := rsa.DecryptPKCS1v15(rand.Reader, privateKey, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", jerrors.ErrUnwrapFailure, err)
	}
	return msg, nil
}
