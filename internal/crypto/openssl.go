package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5" // #nosec G501 -- key derivation ingredient required for OpenSSL enc compatibility
	"fmt"

	jerrors "github.com/kimor79/jass/internal/errors"
)

// Symmetric payloads use the framing of `openssl enc -aes-256-cbc -salt -md md5`:
// an eight byte magic, the salt, then CBC ciphertext with PKCS#7 padding.
// Payloads produced here decrypt with a stock openssl binary and vice versa.
const (
	saltedMagic = "Salted__"
	saltLength  = 8
	keyLength   = 32
	ivLength    = 16
)

// bytesToKey derives the AES key and IV from a passphrase and salt using
// the MD5 digest chain historic OpenSSL releases used for enc. MD5 here is
// a wire-compatibility requirement, not an integrity mechanism.
func bytesToKey(passphrase, salt []byte) (key, iv []byte) {
	var derived []byte
	var digest []byte
	for len(derived) < keyLength+ivLength {
		h := md5.New() // #nosec G401 -- see above
		h.Write(digest)
		h.Write(passphrase)
		h.Write(salt)
		digest = h.Sum(nil)
		derived = append(derived, digest...)
	}
	return derived[:keyLength], derived[keyLength : keyLength+ivLength]
}

// saltedEncrypt seals plaintext under the passphrase with the given salt.
func saltedEncrypt(plaintext, passphrase, salt []byte) ([]byte, error) {
	if len(salt) != saltLength {
		return nil, fmt.Errorf("salt must be %d bytes, got %d", saltLength, len(salt))
	}

	key, iv := bytesToKey(passphrase, salt)
	defer Wipe(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cipher: %w", err)
	}

	padded := pad(plaintext)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	payload := make([]byte, 0, len(saltedMagic)+saltLength+len(ciphertext))
	payload = append(payload, saltedMagic...)
	payload = append(payload, salt...)
	payload = append(payload, ciphertext...)
	return payload, nil
}

// saltedDecrypt opens a payload produced by saltedEncrypt or by openssl.
// Any framing or padding problem reports ErrCipherMismatch: a wrong
// passphrase and a corrupted payload are indistinguishable here because
// the format carries no authentication tag.
func saltedDecrypt(payload, passphrase []byte) ([]byte, error) {
	headerLength := len(saltedMagic) + saltLength
	if len(payload) < headerLength+aes.BlockSize {
		return nil, fmt.Errorf("%w: payload too short", jerrors.ErrCipherMismatch)
	}
	if !bytes.Equal(payload[:len(saltedMagic)], []byte(saltedMagic)) {
		return nil, fmt.Errorf("%w: missing salt header", jerrors.ErrCipherMismatch)
	}

	salt := payload[len(saltedMagic):headerLength]
	ciphertext := payload[headerLength:]
	if len(ciphertext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: ciphertext is not block aligned", jerrors.ErrCipherMismatch)
	}

	key, iv := bytesToKey(passphrase, salt)
	defer Wipe(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cipher: %w", err)
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	unpadded, err := unpad(plaintext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", jerrors.ErrCipherMismatch, err)
	}
	return unpadded, nil
}

// pad applies PKCS#7 padding up to the AES block size. Plaintext that is
// already block aligned (including empty plaintext) gains a full block.
func pad(data []byte) []byte {
	padLength := aes.BlockSize - len(data)%aes.BlockSize
	padded := make([]byte, len(data)+padLength)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(padLength)
	}
	return padded
}

// unpad strips and verifies PKCS#7 padding.
func unpad(data []byte) ([]byte, error) {
	if len(data) == 0 || len(data)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("invalid padded length %d", len(data))
	}
	padLength := int(data[len(data)-1])
	if padLength == 0 || padLength > aes.BlockSize || padLength > len(data) {
		return nil, fmt.Errorf("invalid padding")
	}
	for _, b := range data[len(data)-padLength:] {
		if int(b) != padLength {
			return nil, fmt.Errorf("invalid padding")
		}
	}
	return data[:len(data)-padLength], nil
}
