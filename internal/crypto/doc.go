// Package crypto provides the cryptographic primitives for jass envelopes.
//
// This package handles session key generation, the symmetric payload
// cipher, and the per-recipient asymmetric key wrap. Higher layers reach
// these operations through the Provider interface; System() returns the
// production implementation.
//
// # Encryption Architecture
//
// jass uses a hybrid encryption scheme:
//
//  1. A random 256-bit session key, base64 encoded, acts as the passphrase
//     for the symmetric payload cipher
//  2. Each recipient's RSA public key encrypts a copy of the session key
//  3. Recipients decrypt the session key with their private key, then
//     decrypt the payload
//
// The payload is encrypted exactly once regardless of recipient count,
// so envelope size grows only by one RSA block per recipient.
//
// # Wire Compatibility
//
// The symmetric payload uses the format of
//
//	openssl enc -aes-256-cbc -salt -md md5
//
// including the "Salted__" magic, the MD5 key derivation chain, and
// PKCS#7 padding. Session keys are wrapped with RSA PKCS#1 v1.5. Both
// choices keep payloads exchangeable with openssl-based tooling.
//
// # Security Considerations
//
// The payload format carries no authentication tag, so decryption failure
// cannot distinguish a wrong key from a tampered payload; both surface as
// ErrCipherMismatch. MD5 appears solely inside the key derivation chain
// that the openssl format dictates.
//
// Key material is wiped after use where the package controls its
// lifetime. Wipe is best effort; Go gives no guarantee the collector has
// not already moved the bytes.
package crypto
