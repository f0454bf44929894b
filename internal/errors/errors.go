package errors

import "errors"

// Key normalization errors indicate problems with recipient public key material.
var (
	// ErrNoSupportedKeys indicates no usable public key survived normalization.
	ErrNoSupportedKeys = errors.New("no supported public keys found")

	// ErrUnsupportedKeyType indicates a key uses an algorithm jass cannot wrap for.
	ErrUnsupportedKeyType = errors.New("unsupported key type")

	// ErrMalformedKey indicates key material that could not be parsed at all.
	ErrMalformedKey = errors.New("malformed public key")
)

// Envelope construction errors indicate failures while encrypting.
var (
	// ErrEntropyUnavailable indicates the secure random source failed.
	ErrEntropyUnavailable = errors.New("system entropy source unavailable")

	// ErrWrapFailure indicates the session key could not be encrypted for a recipient.
	ErrWrapFailure = errors.New("failed to encrypt session key for recipient")

	// ErrNoValidRecipients indicates not a single recipient received the session key.
	ErrNoValidRecipients = errors.New("no recipient could receive the session key")
)

// Envelope recovery errors indicate failures while decrypting.
var (
	// ErrTransportParse indicates the container text is not a valid envelope.
	ErrTransportParse = errors.New("malformed transport container")

	// ErrKeyNotAddressed indicates the envelope carries no session key for this private key.
	ErrKeyNotAddressed = errors.New("envelope is not addressed to this key")

	// ErrUnwrapFailure indicates the matching session key block could not be decrypted.
	ErrUnwrapFailure = errors.New("failed to decrypt session key")

	// ErrCipherMismatch indicates the payload did not decrypt under the recovered session key.
	ErrCipherMismatch = errors.New("failed to decrypt payload with recovered session key")
)

// Private key errors indicate problems loading the operator's own key.
var (
	// ErrPassphraseRequired indicates the private key is encrypted and needs a passphrase.
	ErrPassphraseRequired = errors.New("private key is passphrase-protected")

	// ErrInvalidPrivateKey indicates the private key is malformed or unsupported.
	ErrInvalidPrivateKey = errors.New("invalid or unsupported private key format")
)
