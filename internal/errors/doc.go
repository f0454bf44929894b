// Package errors provides typed error values for the jass application.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. This makes
// error handling more robust and refactoring-safe.
//
// # Error Categories
//
// Errors are grouped by the stage of the envelope pipeline that raises them:
//
//   - Key normalization: recipient key material problems (ErrNoSupportedKeys,
//     ErrUnsupportedKeyType, ErrMalformedKey)
//   - Envelope construction: encryption-side failures (ErrEntropyUnavailable,
//     ErrWrapFailure, ErrNoValidRecipients)
//   - Envelope recovery: decryption-side failures (ErrTransportParse,
//     ErrKeyNotAddressed, ErrUnwrapFailure, ErrCipherMismatch)
//   - Private key: problems loading the operator's key (ErrPassphraseRequired,
//     ErrInvalidPrivateKey)
//
// # Usage
//
// Return errors from internal packages:
//
//	if len(recipients) == 0 {
//	    return nil, errors.ErrNoSupportedKeys
//	}
//
// Handle errors in the CLI layer:
//
//	result, err := envelope.Decrypt(ctx, container, opts)
//	if errors.Is(err, jerrors.ErrKeyNotAddressed) {
//	    // Show user-friendly message
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("%w: %s", errors.ErrUnsupportedKeyType, keyType)
package errors
