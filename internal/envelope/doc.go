// Package envelope orchestrates encryption and decryption of jass
// envelopes.
//
// An envelope carries one secret to many recipients: the payload is
// encrypted once under a fresh session key, and the session key is
// wrapped separately for each recipient's RSA public key. Recipients
// locate their wrapped key by fingerprint and never need to know who
// else can read the secret.
//
// # Design Philosophy
//
// The cmd/ package stays a thin layer that parses flags, gathers key
// material, calls Encrypt or Decrypt, and formats the result. This
// package owns the operation semantics:
//
//   - Session key lifecycle (generation, staging, wiping)
//   - Partial failure policy: a bad recipient key is reported and
//     skipped, not fatal; an envelope nobody can open is fatal
//   - Block layout and naming inside the container
//
// Primitives come from a crypto.Provider, so tests can substitute
// deterministic or failing implementations without touching this
// package.
//
// # Error Handling
//
// Operations return typed errors from the internal/errors package.
// Use errors.Is() to check for specific conditions:
//
//	result, err := envelope.Decrypt(ctx, container, opts)
//	if errors.Is(err, jerrors.ErrKeyNotAddressed) {
//	    // This envelope was never meant for this key.
//	}
//
// # Context Usage
//
// Both operations accept a context.Context as their first parameter.
// This enables cancellation, timeouts, and passing request-scoped values.
package envelope
