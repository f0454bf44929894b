// Package keys handles recipient public keys and operator private keys.
//
// Recipient keys arrive as authorized_keys style text from files or the
// GitHub API. Normalize turns that material into canonical recipients:
// it parses each line, drops everything that is not an RSA key, and
// deduplicates identical keys found through different sources.
//
// # Normalization Rules
//
//   - One line per key, in OpenSSH authorized_keys syntax; option
//     prefixes (command="...", no-pty and friends) are tolerated
//   - Blank lines and # comments are ignored
//   - Non-RSA keys (ed25519, ecdsa, certificates, ...) are recorded as
//     skipped with ErrUnsupportedKeyType; jass can only wrap for RSA
//   - Unparseable lines are recorded as skipped with ErrMalformedKey
//   - A single bad key never aborts normalization; only an empty final
//     recipient set is an error (ErrNoSupportedKeys)
//
// # Fingerprints
//
// Every key is identified by its legacy MD5 fingerprint over the SSH wire
// encoding (the colon-separated form older ssh-keygen releases printed).
// That fingerprint names the key's block inside an envelope, so two
// implementations agree on which block belongs to which key without
// exchanging anything beyond the public key itself. The SHA256 form is
// available for display.
//
// # Private Keys
//
// LoadPrivateKey and ParsePrivateKey accept PKCS#1, PKCS#8 and OpenSSH
// PEM encodings. Passphrase-protected keys are detected and reported as
// ErrPassphraseRequired so the CLI can prompt exactly once, on a real
// terminal, rather than here.
package keys
