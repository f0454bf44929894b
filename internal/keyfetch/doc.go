// Package keyfetch acquires raw public key material for envelopes to
// address.
//
// Keys come from two places: local files, named directly or by glob
// pattern, and the GitHub key directory (/users/<name>/keys). Both yield
// keys.RawKey values tagged with their provenance so that later skips
// and errors can point back at a concrete source. Parsing and
// normalization of the fetched material happen in internal/keys, not
// here.
//
// Alongside the CLI, this is the only part of jass that touches the
// network or reads the filesystem.
package keyfetch
