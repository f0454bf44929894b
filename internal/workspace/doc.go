// Package workspace manages the short-lived scratch directory an encrypt
// or decrypt operation uses for secret material.
//
// Each operation gets its own directory (0700) under the system temp
// location; session keys and other transient secrets written through
// WriteSecret get 0600. Close overwrites file contents before removing
// the tree, runs on every exit path via defer, and leaves nothing behind
// on success or failure. Nothing in a workspace outlives its operation.
package workspace
