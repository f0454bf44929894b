// Package utils provides shared utility functions for the jass application.
//
// This package contains general-purpose helpers used across multiple packages.
// Functions are organized into logical groups:
//
// # Filesystem Utilities
//
// Functions for working with paths and files:
//   - ExpandHome: expands a leading ~ to the user's home directory
//   - FileExists: reports whether a path is a regular file
//
// # String Utilities
//
// Functions for formatting output:
//   - FormatList: formats values as an indented list
//
// # I/O Utilities
//
// Functions for reading from stdin and other I/O operations:
//   - ReadStdin: reads all data from standard input
//
// # Terminal Utilities
//
// Functions for terminal detection and interaction:
//   - IsTerminal, StdoutIsTerminal: terminal checks for stdin and stdout
//   - IsTTYAvailable: whether a controlling terminal can be opened for prompts
//   - ReadPassphrase, ReadPassphraseFromTTY: hidden passphrase prompts
package utils
