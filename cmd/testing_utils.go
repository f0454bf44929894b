package cmd

import (
	logger "github.com/kimor79/jass/internal/logging"
)

// ResetCommandState clears the flag-backed globals so a test binary can
// run commands through RootCmd repeatedly without flag values leaking
// from one invocation into the next. Used by the package tests and the
// integration suite under test/integration.
func ResetCommandState() {
	verbose = false
	debug = false
	Logger = logger.Logger{}

	encryptKeyFiles = nil
	encryptGithubUsers = nil
	encryptInputFile = ""
	encryptOutputFile = ""

	decryptKeyFile = ""
	decryptInputFile = ""
	decryptOutputFile = ""

	fingerprintKeyFiles = nil
	fingerprintGithubUsers = nil
	fingerprintSHA256 = false
}
