// Package shared contains testing utilities shared between integration tests.
// This file provides common functions for running the CLI in-process,
// capturing output, and generating throwaway SSH key pairs.
package shared

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"encoding/pem"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/crypto/ssh"

	"github.com/kimor79/jass/cmd"
)

// SetupTestEnvironment points HOME and the config lookup at throwaway
// directories so tests never touch the developer's real keys or config,
// and disables color so output assertions see plain text.
func SetupTestEnvironment(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	t.Setenv("NO_COLOR", "1")
	return home
}

// RunCommand executes the jass CLI in-process with the given args,
// capturing everything written to stdout and stderr.
func RunCommand(args ...string) (string, error) {
	return CaptureOutput(func() error {
		cmd.ResetCommandState()
		cmd.RootCmd.SetArgs(args)
		return cmd.RootCmd.Execute()
	})
}

// CaptureOutput captures both stdout and stderr during function execution.
func CaptureOutput(fn func() error) (string, error) {
	// Save original stdout and stderr
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	// Create pipes to capture output
	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	// Replace stdout and stderr
	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	// Channel to collect output
	outputChan := make(chan string, 2)

	// Start goroutines to read from pipes
	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stdoutReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stderrReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	// Execute the function
	err := fn()

	// Close writers to signal EOF
	stdoutWriter.Close()
	stderrWriter.Close()

	// Restore original stdout and stderr
	os.Stdout = originalStdout
	os.Stderr = originalStderr

	// Collect output
	stdout := <-outputChan
	stderr := <-outputChan

	return stdout + stderr, err
}

// WriteKeyPair writes an RSA key pair under dir and returns the private
// and public key file paths. The public key is written in authorized_keys
// format with the given comment appended.
func WriteKeyPair(t *testing.T, dir, comment string, passphrase []byte) (string, string) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("Failed to generate RSA key: %v", err)
	}

	var block *pem.Block
	if len(passphrase) == 0 {
		block, err = ssh.MarshalPrivateKey(key, comment)
	} else {
		block, err = ssh.MarshalPrivateKeyWithPassphrase(key, comment, passphrase)
	}
	if err != nil {
		t.Fatalf("Failed to marshal private key: %v", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("Failed to create key dir: %v", err)
	}
	privPath := filepath.Join(dir, "id_rsa")
	if err := os.WriteFile(privPath, pem.EncodeToMemory(block), 0o600); err != nil {
		t.Fatalf("Failed to write private key: %v", err)
	}

	sshPub, err := ssh.NewPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("Failed to convert public key: %v", err)
	}
	line := strings.TrimSpace(string(ssh.MarshalAuthorizedKey(sshPub)))
	if comment != "" {
		line += " " + comment
	}
	pubPath := privPath + ".pub"
	if err := os.WriteFile(pubPath, []byte(line+"\n"), 0o644); err != nil {
		t.Fatalf("Failed to write public key: %v", err)
	}

	return privPath, pubPath
}

// WriteSecretFile writes plaintext to a file under dir and returns its path.
func WriteSecretFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "secret.txt")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write secret file: %v", err)
	}
	return path
}

// VerifyEnvelope verifies that the file at path looks like a complete
// jass envelope: a payload block plus one wrapped key block per recipient.
func VerifyEnvelope(t *testing.T, path string, recipients int) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read envelope at %s: %v", path, err)
	}
	container := string(data)

	if !strings.Contains(container, "begin-base64 600 message") {
		t.Errorf("Envelope at %s is missing its payload block", path)
	}
	begins := strings.Count(container, "begin-base64 600 ")
	if begins != recipients+1 {
		t.Errorf("Envelope at %s has %d blocks, expected %d", path, begins, recipients+1)
	}
	if strings.Count(container, "====") != begins {
		t.Errorf("Envelope at %s has unterminated base64 blocks", path)
	}
}
