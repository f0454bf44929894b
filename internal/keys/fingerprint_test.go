package keys

import (
	"crypto/rand"
	"crypto/rsa"
	"regexp"
	"strings"
	"testing"

	"golang.org/x/crypto/ssh"
)

var md5FingerprintPattern = regexp.MustCompile(`^([0-9a-f]{2}:){15}[0-9a-f]{2}$`)

func testSSHPublicKey(t *testing.T) ssh.PublicKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("Failed to generate RSA key: %v", err)
	}
	sshPub, err := ssh.NewPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("Failed to convert public key: %v", err)
	}
	return sshPub
}

func TestFingerprintFormat(t *testing.T) {
	fp := Fingerprint(testSSHPublicKey(t))
	if !md5FingerprintPattern.MatchString(fp) {
		t.Errorf("fingerprint %q does not match the colon-separated MD5 form", fp)
	}
}

func TestFingerprintStable(t *testing.T) {
	pub := testSSHPublicKey(t)

	first := Fingerprint(pub)
	second := Fingerprint(pub)
	if first != second {
		t.Errorf("fingerprint changed between calls: %s vs %s", first, second)
	}

	// Re-parsing the wire encoding must not change the fingerprint.
	reparsed, err := ssh.ParsePublicKey(pub.Marshal())
	if err != nil {
		t.Fatalf("Failed to re-parse public key: %v", err)
	}
	if got := Fingerprint(reparsed); got != first {
		t.Errorf("fingerprint changed after re-parse: %s vs %s", got, first)
	}
}

func TestFingerprintUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 8; i++ {
		fp := Fingerprint(testSSHPublicKey(t))
		if seen[fp] {
			t.Fatalf("fingerprint collision: %s", fp)
		}
		seen[fp] = true
	}
}

func TestFingerprintMatchesPrivateKeyDerivation(t *testing.T) {
	line, key := authorizedKeyLine(t, "alice@laptop")

	result, err := Normalize([]RawKey{{Data: []byte(line), Source: "alice.pub"}})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	sshPub, err := ssh.NewPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("Failed to convert public key: %v", err)
	}

	if result.Recipients[0].Fingerprint != Fingerprint(sshPub) {
		t.Error("fingerprint from authorized_keys line does not match derivation from the key pair")
	}
}

func TestFingerprintSHA256Form(t *testing.T) {
	fp := FingerprintSHA256(testSSHPublicKey(t))
	if !strings.HasPrefix(fp, "SHA256:") {
		t.Errorf("SHA256 fingerprint %q missing prefix", fp)
	}
}

func TestPublicKeySHA256(t *testing.T) {
	sshPub := testSSHPublicKey(t)
	pub := PublicKey{Raw: sshPub.Marshal()}

	fp, err := pub.SHA256()
	if err != nil {
		t.Fatalf("SHA256 failed: %v", err)
	}
	if fp != FingerprintSHA256(sshPub) {
		t.Errorf("SHA256 = %q, expected %q", fp, FingerprintSHA256(sshPub))
	}

	if _, err := (PublicKey{Raw: []byte("junk")}).SHA256(); err == nil {
		t.Error("expected error for unparseable key material")
	}
}
