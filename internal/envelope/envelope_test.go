package envelope

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/ssh"

	"github.com/kimor79/jass/internal/armor"
	"github.com/kimor79/jass/internal/crypto"
	jerrors "github.com/kimor79/jass/internal/errors"
	"github.com/kimor79/jass/internal/keys"
)

// newTestIdentity generates a key pair and returns both sides: the
// recipient view for encryption and the private key for decryption.
func newTestIdentity(t *testing.T, name string) (keys.Recipient, *keys.PrivateKey) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("Failed to generate RSA key: %v", err)
	}
	sshPub, err := ssh.NewPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("Failed to convert public key: %v", err)
	}

	pub := keys.PublicKey{
		Raw:         sshPub.Marshal(),
		Algorithm:   sshPub.Type(),
		Fingerprint: keys.Fingerprint(sshPub),
		Comment:     name,
	}
	recipient := keys.Recipient{PublicKey: pub, Source: name}
	private := &keys.PrivateKey{Key: key, Public: pub}
	return recipient, private
}

// failingEntropy overrides RandomBytes with a failure and delegates
// everything else to the embedded provider.
type failingEntropy struct {
	crypto.Provider
	err error
}

func (f failingEntropy) RandomBytes(n int) ([]byte, error) {
	return nil, f.err
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	ctx := context.Background()
	alice, alicePriv := newTestIdentity(t, "alice")
	bob, bobPriv := newTestIdentity(t, "bob")
	plaintext := []byte("the launch codes")

	encrypted, err := Encrypt(ctx, plaintext, EncryptOptions{Recipients: []keys.Recipient{alice, bob}})
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if len(encrypted.Wrapped) != 2 {
		t.Fatalf("Expected 2 wrapped recipients, got %d", len(encrypted.Wrapped))
	}
	if len(encrypted.Skipped) != 0 {
		t.Errorf("Expected no skipped recipients, got %d", len(encrypted.Skipped))
	}

	for name, priv := range map[string]*keys.PrivateKey{"alice": alicePriv, "bob": bobPriv} {
		result, err := Decrypt(ctx, encrypted.Container, DecryptOptions{PrivateKey: priv})
		if err != nil {
			t.Fatalf("Decrypt as %s failed: %v", name, err)
		}
		if !bytes.Equal(result.Plaintext, plaintext) {
			t.Errorf("plaintext for %s = %q, expected %q", name, result.Plaintext, plaintext)
		}
		if result.Fingerprint != priv.Public.Fingerprint {
			t.Errorf("result fingerprint = %s, expected %s", result.Fingerprint, priv.Public.Fingerprint)
		}
		if len(result.Recipients) != 2 {
			t.Errorf("Expected 2 recipients listed, got %d", len(result.Recipients))
		}
	}
}

func TestEncryptDecryptEmptyPlaintext(t *testing.T) {
	ctx := context.Background()
	alice, alicePriv := newTestIdentity(t, "alice")

	encrypted, err := Encrypt(ctx, []byte{}, EncryptOptions{Recipients: []keys.Recipient{alice}})
	if err != nil {
		t.Fatalf("Encrypt failed for empty plaintext: %v", err)
	}

	result, err := Decrypt(ctx, encrypted.Container, DecryptOptions{PrivateKey: alicePriv})
	if err != nil {
		t.Fatalf("Decrypt failed for empty plaintext: %v", err)
	}
	if len(result.Plaintext) != 0 {
		t.Errorf("Expected empty plaintext, got %d bytes", len(result.Plaintext))
	}
}

func TestEncryptDecryptLargePlaintext(t *testing.T) {
	ctx := context.Background()
	alice, alicePriv := newTestIdentity(t, "alice")
	plaintext := bytes.Repeat([]byte("all work and no play makes jack a dull boy\n"), 25000)

	encrypted, err := Encrypt(ctx, plaintext, EncryptOptions{Recipients: []keys.Recipient{alice}})
	if err != nil {
		t.Fatalf("Encrypt failed for large plaintext: %v", err)
	}

	result, err := Decrypt(ctx, encrypted.Container, DecryptOptions{PrivateKey: alicePriv})
	if err != nil {
		t.Fatalf("Decrypt failed for large plaintext: %v", err)
	}
	if !bytes.Equal(result.Plaintext, plaintext) {
		t.Error("large plaintext round trip mismatch")
	}
}

func TestEncryptPayloadBlockFirst(t *testing.T) {
	ctx := context.Background()
	alice, _ := newTestIdentity(t, "alice")

	encrypted, err := Encrypt(ctx, []byte("the secret"), EncryptOptions{Recipients: []keys.Recipient{alice}})
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	blocks, err := armor.Decode(encrypted.Container)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if blocks[0].Name != armor.PayloadName {
		t.Errorf("first block is %q, expected %q", blocks[0].Name, armor.PayloadName)
	}
	if len(blocks) != 2 {
		t.Errorf("Expected 2 blocks, got %d", len(blocks))
	}
}

func TestEncryptFreshSessionKeyPerEnvelope(t *testing.T) {
	ctx := context.Background()
	alice, _ := newTestIdentity(t, "alice")
	plaintext := []byte("identical plaintext")

	first, err := Encrypt(ctx, plaintext, EncryptOptions{Recipients: []keys.Recipient{alice}})
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	second, err := Encrypt(ctx, plaintext, EncryptOptions{Recipients: []keys.Recipient{alice}})
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	if bytes.Equal(first.Container, second.Container) {
		t.Error("two envelopes of the same plaintext are identical; session key reuse?")
	}
}

func TestDecryptKeyNotAddressed(t *testing.T) {
	ctx := context.Background()
	alice, _ := newTestIdentity(t, "alice")
	bob, _ := newTestIdentity(t, "bob")
	_, mallory := newTestIdentity(t, "mallory")

	encrypted, err := Encrypt(ctx, []byte("for alice and bob only"), EncryptOptions{Recipients: []keys.Recipient{alice, bob}})
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	_, err = Decrypt(ctx, encrypted.Container, DecryptOptions{PrivateKey: mallory})
	if err == nil {
		t.Fatal("expected error decrypting with an unaddressed key")
	}
	if !errors.Is(err, jerrors.ErrKeyNotAddressed) {
		t.Errorf("expected ErrKeyNotAddressed, got: %v", err)
	}
}

func TestEncryptNoRecipients(t *testing.T) {
	_, err := Encrypt(context.Background(), []byte("the secret"), EncryptOptions{})
	if err == nil {
		t.Fatal("expected error with no recipients")
	}
	if !errors.Is(err, jerrors.ErrNoValidRecipients) {
		t.Errorf("expected ErrNoValidRecipients, got: %v", err)
	}
}

func TestEncryptSkipsBadRecipientKey(t *testing.T) {
	ctx := context.Background()
	alice, alicePriv := newTestIdentity(t, "alice")
	broken := keys.Recipient{
		PublicKey: keys.PublicKey{
			Raw:         []byte("not a wire format key"),
			Algorithm:   ssh.KeyAlgoRSA,
			Fingerprint: "00:00:00:00:00:00:00:00:00:00:00:00:00:00:00:00",
		},
		Source: "broken.pub",
	}

	encrypted, err := Encrypt(ctx, []byte("the secret"), EncryptOptions{Recipients: []keys.Recipient{broken, alice}})
	if err != nil {
		t.Fatalf("Encrypt failed despite one good recipient: %v", err)
	}

	if len(encrypted.Wrapped) != 1 {
		t.Fatalf("Expected 1 wrapped recipient, got %d", len(encrypted.Wrapped))
	}
	if len(encrypted.Skipped) != 1 {
		t.Fatalf("Expected 1 skipped recipient, got %d", len(encrypted.Skipped))
	}

	skipped := encrypted.Skipped[0]
	if skipped.Source != "broken.pub" {
		t.Errorf("Skipped.Source = %q, expected %q", skipped.Source, "broken.pub")
	}
	if !errors.Is(skipped.Reason, jerrors.ErrWrapFailure) {
		t.Errorf("expected ErrWrapFailure, got: %v", skipped.Reason)
	}

	// The surviving recipient can still open the envelope.
	result, err := Decrypt(ctx, encrypted.Container, DecryptOptions{PrivateKey: alicePriv})
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if string(result.Plaintext) != "the secret" {
		t.Errorf("plaintext = %q, expected %q", result.Plaintext, "the secret")
	}
}

func TestEncryptAllRecipientsFail(t *testing.T) {
	broken := keys.Recipient{
		PublicKey: keys.PublicKey{
			Raw:         []byte("junk"),
			Algorithm:   ssh.KeyAlgoRSA,
			Fingerprint: "11:11:11:11:11:11:11:11:11:11:11:11:11:11:11:11",
		},
		Source: "junk.pub",
	}

	_, err := Encrypt(context.Background(), []byte("the secret"), EncryptOptions{Recipients: []keys.Recipient{broken}})
	if err == nil {
		t.Fatal("expected error when every recipient fails")
	}
	if !errors.Is(err, jerrors.ErrNoValidRecipients) {
		t.Errorf("expected ErrNoValidRecipients, got: %v", err)
	}
}

func TestEncryptEntropyFailure(t *testing.T) {
	alice, _ := newTestIdentity(t, "alice")
	provider := failingEntropy{
		Provider: crypto.System(),
		err:      jerrors.ErrEntropyUnavailable,
	}

	_, err := Encrypt(context.Background(), []byte("the secret"), EncryptOptions{
		Recipients: []keys.Recipient{alice},
		Provider:   provider,
	})
	if err == nil {
		t.Fatal("expected error when entropy source fails")
	}
	if !errors.Is(err, jerrors.ErrEntropyUnavailable) {
		t.Errorf("expected ErrEntropyUnavailable, got: %v", err)
	}
}

// rewrapBlocks re-encodes a container after a test has tampered with its
// blocks.
func rewrapBlocks(t *testing.T, container []byte, mutate func([]armor.Block) []armor.Block) []byte {
	t.Helper()
	blocks, err := armor.Decode(container)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	return armor.Encode(mutate(blocks))
}

func TestDecryptCorruptedWrappedKey(t *testing.T) {
	ctx := context.Background()
	alice, alicePriv := newTestIdentity(t, "alice")

	encrypted, err := Encrypt(ctx, []byte("the secret"), EncryptOptions{Recipients: []keys.Recipient{alice}})
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	tampered := rewrapBlocks(t, encrypted.Container, func(blocks []armor.Block) []armor.Block {
		for i := range blocks {
			if blocks[i].Name == alice.Fingerprint {
				blocks[i].Data[0] ^= 0xFF
			}
		}
		return blocks
	})

	_, err = Decrypt(ctx, tampered, DecryptOptions{PrivateKey: alicePriv})
	if err == nil {
		t.Fatal("expected error for corrupted wrapped key")
	}
	if !errors.Is(err, jerrors.ErrUnwrapFailure) {
		t.Errorf("expected ErrUnwrapFailure, got: %v", err)
	}
}

func TestDecryptCorruptedPayload(t *testing.T) {
	ctx := context.Background()
	alice, alicePriv := newTestIdentity(t, "alice")

	encrypted, err := Encrypt(ctx, []byte("the secret"), EncryptOptions{Recipients: []keys.Recipient{alice}})
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	tests := []struct {
		name   string
		mutate func([]armor.Block) []armor.Block
	}{
		{
			name: "BrokenHeader",
			mutate: func(blocks []armor.Block) []armor.Block {
				blocks[0].Data[0] ^= 0xFF
				return blocks
			},
		},
		{
			name: "Truncated",
			mutate: func(blocks []armor.Block) []armor.Block {
				blocks[0].Data = blocks[0].Data[:10]
				return blocks
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tampered := rewrapBlocks(t, encrypted.Container, tc.mutate)

			_, err := Decrypt(ctx, tampered, DecryptOptions{PrivateKey: alicePriv})
			if err == nil {
				t.Fatal("expected error for corrupted payload")
			}
			if !errors.Is(err, jerrors.ErrCipherMismatch) {
				t.Errorf("expected ErrCipherMismatch, got: %v", err)
			}
		})
	}
}

func TestDecryptPayloadOnlyContainer(t *testing.T) {
	_, alicePriv := newTestIdentity(t, "alice")
	container := armor.Encode([]armor.Block{{Name: armor.PayloadName, Data: []byte("opaque payload")}})

	_, err := Decrypt(context.Background(), container, DecryptOptions{PrivateKey: alicePriv})
	if err == nil {
		t.Fatal("expected error for container without wrapped keys")
	}
	if !errors.Is(err, jerrors.ErrKeyNotAddressed) {
		t.Errorf("expected ErrKeyNotAddressed, got: %v", err)
	}
}

func TestDecryptMissingPayloadBlock(t *testing.T) {
	_, alicePriv := newTestIdentity(t, "alice")
	container := armor.Encode([]armor.Block{{Name: alicePriv.Public.Fingerprint, Data: []byte("wrapped key")}})

	_, err := Decrypt(context.Background(), container, DecryptOptions{PrivateKey: alicePriv})
	if err == nil {
		t.Fatal("expected error for container without a payload block")
	}
	if !errors.Is(err, jerrors.ErrTransportParse) {
		t.Errorf("expected ErrTransportParse, got: %v", err)
	}
}

func TestDecryptEmptyWrappedKeyBlock(t *testing.T) {
	_, alicePriv := newTestIdentity(t, "alice")
	container := armor.Encode([]armor.Block{
		{Name: armor.PayloadName, Data: []byte("opaque payload")},
		{Name: alicePriv.Public.Fingerprint, Data: []byte{}},
	})

	_, err := Decrypt(context.Background(), container, DecryptOptions{PrivateKey: alicePriv})
	if err == nil {
		t.Fatal("expected error for empty wrapped key block")
	}
	if !errors.Is(err, jerrors.ErrTransportParse) {
		t.Errorf("expected ErrTransportParse, got: %v", err)
	}
}

func TestDecryptGarbageContainer(t *testing.T) {
	_, alicePriv := newTestIdentity(t, "alice")

	_, err := Decrypt(context.Background(), []byte("this is not an envelope\n"), DecryptOptions{PrivateKey: alicePriv})
	if err == nil {
		t.Fatal("expected error for garbage container")
	}
	if !errors.Is(err, jerrors.ErrTransportParse) {
		t.Errorf("expected ErrTransportParse, got: %v", err)
	}
}

func TestDecryptNilPrivateKey(t *testing.T) {
	_, err := Decrypt(context.Background(), []byte("anything"), DecryptOptions{})
	if err == nil {
		t.Fatal("expected error for nil private key")
	}
	if !errors.Is(err, jerrors.ErrInvalidPrivateKey) {
		t.Errorf("expected ErrInvalidPrivateKey, got: %v", err)
	}
}

func TestDecryptSurvivesMailQuoting(t *testing.T) {
	ctx := context.Background()
	alice, alicePriv := newTestIdentity(t, "alice")

	encrypted, err := Encrypt(ctx, []byte("the secret"), EncryptOptions{Recipients: []keys.Recipient{alice}})
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	mailed := "Hi,\n\nhere is the secret you asked for:\n\n" +
		strings.ReplaceAll(string(encrypted.Container), "\n", "\r\n") +
		"\r\nCheers\n"

	result, err := Decrypt(ctx, []byte(mailed), DecryptOptions{PrivateKey: alicePriv})
	if err != nil {
		t.Fatalf("Decrypt failed for mail-quoted container: %v", err)
	}
	if string(result.Plaintext) != "the secret" {
		t.Errorf("plaintext = %q, expected %q", result.Plaintext, "the secret")
	}
}

func TestDecryptToleratesTrailingNewlineInWrappedKey(t *testing.T) {
	// Some producers wrap the base64 session key with a trailing newline.
	ctx := context.Background()
	alice, alicePriv := newTestIdentity(t, "alice")

	provider := crypto.System()
	sessionKey, err := crypto.NewSessionKey(provider)
	if err != nil {
		t.Fatalf("NewSessionKey failed: %v", err)
	}

	payload, err := provider.SymmetricEncrypt([]byte("the secret"), sessionKey)
	if err != nil {
		t.Fatalf("SymmetricEncrypt failed: %v", err)
	}

	alicePub, err := alice.RSA()
	if err != nil {
		t.Fatalf("RSA failed: %v", err)
	}
	wrapped, err := provider.AsymmetricEncrypt(append(sessionKey, '\n'), alicePub)
	if err != nil {
		t.Fatalf("AsymmetricEncrypt failed: %v", err)
	}

	container := armor.Encode([]armor.Block{
		{Name: armor.PayloadName, Data: payload},
		{Name: alice.Fingerprint, Data: wrapped},
	})

	result, err := Decrypt(ctx, container, DecryptOptions{PrivateKey: alicePriv})
	if err != nil {
		t.Fatalf("Decrypt failed for newline-terminated session key: %v", err)
	}
	if string(result.Plaintext) != "the secret" {
		t.Errorf("plaintext = %q, expected %q", result.Plaintext, "the secret")
	}
}
