package envelope

import (
	"bytes"
	"context"
	"fmt"

	"github.com/kimor79/jass/internal/armor"
	"github.com/kimor79/jass/internal/crypto"
	jerrors "github.com/kimor79/jass/internal/errors"
	"github.com/kimor79/jass/internal/keys"
	"github.com/kimor79/jass/internal/workspace"
)

// EncryptOptions configures the encrypt operation.
type EncryptOptions struct {
	// Recipients are the normalized keys the envelope is addressed to.
	Recipients []keys.Recipient

	// Provider supplies the cryptographic primitives. Nil selects the
	// production provider.
	Provider crypto.Provider
}

// SkippedRecipient records one recipient the envelope could not be
// wrapped for. Reason wraps ErrWrapFailure.
type SkippedRecipient struct {
	Fingerprint string
	Source      string
	Reason      error
}

// EncryptResult contains the outcome of an encrypt operation.
type EncryptResult struct {
	// Container is the complete ASCII envelope.
	Container []byte

	// Wrapped lists the fingerprints of recipients that can open the envelope.
	Wrapped []string

	// Skipped records recipients that were left out, with the reason.
	Skipped []SkippedRecipient
}

// Encrypt builds an envelope holding plaintext for the given recipients.
//
// A fresh session key is generated, the plaintext is encrypted exactly
// once under it, and the session key is wrapped separately for every
// recipient. A recipient whose key cannot be used is skipped and
// reported in the result rather than aborting the operation; only when
// no recipient at all receives the session key does Encrypt fail.
//
// Returns ErrNoValidRecipients if no recipient could be wrapped for.
// Returns ErrEntropyUnavailable if the random source fails.
func Encrypt(ctx context.Context, plaintext []byte, opts EncryptOptions) (*EncryptResult, error) {
	provider := opts.Provider
	if provider == nil {
		provider = crypto.System()
	}

	if len(opts.Recipients) == 0 {
		return nil, fmt.Errorf("%w: no recipients provided", jerrors.ErrNoValidRecipients)
	}

	ws, err := workspace.New()
	if err != nil {
		return nil, fmt.Errorf("preparing workspace: %w", err)
	}
	defer ws.Close()

	sessionKey, err := crypto.NewSessionKey(provider)
	if err != nil {
		return nil, fmt.Errorf("generating session key: %w", err)
	}
	defer crypto.Wipe(sessionKey)

	// The session key only ever touches disk inside the workspace.
	if _, err := ws.WriteSecret("session.key", sessionKey); err != nil {
		return nil, fmt.Errorf("staging session key: %w", err)
	}

	payload, err := provider.SymmetricEncrypt(plaintext, sessionKey)
	if err != nil {
		return nil, fmt.Errorf("encrypting payload: %w", err)
	}

	result := &EncryptResult{}
	blocks := make([]armor.Block, 0, len(opts.Recipients)+1)
	blocks = append(blocks, armor.Block{Name: armor.PayloadName, Data: payload})

	for _, recipient := range opts.Recipients {
		wrapped, err := wrapForRecipient(provider, sessionKey, recipient)
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedRecipient{
				Fingerprint: recipient.Fingerprint,
				Source:      recipient.Source,
				Reason:      err,
			})
			continue
		}
		blocks = append(blocks, armor.Block{Name: recipient.Fingerprint, Data: wrapped})
		result.Wrapped = append(result.Wrapped, recipient.Fingerprint)
	}

	if len(result.Wrapped) == 0 {
		return nil, fmt.Errorf("%w: all %d recipients failed", jerrors.ErrNoValidRecipients, len(opts.Recipients))
	}

	result.Container = armor.Encode(blocks)
	return result, nil
}

// wrapForRecipient encrypts the session key for a single recipient.
func wrapForRecipient(provider crypto.Provider, sessionKey []byte, recipient keys.Recipient) ([]byte, error) {
	publicKey, err := recipient.RSA()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", jerrors.ErrWrapFailure, err)
	}
	return provider.AsymmetricEncrypt(sessionKey, publicKey)
}

// DecryptOptions configures the decrypt operation.
type DecryptOptions struct {
	// PrivateKey is the operator's key, used both to locate the matching
	// wrapped key block and to unwrap it.
	PrivateKey *keys.PrivateKey

	// Provider supplies the cryptographic primitives. Nil selects the
	// production provider.
	Provider crypto.Provider
}

// DecryptResult contains the outcome of a decrypt operation.
type DecryptResult struct {
	// Plaintext is the recovered payload.
	Plaintext []byte

	// Fingerprint names the wrapped key block that opened the envelope.
	Fingerprint string

	// Recipients lists every fingerprint the envelope is addressed to.
	Recipients []string
}

// Decrypt opens a container with the operator's private key.
//
// The wrapped key block matching the key's fingerprint is located by
// name, the session key unwrapped, and the payload decrypted. The
// container may carry foreign text around the blocks; only the blocks
// themselves matter.
//
// Returns ErrTransportParse if the container or its blocks are malformed.
// Returns ErrKeyNotAddressed if no block matches the key's fingerprint.
// Returns ErrUnwrapFailure if the matching block cannot be unwrapped.
// Returns ErrCipherMismatch if the payload does not decrypt under the
// recovered session key.
func Decrypt(ctx context.Context, container []byte, opts DecryptOptions) (*DecryptResult, error) {
	if opts.PrivateKey == nil {
		return nil, fmt.Errorf("%w: no private key", jerrors.ErrInvalidPrivateKey)
	}
	provider := opts.Provider
	if provider == nil {
		provider = crypto.System()
	}

	blocks, err := armor.Decode(container)
	if err != nil {
		return nil, err
	}

	fingerprint := opts.PrivateKey.Public.Fingerprint
	var payload, wrappedKey []byte
	var recipients []string

	for _, block := range blocks {
		if block.Name == armor.PayloadName {
			if payload == nil {
				payload = block.Data
			}
			continue
		}
		recipients = append(recipients, block.Name)
		if block.Name == fingerprint && wrappedKey == nil {
			wrappedKey = block.Data
		}
	}

	if payload == nil {
		return nil, fmt.Errorf("%w: container has no %s block", jerrors.ErrTransportParse, armor.PayloadName)
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("%w: %s block is empty", jerrors.ErrTransportParse, armor.PayloadName)
	}
	if wrappedKey == nil {
		return nil, fmt.Errorf("%w: %s is not among the envelope's %d recipients", jerrors.ErrKeyNotAddressed, fingerprint, len(recipients))
	}
	if len(wrappedKey) == 0 {
		return nil, fmt.Errorf("%w: wrapped key block %s is empty", jerrors.ErrTransportParse, fingerprint)
	}

	ws, err := workspace.New()
	if err != nil {
		return nil, fmt.Errorf("preparing workspace: %w", err)
	}
	defer ws.Close()

	sessionKey, err := provider.AsymmetricDecrypt(wrappedKey, opts.PrivateKey.Key)
	if err != nil {
		return nil, fmt.Errorf("unwrapping session key %s: %w", fingerprint, err)
	}
	defer crypto.Wipe(sessionKey)

	// Some producers wrap the session key with a trailing newline; the
	// key itself is base64 and never contains one.
	sessionKey = bytes.TrimRight(sessionKey, "\r\n")

	if _, err := ws.WriteSecret("session.key", sessionKey); err != nil {
		return nil, fmt.Errorf("staging session key: %w", err)
	}

	plaintext, err := provider.SymmetricDecrypt(payload, sessionKey)
	if err != nil {
		return nil, fmt.Errorf("decrypting payload: %w", err)
	}

	return &DecryptResult{
		Plaintext:   plaintext,
		Fingerprint: fingerprint,
		Recipients:  recipients,
	}, nil
}
