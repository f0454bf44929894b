package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kimor79/jass/internal/configs"
	"github.com/kimor79/jass/internal/crypto"
	"github.com/kimor79/jass/internal/envelope"
	jerrors "github.com/kimor79/jass/internal/errors"
	"github.com/kimor79/jass/internal/keys"
	"github.com/kimor79/jass/internal/ui"
	"github.com/kimor79/jass/internal/utils"
)

var (
	decryptKeyFile    string
	decryptInputFile  string
	decryptOutputFile string
)

func init() {
	decryptCmd.Flags().StringVarP(&decryptKeyFile, "key", "k", "", "private key to decrypt with (default: config file, then ~/.ssh/id_rsa)")
	decryptCmd.Flags().StringVarP(&decryptInputFile, "file", "f", "", "read the envelope from this file instead of stdin")
	decryptCmd.Flags().StringVarP(&decryptOutputFile, "output", "o", "", "write the secret to this file instead of stdout")
}

var decryptCmd = &cobra.Command{
	Use:   "decrypt",
	Short: "Decrypt an envelope with your SSH private key",
	Long: `Decrypts an envelope that was encrypted for your SSH public key. The
envelope may arrive with surrounding text, for example pasted into an
email; everything outside its blocks is ignored. Passphrase-protected
keys are prompted for on the controlling terminal, so the envelope
itself can still come in on stdin.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting decrypt command")
		s, cleanup := startSpinner("Decrypting...", decryptOutputFile == "")
		defer cleanup()

		settings, err := configs.Load()
		if err != nil {
			return err
		}

		keyPath := decryptKeyFile
		if keyPath == "" {
			keyPath = settings.Keys.Private
		}
		if keyPath == "" {
			keyPath = configs.DefaultPrivateKey
		}
		keyPath, err = utils.ExpandHome(keyPath)
		if err != nil {
			return err
		}
		Logger.Debugf("Using private key at %s", keyPath)

		privateKey, err := loadPrivateKey(s, keyPath)
		if err != nil {
			return err
		}
		Logger.Infof("Private key loaded, fingerprint %s", privateKey.Public.Fingerprint)

		container, err := readInput(decryptInputFile)
		if err != nil {
			return err
		}

		result, err := envelope.Decrypt(cmd.Context(), container, envelope.DecryptOptions{
			PrivateKey: privateKey,
		})
		if err != nil {
			return err
		}
		Logger.Infof("Envelope decrypted, addressed to %d recipients", len(result.Recipients))

		if err := writeOutput(cmd, decryptOutputFile, result.Plaintext, 0o600); err != nil {
			return err
		}

		finalMessage := color.GreenString("✓") + " Secret decrypted with key " + ui.Fingerprint.Sprint(result.Fingerprint)
		if decryptOutputFile != "" {
			finalMessage += "\n" + color.CyanString("→") + " Secret written to " + ui.Path.Sprint(decryptOutputFile)
		}
		s.FinalMSG = finalMessage
		return nil
	},
}

// loadPrivateKey loads the key at path, prompting for a passphrase on
// the controlling terminal when the key is protected. The spinner is
// paused around the prompt so it does not fight with it over stderr.
func loadPrivateKey(s *spinner.Spinner, path string) (*keys.PrivateKey, error) {
	privateKey, err := keys.LoadPrivateKey(path)
	if err == nil {
		return privateKey, nil
	}
	if !errors.Is(err, jerrors.ErrPassphraseRequired) {
		return nil, err
	}

	if !utils.IsTTYAvailable() {
		return nil, fmt.Errorf("%w and no terminal is available to prompt on", jerrors.ErrPassphraseRequired)
	}

	if s.Active() {
		s.Stop()
		defer s.Start()
	}

	passphrase, err := utils.ReadPassphraseFromTTY(fmt.Sprintf("Enter passphrase for %s: ", path))
	if err != nil {
		return nil, err
	}
	defer crypto.Wipe(passphrase)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key at %s: %w", path, err)
	}
	return keys.ParsePrivateKey(data, passphrase)
}
