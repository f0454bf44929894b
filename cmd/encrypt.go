package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kimor79/jass/internal/configs"
	"github.com/kimor79/jass/internal/envelope"
	"github.com/kimor79/jass/internal/keys"
	"github.com/kimor79/jass/internal/ui"
	"github.com/kimor79/jass/internal/utils"
)

var (
	encryptKeyFiles    []string
	encryptGithubUsers []string
	encryptInputFile   string
	encryptOutputFile  string
)

func init() {
	keySourceFlags(encryptCmd.Flags(), &encryptKeyFiles, &encryptGithubUsers)
	encryptCmd.Flags().StringVarP(&encryptInputFile, "file", "f", "", "read the secret from this file instead of stdin")
	encryptCmd.Flags().StringVarP(&encryptOutputFile, "output", "o", "", "write the envelope to this file instead of stdout")
}

var encryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "Encrypt a secret for the SSH keys of its recipients",
	Long: `Encrypts a secret so that every named recipient can open it with their
SSH private key. Recipients are RSA public keys taken from files (--key)
and GitHub accounts (--github); unusable keys are skipped with a warning
as long as at least one recipient remains.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting encrypt command")
		spinner, cleanup := startSpinner("Encrypting...", encryptOutputFile == "")
		defer cleanup()

		settings, err := configs.Load()
		if err != nil {
			return err
		}

		keyFiles := append(append([]string{}, settings.Keys.Public...), encryptKeyFiles...)
		if len(keyFiles) == 0 && len(encryptGithubUsers) == 0 {
			return fmt.Errorf("no recipients named: pass %s or %s, or set keys.public in the config file",
				ui.Flag.Sprint("--key"), ui.Flag.Sprint("--github"))
		}

		Logger.Debugf("Collecting keys from %d files and %d GitHub users", len(keyFiles), len(encryptGithubUsers))
		raw, err := collectKeys(cmd.Context(), keyFiles, encryptGithubUsers, settings.GitHub.API)
		if err != nil {
			return err
		}

		normalized, err := keys.Normalize(raw)
		if normalized != nil {
			reportSkippedKeys(normalized.Skipped)
		}
		if err != nil {
			return err
		}
		Logger.Infof("Normalized %d recipient keys", len(normalized.Recipients))

		plaintext, err := readInput(encryptInputFile)
		if err != nil {
			return err
		}

		result, err := envelope.Encrypt(cmd.Context(), plaintext, envelope.EncryptOptions{
			Recipients: normalized.Recipients,
		})
		if err != nil {
			return err
		}
		for _, s := range result.Skipped {
			Logger.Warnf("Skipping recipient %s from %s: %v", s.Fingerprint, s.Source, s.Reason)
		}

		if err := writeOutput(cmd, encryptOutputFile, result.Container, 0o644); err != nil {
			return err
		}

		Logger.Infof("Encrypted for:%s", utils.FormatList(result.Wrapped, ui.Fingerprint))
		noun := "recipients"
		if len(result.Wrapped) == 1 {
			noun = "recipient"
		}
		finalMessage := color.GreenString("✓") + fmt.Sprintf(" Secret encrypted for %d %s", len(result.Wrapped), noun)
		if encryptOutputFile != "" {
			finalMessage += "\n" + color.CyanString("→") + " Envelope written to " + ui.Path.Sprint(encryptOutputFile)
		}
		spinner.FinalMSG = finalMessage
		return nil
	},
}
