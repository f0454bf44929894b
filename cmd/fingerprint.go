package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kimor79/jass/internal/configs"
	"github.com/kimor79/jass/internal/keys"
	"github.com/kimor79/jass/internal/ui"
)

var (
	fingerprintKeyFiles    []string
	fingerprintGithubUsers []string
	fingerprintSHA256      bool
)

func init() {
	keySourceFlags(fingerprintCmd.Flags(), &fingerprintKeyFiles, &fingerprintGithubUsers)
	fingerprintCmd.Flags().BoolVar(&fingerprintSHA256, "sha256", false, "print SHA256 fingerprints instead of the MD5 form envelopes use")
}

var fingerprintCmd = &cobra.Command{
	Use:   "fingerprint",
	Short: "Print the fingerprints of recipient keys",
	Long: `Prints the fingerprint of every usable key from the given sources, in
the MD5 form that names envelope blocks. Use it to check which block of
an envelope belongs to whom, or to verify a key before encrypting to it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting fingerprint command")

		if len(fingerprintKeyFiles) == 0 && len(fingerprintGithubUsers) == 0 {
			return fmt.Errorf("no key sources named: pass %s or %s",
				ui.Flag.Sprint("--key"), ui.Flag.Sprint("--github"))
		}

		settings, err := configs.Load()
		if err != nil {
			return err
		}

		raw, err := collectKeys(cmd.Context(), fingerprintKeyFiles, fingerprintGithubUsers, settings.GitHub.API)
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

		for _, recipient := range normalized.Recipients {
			display := recipient.Fingerprint
			if fingerprintSHA256 {
				if display, err = recipient.SHA256(); err != nil {
					return err
				}
			}

			line := ui.Fingerprint.Sprint(display)
			if recipient.Comment != "" {
				line += " " + recipient.Comment
			}
			line += " (" + recipient.Source + ")"
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
		return nil
	},
}
