package cmd

import (
	logger "github.com/kimor79/jass/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	RootCmd = &cobra.Command{
		Use:   "jass",
		Short: "Jass - share secrets with anyone who has an SSH key.",
		Long: `Jass encrypts a secret so that only the holders of chosen SSH private
keys can read it, without anybody exchanging new key material first.

Features:
  - Encrypt once for many recipients, using their existing SSH public keys
  - Pull recipient keys from files, globs, or GitHub accounts
  - Produce plain ASCII envelopes that survive email, chat, and tickets
  - Decrypt with nothing but your usual SSH private key

Run 'jass help <command>' for more details on a specific command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing jass with verbose=%t, debug=%t", verbose, debug)
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	RootCmd.AddCommand(encryptCmd)
	RootCmd.AddCommand(decryptCmd)
	RootCmd.AddCommand(fingerprintCmd)
	RootCmd.AddCommand(versionCmd)
}
