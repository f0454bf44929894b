package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kimor79/jass/internal/keyfetch"
	"github.com/kimor79/jass/internal/keys"
	"github.com/kimor79/jass/internal/ui"
	"github.com/kimor79/jass/internal/utils"
)

// startSpinner shows progress on stderr while a command works. The
// spinner stays still in verbose or debug mode, and when quiet is set;
// commands set quiet while streaming an envelope or plaintext to stdout.
// Returns the spinner and a function that should be deferred to clean up.
//
// spinner.FinalMSG values do NOT need trailing newlines. The cleanup
// function calls ui.EnsureNewline() on the final message before printing
// it to stderr; stdout carries nothing but envelope or plaintext bytes.
func startSpinner(message string, quiet bool) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		// If we can't set spinner color, just continue without it.
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	if !verbose && !debug && !quiet {
		Logger.Debugf("Starting spinner in non-verbose mode")
		s.Start()
	} else {
		Logger.Infof("%s", message)
	}

	cleanup := func() {
		// Ensure final message ends with a newline.
		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		// Stop the spinner first to clear the spinner line.
		if s.Active() {
			Logger.Debugf("Stopping spinner")
			s.Stop()
		}

		if finalMsg != "" {
			fmt.Fprint(os.Stderr, finalMsg)
		}
	}

	return s, cleanup
}

// keySourceFlags registers the recipient key source flags shared by
// commands that read public keys.
func keySourceFlags(fs *pflag.FlagSet, keyFiles, githubUsers *[]string) {
	fs.StringArrayVarP(keyFiles, "key", "k", nil, "public key file or glob pattern (repeatable)")
	fs.StringArrayVarP(githubUsers, "github", "u", nil, "GitHub user whose published keys to use (repeatable)")
}

// collectKeys gathers raw key material from local files and GitHub users.
func collectKeys(ctx context.Context, keyFiles, githubUsers []string, apiBase string) ([]keys.RawKey, error) {
	raw, err := keyfetch.FromFiles(keyFiles)
	if err != nil {
		return nil, err
	}

	if len(githubUsers) > 0 {
		client := keyfetch.NewClient(apiBase)
		for _, user := range githubUsers {
			Logger.Debugf("Fetching published keys for GitHub user %s", user)
			fetched, err := client.ForUser(ctx, user)
			if err != nil {
				return nil, err
			}
			if len(fetched) == 0 {
				Logger.Warnf("GitHub user %s has no published keys", user)
			}
			raw = append(raw, fetched...)
		}
	}

	return raw, nil
}

// reportSkippedKeys warns about candidate keys that normalization rejected.
func reportSkippedKeys(skipped []keys.Skipped) {
	for _, s := range skipped {
		Logger.Warnf("Skipping key from %s (line %d): %v", s.Source, s.Line, s.Reason)
	}
}

// readInput reads the secret or envelope from path, or from stdin when
// path is empty.
func readInput(path string) ([]byte, error) {
	if path == "" {
		Logger.Debugf("Reading input from stdin")
		return utils.ReadStdin()
	}

	Logger.Debugf("Reading input from %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// writeOutput writes data to path with the given mode, or to the
// command's stdout when path is empty.
func writeOutput(cmd *cobra.Command, path string, data []byte, mode os.FileMode) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	if err := os.WriteFile(path, data, mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
