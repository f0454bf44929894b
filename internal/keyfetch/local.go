package keyfetch

import (
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/kimor79/jass/internal/keys"
	"github.com/kimor79/jass/internal/utils"
)

// FromFiles reads public key material from user-named paths. Patterns may
// use glob syntax including ** and a leading ~. The caller named these
// sources explicitly, so a pattern matching nothing is an error rather
// than a skip.
func FromFiles(patterns []string) ([]keys.RawKey, error) {
	var raw []keys.RawKey
	seen := make(map[string]bool) // Deduplicate across overlapping patterns.

	for _, pattern := range patterns {
		paths, err := resolvePattern(pattern)
		if err != nil {
			return nil, err
		}

		for _, path := range paths {
			if seen[path] {
				continue
			}
			seen[path] = true

			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("failed to read key file %s: %w", path, err)
			}
			raw = append(raw, keys.RawKey{Data: data, Source: path})
		}
	}

	return raw, nil
}

// resolvePattern expands one user-supplied path into concrete files.
func resolvePattern(pattern string) ([]string, error) {
	expanded, err := utils.ExpandHome(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to expand %s: %w", pattern, err)
	}

	// Literal paths skip the glob machinery so a missing file gets a
	// clear message instead of an empty match.
	if !strings.ContainsAny(expanded, "*?[") {
		if _, err := os.Stat(expanded); err != nil {
			return nil, fmt.Errorf("key file not found: %s", pattern)
		}
		return []string{expanded}, nil
	}

	matches, err := doublestar.FilepathGlob(expanded)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}

	var files []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, m)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no files match %s", pattern)
	}
	return files, nil
}
