// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package stats

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sourcegraph/go-diff/diff"
)

// ErrNotUnifiedDiff marks an artifact whose content carries no recognizable
// unified-diff structure. Callers treat it as a zero-stat result with a
// warning, never as a fatal condition.
var ErrNotUnifiedDiff = errors.New("not a unified diff")

// Stats holds the added/removed line counts for one artifact.
type Stats struct {
	Added   int
	Removed int
}

// FileStat is the per-file breakdown of an artifact.
type FileStat struct {
	Path    string
	Added   int
	Removed int
}

// Extract counts added and removed content lines in a unified diff. The
// `+++`/`---` file-header lines share the content markers' first character
// and must never be counted, so both are special-cased.
func Extract(content string) (added, removed int) {
	for _, line := range strings.Split(content, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			// File header, not a content change.
		case strings.HasPrefix(line, "+"):
			added++
		case strings.HasPrefix(line, "-"):
			removed++
		}
	}
	return added, removed
}

// FromArtifact reads an artifact file and extracts its stats. Unreadable
// files and content that is not a unified diff return an error; the latter
// wraps ErrNotUnifiedDiff.
func FromArtifact(path string) (Stats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Stats{}, fmt.Errorf("reading artifact: %w", err)
	}

	content := string(data)
	if !looksLikeDiff(content) {
		return Stats{}, fmt.Errorf("%s: %w", path, ErrNotUnifiedDiff)
	}

	added, removed := Extract(content)
	return Stats{Added: added, Removed: removed}, nil
}

// Files parses an artifact into its per-file breakdown. Counts are taken
// from the hunk bodies with the same marker convention as Extract, so the
// per-file sums always match the artifact totals.
func Files(content string) ([]FileStat, error) {
	if !looksLikeDiff(content) {
		return nil, ErrNotUnifiedDiff
	}

	fds, err := diff.NewMultiFileDiffReader(strings.NewReader(content)).ReadAllFiles()
	if err != nil {
		return nil, fmt.Errorf("parsing artifact: %w", err)
	}

	out := make([]FileStat, 0, len(fds))
	for _, fd := range fds {
		fs := FileStat{Path: fd.NewName}
		if fs.Path == "" || fs.Path == "/dev/null" {
			fs.Path = fd.OrigName
		}
		if fs.Path == "" && len(fd.Hunks) == 0 {
			// Binary-difference notices parse without names or hunks.
			continue
		}
		for _, hunk := range fd.Hunks {
			for _, line := range strings.Split(string(hunk.Body), "\n") {
				switch {
				case strings.HasPrefix(line, "+"):
					fs.Added++
				case strings.HasPrefix(line, "-"):
					fs.Removed++
				}
			}
		}
		out = append(out, fs)
	}
	return out, nil
}

// looksLikeDiff reports whether content carries at least one line the diff
// tool emits: a hunk header, a binary-difference notice, or a one-sided
// entry. Anything else cannot be parsed for statistics.
func looksLikeDiff(content string) bool {
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "@@ ") ||
			strings.HasPrefix(line, "Binary files ") ||
			strings.HasPrefix(line, "Only in ") {
			return true
		}
	}
	return false
}
