// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/forkctl/forkctl/internal/log"
)

const (
	// DefaultDir is the artifact directory used when none is configured.
	DefaultDir = "diffs"

	// Ext is the artifact filename extension; the basename is the crate name.
	Ext = ".diff"

	// SummaryName is the rendered report filename inside the store.
	SummaryName = "SUMMARY.md"
)

// Store is the artifact directory for one run. Each crate owns a disjoint,
// name-derived file within it, so no locking is needed.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir, falling back to DefaultDir when
// dir is empty. The directory is not created until EnsureDir or a write.
func NewStore(dir string) Store {
	if dir == "" {
		dir = DefaultDir
	}
	return Store{dir: dir}
}

// Dir returns the store's directory path.
func (s Store) Dir() string {
	return s.dir
}

// EnsureDir creates the artifact directory if needed.
func (s Store) EnsureDir() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create artifact directory: %w", err)
	}
	return nil
}

// Path returns the artifact path for a crate. The name is derived purely
// from the crate name so repeated runs hit the same file.
func (s Store) Path(crate string) string {
	return filepath.Join(s.dir, crate+Ext)
}

// SummaryPath returns the path of the rendered report.
func (s Store) SummaryPath() string {
	return filepath.Join(s.dir, SummaryName)
}

// Exists returns the artifact path for crate and whether a file is present.
func (s Store) Exists(crate string) (string, bool) {
	p := s.Path(crate)
	if _, err := os.Stat(p); err == nil {
		return p, true
	}
	return p, false
}

// Read returns the artifact body for crate.
func (s Store) Read(crate string) ([]byte, error) {
	data, err := os.ReadFile(s.Path(crate))
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact for %s: %w", crate, err)
	}
	return data, nil
}

// Write stores the artifact body for crate, creating the directory as
// needed and overwriting any previous artifact.
func (s Store) Write(crate string, data []byte) error {
	if err := s.EnsureDir(); err != nil {
		return err
	}
	p := s.Path(crate)
	if err := os.WriteFile(p, data, 0o644); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write artifact for %s: %w", crate, err)
	}
	log.Debugf("artifact written: crate=%s bytes=%d", crate, len(data))
	return nil
}

// Remove deletes the artifact for crate. A missing artifact is not an
// error; identical crates must end the run with no artifact on disk.
func (s Store) Remove(crate string) error {
	err := os.Remove(s.Path(crate))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove artifact for %s: %w", crate, err)
	}
	if err == nil {
		log.Debugf("stale artifact removed: crate=%s", crate)
	}
	return nil
}

// WriteSummary stores the rendered report, overwriting any previous one.
func (s Store) WriteSummary(data []byte) error {
	if err := s.EnsureDir(); err != nil {
		return err
	}
	if err := os.WriteFile(s.SummaryPath(), data, 0o644); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

// List returns the crate names that currently have an artifact, sorted.
// A missing directory yields an empty list.
func (s Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}

	var crates []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), Ext) {
			continue
		}
		crates = append(crates, strings.TrimSuffix(e.Name(), Ext))
	}
	sort.Strings(crates)
	return crates, nil
}
