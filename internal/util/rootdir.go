// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"os"
	"path/filepath"
)

// ParseRootDir validates a comparison root (upstream or fork tree) and
// returns it as an absolute directory. It returns an error if the fs entry
// does not exist, is empty or is not a directory.
func ParseRootDir(rootDir string) (string, error) {

	if rootDir == "" {
		return "", os.ErrInvalid
	}

	// If the path is relative, make it absolute against the cwd.
	dir := rootDir
	if !filepath.IsAbs(dir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(cwd, dir)
	}

	// If the rootDir is not a directory, return an error.
	if r, err := os.Stat(dir); err != nil {
		return "", err
	} else if !r.IsDir() {
		return "", os.ErrInvalid
	}

	return dir, nil
}
