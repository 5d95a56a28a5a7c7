// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/apex/log"

	"github.com/forkctl/forkctl/internal/artifact"
)

// DefaultExcludes are the patterns filtered out of every comparison:
// VCS metadata, build output, dependency directories, and lock files.
// Each entry is passed to diff as an -x pattern, so shell-style globs work.
var DefaultExcludes = []string{
	".git",
	"target",
	"node_modules",
	"dist",
	"*.lock",
	"package-lock.json",
	"pnpm-lock.yaml",
}

// Status classifies the outcome of a single crate comparison.
type Status int

const (
	// Identical means the two trees match once excludes are filtered.
	Identical Status = iota
	// Differs means at least one non-excluded file differs.
	Differs
)

func (s Status) String() string {
	if s == Differs {
		return "differs"
	}
	return "identical"
}

// Outcome reports what Compare found for one crate. ArtifactPath and
// SizeLines are only set when Status is Differs.
type Outcome struct {
	Status       Status
	ArtifactPath string
	SizeLines    int
}

// Engine shells out to diff(1) and persists the results through an
// artifact store.
type Engine struct {
	Excludes []string
	Store    artifact.Store
}

// NewEngine returns an Engine writing into store. An empty exclude list
// falls back to DefaultExcludes.
func NewEngine(store artifact.Store, excludes []string) Engine {
	if len(excludes) == 0 {
		excludes = DefaultExcludes
	}
	return Engine{Excludes: excludes, Store: store}
}

// Compare diffs the upstream and fork directories of a crate.
//
// diff exits 0 when the trees match, 1 when they differ, and 2 or higher
// on trouble. Only the last case is an error here; exit 1 is a normal
// Differs outcome. -N folds one-sided files into regular unified hunks so
// additions and deletions show up in the artifact instead of as bare
// "Only in" notices.
func (e Engine) Compare(ctx context.Context, crate, upstreamDir, forkDir string) (Outcome, error) {
	args := []string{"-ruN"}
	for _, pattern := range e.Excludes {
		args = append(args, "-x", pattern)
	}
	args = append(args, upstreamDir, forkDir)

	log.Debugf("diff %s", strings.Join(args, " "))

	c := exec.CommandContext(ctx, "diff", args...)

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()
	if err == nil {
		// Trees match. A leftover artifact from an earlier run would
		// contradict that, so drop it.
		if err := e.Store.Remove(crate); err != nil {
			return Outcome{}, err
		}
		return Outcome{Status: Identical}, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		body := stdout.Bytes()
		if err := e.Store.Write(crate, body); err != nil {
			return Outcome{}, err
		}
		return Outcome{
			Status:       Differs,
			ArtifactPath: e.Store.Path(crate),
			SizeLines:    CountLines(body),
		}, nil
	}

	msg := strings.TrimSpace(stderr.String())
	if msg == "" {
		msg = err.Error()
	}
	return Outcome{}, fmt.Errorf("diff of %s against %s failed: %s", upstreamDir, forkDir, msg)
}

// CountLines returns the artifact body's line count, counting a trailing
// unterminated line as a line.
func CountLines(b []byte) int {
	if len(b) == 0 {
		return 0
	}
	n := bytes.Count(b, []byte("\n"))
	if b[len(b)-1] != '\n' {
		n++
	}
	return n
}
