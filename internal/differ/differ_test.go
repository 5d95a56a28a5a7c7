// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package differ

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkctl/forkctl/internal/artifact"
)

func requireDiff(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("diff"); err != nil {
		t.Skip("diff not available in PATH")
	}
}

// writeTree materializes files (path -> content) under root.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for path, content := range files {
		full := filepath.Join(root, path)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
}

func newTestEngine(t *testing.T, excludes ...string) Engine {
	t.Helper()
	store := artifact.NewStore(filepath.Join(t.TempDir(), "diffs"))
	return NewEngine(store, excludes)
}

func TestCompare_IdenticalTrees(t *testing.T) {
	requireDiff(t)

	upstream := t.TempDir()
	fork := t.TempDir()
	files := map[string]string{
		"src/lib.rs":  "pub fn run() {}\n",
		"src/main.rs": "fn main() {}\n",
	}
	writeTree(t, upstream, files)
	writeTree(t, fork, files)

	engine := newTestEngine(t)
	outcome, err := engine.Compare(context.Background(), "core", upstream, fork)

	require.NoError(t, err)
	assert.Equal(t, Identical, outcome.Status)
	assert.Empty(t, outcome.ArtifactPath)
	assert.Zero(t, outcome.SizeLines)

	_, found := engine.Store.Exists("core")
	assert.False(t, found)
}

func TestCompare_IdenticalRemovesStaleArtifact(t *testing.T) {
	requireDiff(t)

	upstream := t.TempDir()
	fork := t.TempDir()
	files := map[string]string{"src/lib.rs": "pub fn run() {}\n"}
	writeTree(t, upstream, files)
	writeTree(t, fork, files)

	engine := newTestEngine(t)
	require.NoError(t, engine.Store.Write("core", []byte("leftover from an earlier run\n")))

	outcome, err := engine.Compare(context.Background(), "core", upstream, fork)

	require.NoError(t, err)
	assert.Equal(t, Identical, outcome.Status)

	_, found := engine.Store.Exists("core")
	assert.False(t, found, "stale artifact should have been removed")
}

func TestCompare_DifferingTrees(t *testing.T) {
	requireDiff(t)

	upstream := t.TempDir()
	fork := t.TempDir()
	writeTree(t, upstream, map[string]string{
		"src/lib.rs": "pub fn run() {}\n",
	})
	writeTree(t, fork, map[string]string{
		"src/lib.rs":   "pub fn run() {}\npub fn run_patched() {}\n",
		"src/patch.rs": "pub fn extra() {}\n",
	})

	engine := newTestEngine(t)
	outcome, err := engine.Compare(context.Background(), "core", upstream, fork)

	require.NoError(t, err)
	assert.Equal(t, Differs, outcome.Status)
	assert.Equal(t, engine.Store.Path("core"), outcome.ArtifactPath)

	body, err := engine.Store.Read("core")
	require.NoError(t, err)
	content := string(body)
	assert.Contains(t, content, "run_patched")
	assert.Contains(t, content, "patch.rs", "-N should diff one-sided files, not just note them")
	assert.Contains(t, content, "@@")
	assert.Equal(t, CountLines(body), outcome.SizeLines)
}

func TestCompare_ExcludedPathsIgnored(t *testing.T) {
	requireDiff(t)

	upstream := t.TempDir()
	fork := t.TempDir()
	writeTree(t, upstream, map[string]string{
		"src/lib.rs": "pub fn run() {}\n",
		"Cargo.lock": "version = 3\n",
	})
	writeTree(t, fork, map[string]string{
		"src/lib.rs":             "pub fn run() {}\n",
		"Cargo.lock":             "version = 4\n",
		"target/debug/build.log": "compiled\n",
	})

	engine := newTestEngine(t)
	outcome, err := engine.Compare(context.Background(), "core", upstream, fork)

	require.NoError(t, err)
	assert.Equal(t, Identical, outcome.Status, "differences confined to excluded paths should not count")
}

func TestCompare_CustomExcludes(t *testing.T) {
	requireDiff(t)

	upstream := t.TempDir()
	fork := t.TempDir()
	writeTree(t, upstream, map[string]string{"notes.txt": "draft\n"})
	writeTree(t, fork, map[string]string{"notes.txt": "final\n"})

	engine := newTestEngine(t, "*.txt")
	outcome, err := engine.Compare(context.Background(), "docs", upstream, fork)

	require.NoError(t, err)
	assert.Equal(t, Identical, outcome.Status)
}

func TestCompare_MissingDirectory(t *testing.T) {
	requireDiff(t)

	fork := t.TempDir()
	writeTree(t, fork, map[string]string{"src/lib.rs": "pub fn run() {}\n"})

	engine := newTestEngine(t)
	_, err := engine.Compare(context.Background(), "core", filepath.Join(fork, "no-such-dir"), fork)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "diff of")
}

func TestNewEngine_DefaultExcludes(t *testing.T) {
	store := artifact.NewStore(t.TempDir())

	engine := NewEngine(store, nil)
	assert.Equal(t, DefaultExcludes, engine.Excludes)

	custom := NewEngine(store, []string{"*.bak"})
	assert.Equal(t, []string{"*.bak"}, custom.Excludes)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "identical", Identical.String())
	assert.Equal(t, "differs", Differs.String())
}

func TestCountLines(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected int
	}{
		{"empty", "", 0},
		{"single line with newline", "one\n", 1},
		{"single line without newline", "one", 1},
		{"multiple lines", "one\ntwo\nthree\n", 3},
		{"trailing unterminated line", "one\ntwo", 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, CountLines([]byte(tc.body)))
		})
	}
}

func TestCompare_ArtifactBodyIsUnifiedDiff(t *testing.T) {
	requireDiff(t)

	upstream := t.TempDir()
	fork := t.TempDir()
	writeTree(t, upstream, map[string]string{"src/lib.rs": "a\nb\nc\n"})
	writeTree(t, fork, map[string]string{"src/lib.rs": "a\nB\nc\n"})

	engine := newTestEngine(t)
	outcome, err := engine.Compare(context.Background(), "core", upstream, fork)

	require.NoError(t, err)
	require.Equal(t, Differs, outcome.Status)

	body, err := engine.Store.Read("core")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(body), "\n"), "\n")
	var markers []string
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "--- "):
			markers = append(markers, "old")
		case strings.HasPrefix(line, "+++ "):
			markers = append(markers, "new")
		case strings.HasPrefix(line, "@@"):
			markers = append(markers, "hunk")
		}
	}
	assert.Equal(t, []string{"old", "new", "hunk"}, markers)
}
