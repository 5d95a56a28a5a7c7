// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package stats

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const singleFileDiff = `diff -ruN upstream/core/src/lib.rs fork/core/src/lib.rs
--- upstream/core/src/lib.rs	2026-08-01 10:00:00.000000000 +0000
+++ fork/core/src/lib.rs	2026-08-20 09:30:00.000000000 +0000
@@ -1,3 +1,5 @@
 fn init() {}
-fn old_hook() {}
+fn new_hook() {}
+fn extra_one() {}
+fn extra_two() {}
 fn shutdown() {}
`

const multiFileDiff = singleFileDiff + `diff -ruN upstream/core/src/util.rs fork/core/src/util.rs
--- upstream/core/src/util.rs	2026-08-01 10:00:00.000000000 +0000
+++ fork/core/src/util.rs	2026-08-20 09:30:00.000000000 +0000
@@ -1,2 +1 @@
 pub fn id() {}
-pub fn gone() {}
`

const newFileDiff = `diff -ruN upstream/core/src/extra.rs fork/core/src/extra.rs
--- upstream/core/src/extra.rs	1970-01-01 00:00:00.000000000 +0000
+++ fork/core/src/extra.rs	2026-08-20 09:30:00.000000000 +0000
@@ -0,0 +1,2 @@
+pub mod extra;
+pub use extra::*;
`

func TestExtract(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantAdded   int
		wantRemoved int
	}{
		{
			// Three added lines and one removed line, with the two
			// file-header lines per hunk never counted.
			name:        "headers excluded from counts",
			content:     singleFileDiff,
			wantAdded:   3,
			wantRemoved: 1,
		},
		{
			name:        "multiple files accumulate",
			content:     multiFileDiff,
			wantAdded:   3,
			wantRemoved: 2,
		},
		{
			name:        "new file counts additions only",
			content:     newFileDiff,
			wantAdded:   2,
			wantRemoved: 0,
		},
		{
			name:        "empty content",
			content:     "",
			wantAdded:   0,
			wantRemoved: 0,
		},
		{
			name: "headers without content changes",
			content: "--- upstream/core/a.rs\t2026-08-01 10:00:00.000000000 +0000\n" +
				"+++ fork/core/a.rs\t2026-08-20 09:30:00.000000000 +0000\n",
			wantAdded:   0,
			wantRemoved: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			added, removed := Extract(tt.content)
			assert.Equal(t, tt.wantAdded, added, "added")
			assert.Equal(t, tt.wantRemoved, removed, "removed")
		})
	}
}

// TestExtract_Pure verifies extraction is deterministic over the same input.
func TestExtract_Pure(t *testing.T) {
	a1, r1 := Extract(multiFileDiff)
	a2, r2 := Extract(multiFileDiff)

	assert.Equal(t, a1, a2)
	assert.Equal(t, r1, r2)
}

func TestFromArtifact(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "core.diff")
	require.NoError(t, os.WriteFile(path, []byte(singleFileDiff), 0o644))

	got, err := FromArtifact(path)

	require.NoError(t, err)
	assert.Equal(t, Stats{Added: 3, Removed: 1}, got)
}

func TestFromArtifact_Missing(t *testing.T) {
	_, err := FromArtifact(filepath.Join(t.TempDir(), "absent.diff"))

	assert.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFromArtifact_NotADiff(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "core.diff")
	require.NoError(t, os.WriteFile(path, []byte("hello world\n"), 0o644))

	_, err := FromArtifact(path)

	assert.ErrorIs(t, err, ErrNotUnifiedDiff)
}

func TestFromArtifact_BinaryOnly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "core.diff")
	body := "Binary files upstream/core/logo.png and fork/core/logo.png differ\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	got, err := FromArtifact(path)

	// A binary-only difference has no countable lines but is a real diff.
	require.NoError(t, err)
	assert.Equal(t, Stats{}, got)
}

func TestFiles(t *testing.T) {
	files, err := Files(multiFileDiff)
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, "fork/core/src/lib.rs", files[0].Path)
	assert.Equal(t, 3, files[0].Added)
	assert.Equal(t, 1, files[0].Removed)

	assert.Equal(t, "fork/core/src/util.rs", files[1].Path)
	assert.Equal(t, 0, files[1].Added)
	assert.Equal(t, 1, files[1].Removed)
}

// TestFiles_SumsMatchExtract verifies the per-file breakdown always
// reconciles with the artifact totals.
func TestFiles_SumsMatchExtract(t *testing.T) {
	for _, content := range []string{singleFileDiff, multiFileDiff, newFileDiff} {
		files, err := Files(content)
		require.NoError(t, err)

		var added, removed int
		for _, f := range files {
			added += f.Added
			removed += f.Removed
		}

		wantAdded, wantRemoved := Extract(content)
		assert.Equal(t, wantAdded, added)
		assert.Equal(t, wantRemoved, removed)
	}
}

func TestFiles_NotADiff(t *testing.T) {
	_, err := Files("not a diff at all\n")

	assert.ErrorIs(t, err, ErrNotUnifiedDiff)
}
