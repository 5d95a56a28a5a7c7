// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package brand

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixText(t *testing.T) {
	fixer := NewFixer("Acme", "Apex")

	tests := []struct {
		name      string
		input     string
		want      string
		wantCount int
	}{
		{
			name:      "double quoted",
			input:     `println!("Acme CLI starting");`,
			want:      `println!("Apex CLI starting");`,
			wantCount: 1,
		},
		{
			name:      "single quoted",
			input:     `const name = 'Acme';`,
			want:      `const name = 'Apex';`,
			wantCount: 1,
		},
		{
			name:      "backtick quoted",
			input:     "msg := `Acme says hi`",
			want:      "msg := `Apex says hi`",
			wantCount: 1,
		},
		{
			name:      "unquoted untouched",
			input:     "// Acme internals, do not rename",
			want:      "// Acme internals, do not rename",
			wantCount: 0,
		},
		{
			name:      "mixed quoted and unquoted",
			input:     `Acme::greet("welcome to Acme")`,
			want:      `Acme::greet("welcome to Apex")`,
			wantCount: 1,
		},
		{
			name:      "escaped quotes inside literal",
			input:     `"say \"Acme\" loudly"`,
			want:      `"say \"Apex\" loudly"`,
			wantCount: 1,
		},
		{
			name:      "multiple occurrences in one literal",
			input:     `"Acme Acme Acme"`,
			want:      `"Apex Apex Apex"`,
			wantCount: 3,
		},
		{
			name:      "multiple literals",
			input:     `"Acme" + 'Acme'`,
			want:      `"Apex" + 'Apex'`,
			wantCount: 2,
		},
		{
			name:      "no match",
			input:     `"nothing to see"`,
			want:      `"nothing to see"`,
			wantCount: 0,
		},
		{
			name:      "empty input",
			input:     "",
			want:      "",
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, count := fixer.FixText(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantCount, count)
		})
	}
}

func TestFixFile(t *testing.T) {
	fixer := NewFixer("Acme", "Apex")

	path := filepath.Join(t.TempDir(), "main.rs")
	content := "fn main() {\n    println!(\"Acme v{}\", version());\n    // Acme stays here\n}\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	count, err := fixer.FixFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fn main() {\n    println!(\"Apex v{}\", version());\n    // Acme stays here\n}\n", string(got))
}

func TestFixFile_NoChangeLeavesFileAlone(t *testing.T) {
	fixer := NewFixer("Acme", "Apex")

	path := filepath.Join(t.TempDir(), "lib.rs")
	content := "pub fn run() {}\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	count, err := fixer.FixFile(path)
	require.NoError(t, err)
	assert.Zero(t, count)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))
}

func TestFixFile_MissingFile(t *testing.T) {
	fixer := NewFixer("Acme", "Apex")

	_, err := fixer.FixFile(filepath.Join(t.TempDir(), "absent.rs"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFixFile_Idempotent(t *testing.T) {
	fixer := NewFixer("Acme", "Apex")

	path := filepath.Join(t.TempDir(), "main.rs")
	require.NoError(t, os.WriteFile(path, []byte(`let s = "Acme";`), 0o644))

	first, err := fixer.FixFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, first)

	second, err := fixer.FixFile(path)
	require.NoError(t, err)
	assert.Zero(t, second)
}
