// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package brand

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/forkctl/forkctl/internal/log"
)

// quoted matches a quoted string literal: double, single, or backtick,
// honoring backslash escapes. Replacement happens only inside these
// matches.
var quoted = regexp.MustCompile("(\"(?:[^\"\\\\]|\\\\.)*\"|'(?:[^'\\\\]|\\\\.)*'|`(?:[^`\\\\]|\\\\.)*`)")

// Fixer replaces one brand string with another inside quoted literals.
type Fixer struct {
	From string
	To   string
}

// NewFixer returns a Fixer rewriting from into to.
func NewFixer(from, to string) Fixer {
	return Fixer{From: from, To: to}
}

// FixText returns text with every occurrence of the brand inside a quoted
// literal replaced, along with the number of replacements made. Occurrences
// outside string literals are left untouched.
func (f Fixer) FixText(text string) (string, int) {
	count := 0

	fixed := quoted.ReplaceAllStringFunc(text, func(s string) string {
		n := strings.Count(s, f.From)
		if n == 0 {
			return s
		}
		count += n
		return strings.ReplaceAll(s, f.From, f.To)
	})

	return fixed, count
}

// FixFile rewrites path in place and returns the number of replacements.
// The file is only written when something actually changed.
func (f Fixer) FixFile(path string) (int, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	original, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", path, err)
	}

	fixed, count := f.FixText(string(original))
	if count == 0 {
		return 0, nil
	}

	if err := os.WriteFile(path, []byte(fixed), info.Mode().Perm()); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", path, err)
	}

	log.Debugf("brand fix applied: path=%s count=%d", path, count)
	return count, nil
}
